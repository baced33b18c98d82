// Package dataset loads and caches per-set descriptor files. A descriptor
// maps logical column names to physical column positions in the raw model
// files and declares the file-naming conventions of the set.
package dataset

import (
	"fmt"
	"sort"

	"github.com/ccsn-dev/progs/internal/progerr"
)

// LoadRules describes how raw model files of a set are located and parsed.
type LoadRules struct {
	// SkipRows is the number of header lines before the numeric table.
	SkipRows int `mapstructure:"skip_rows"`

	// MissingToken is a placeholder read as 0.0, e.g. "---".
	MissingToken string `mapstructure:"missing_token"`

	// MatchSubstring selects model files within the set directory.
	MatchSubstring string `mapstructure:"match_substring"`

	// StripPrefix and StripSuffix recover the ZAMS identifier from a
	// filename, e.g. "s9.0_presn" -> "9.0".
	StripPrefix string `mapstructure:"strip_prefix"`
	StripSuffix string `mapstructure:"strip_suffix"`

	// SortKey orders ZAMS identifiers: "float" or "string".
	SortKey string `mapstructure:"sort_key"`

	// Derived lists the derived columns to append after parsing,
	// in order. See proftable for the supported names.
	Derived []string `mapstructure:"derived"`
}

// NetworkRules names the nuclear network table of a set and the isotope
// groupings derived from it.
type NetworkRules struct {
	Name         string              `mapstructure:"name"`
	IsoGroups    map[string][]string `mapstructure:"iso_groups"`
	PlotIsotopes []string            `mapstructure:"plot_isotopes"`
}

// CoreRule defines a composition-threshold boundary: the core (or envelope)
// edge sits where the named isotope's mass fraction crosses Threshold.
type CoreRule struct {
	Isotope   string  `mapstructure:"isotope"`
	Threshold float64 `mapstructure:"threshold"`
}

// ScalarRules holds the composition thresholds used for core-mass scalars.
type ScalarRules struct {
	HeCore   CoreRule `mapstructure:"he_core"`
	COCore   CoreRule `mapstructure:"co_core"`
	FeCore   CoreRule `mapstructure:"fe_core"`
	Envelope CoreRule `mapstructure:"envelope"`
}

// Descriptor is the parsed, validated configuration of one progenitor set.
// Immutable once loaded.
type Descriptor struct {
	Name    string            `mapstructure:"name"`
	Load    LoadRules         `mapstructure:"load"`
	Columns map[string]int    `mapstructure:"columns"`
	Units   map[string]string `mapstructure:"units"`
	Network NetworkRules      `mapstructure:"network"`
	Scalars ScalarRules       `mapstructure:"scalars"`
}

// ColumnOrder returns the logical column names ordered by their source
// column index (ties broken by name, for determinism).
func (d *Descriptor) ColumnOrder() []string {
	names := make([]string, 0, len(d.Columns))
	for name := range d.Columns {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ci, cj := d.Columns[names[i]], d.Columns[names[j]]
		if ci != cj {
			return ci < cj
		}
		return names[i] < names[j]
	})
	return names
}

// Unit returns the physical unit label of a column, or "" if undeclared.
func (d *Descriptor) Unit(column string) string {
	return d.Units[column]
}

// HasColumn reports whether the raw table declares the named column.
func (d *Descriptor) HasColumn(name string) bool {
	_, ok := d.Columns[name]
	return ok
}

func (d *Descriptor) validate() error {
	if len(d.Columns) == 0 {
		return fmt.Errorf("%w: descriptor %q declares no columns", progerr.ErrConfig, d.Name)
	}
	maxIdx := -1
	seen := map[int]string{}
	for name, idx := range d.Columns {
		if idx < 0 {
			return fmt.Errorf("%w: descriptor %q: column %q has negative index %d",
				progerr.ErrConfig, d.Name, name, idx)
		}
		if prev, dup := seen[idx]; dup {
			return fmt.Errorf("%w: descriptor %q: columns %q and %q share index %d",
				progerr.ErrConfig, d.Name, prev, name, idx)
		}
		seen[idx] = name
		if idx > maxIdx {
			maxIdx = idx
		}
	}
	if !d.HasColumn("radius") && !d.HasColumn("radius_edge") {
		return fmt.Errorf("%w: descriptor %q declares no radius column", progerr.ErrConfig, d.Name)
	}
	if !d.HasColumn("mass") && !d.HasColumn("mass_edge") && !d.HasColumn("zone_mass") {
		return fmt.Errorf("%w: descriptor %q declares no mass column", progerr.ErrConfig, d.Name)
	}
	for _, rule := range []struct {
		name string
		r    CoreRule
	}{
		{"he_core", d.Scalars.HeCore},
		{"co_core", d.Scalars.COCore},
		{"fe_core", d.Scalars.FeCore},
		{"envelope", d.Scalars.Envelope},
	} {
		if rule.r.Isotope == "" {
			continue
		}
		if rule.r.Threshold <= 0 || rule.r.Threshold > 1 {
			return fmt.Errorf("%w: descriptor %q: scalars.%s threshold %v outside (0,1]",
				progerr.ErrConfig, d.Name, rule.name, rule.r.Threshold)
		}
	}
	return nil
}

// applyDefaults fills in the original composition thresholds for any
// core rule the descriptor leaves unset.
func (d *Descriptor) applyDefaults() {
	def := func(r *CoreRule, isotope string, threshold float64) {
		if r.Isotope == "" && r.Threshold == 0 {
			r.Isotope = isotope
			r.Threshold = threshold
		}
	}
	def(&d.Scalars.HeCore, "he4", 0.6)
	def(&d.Scalars.COCore, "c12", 0.05)
	def(&d.Scalars.FeCore, "si28", 0.2)
	def(&d.Scalars.Envelope, "h1", 0.15)

	if d.Load.SortKey == "" {
		d.Load.SortKey = "float"
	}
}
