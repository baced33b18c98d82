// Package progset aggregates the scalar summaries of every progenitor
// model in a set. A single model failing to load is reported alongside the
// result instead of aborting the aggregation.
package progset

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/csv"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/ccsn-dev/progs/internal/dataset"
	"github.com/ccsn-dev/progs/internal/model"
	"github.com/ccsn-dev/progs/internal/paths"
	"github.com/ccsn-dev/progs/internal/progerr"
)

// Failure records one model that could not be loaded during aggregation.
type Failure struct {
	ZAMS string
	Err  error
}

// Set holds the aggregated scalar summaries of a progenitor set.
// Masses lists every discovered ZAMS identifier in sort order; Summaries
// holds one entry per successfully loaded model; Failures the rest.
type Set struct {
	Name       string
	Descriptor *dataset.Descriptor
	Masses     []string
	Summaries  map[string]*model.ScalarSummary
	Failures   []Failure
}

// Masses enumerates the ZAMS identifiers of a set from its directory
// listing, ordered by the descriptor's sort key.
func Masses(d *dataset.Descriptor) ([]string, error) {
	dir := paths.SetDir(d.Name)
	files, err := paths.ModelFiles(dir, d.Load.MatchSubstring)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: set %q has no model files in %s", progerr.ErrNotFound, d.Name, dir)
	}

	zams := make([]string, len(files))
	for i, f := range files {
		zams[i] = paths.ZAMSFromFile(f, d.Load.StripPrefix, d.Load.StripSuffix)
	}
	paths.SortZAMS(zams, d.Load.SortKey)
	return zams, nil
}

// Load aggregates every model of a set. Per-model failures are collected
// in Set.Failures; only set-level problems (missing descriptor, empty or
// unreadable set directory) return an error.
func Load(setName string) (*Set, error) {
	d, err := dataset.Load(setName)
	if err != nil {
		return nil, err
	}

	masses, err := Masses(d)
	if err != nil {
		return nil, err
	}

	s := &Set{
		Name:       d.Name,
		Descriptor: d,
		Masses:     masses,
		Summaries:  make(map[string]*model.ScalarSummary, len(masses)),
	}

	for _, zams := range masses {
		m, err := model.Load(d.Name, zams)
		if err != nil {
			slog.Warn("progenitor model failed to load", "set", d.Name, "zams", zams, "err", err)
			s.Failures = append(s.Failures, Failure{ZAMS: zams, Err: err})
			continue
		}
		s.Summaries[zams] = m.Scalars
		m.Release()
	}
	return s, nil
}

// FailedMasses returns the ZAMS identifiers that failed to load.
func (s *Set) FailedMasses() []string {
	out := make([]string, len(s.Failures))
	for i, f := range s.Failures {
		out[i] = f.ZAMS
	}
	return out
}

// scalarColumns returns the union of scalar names across all summaries,
// ordered by first appearance over the sorted mass list.
func (s *Set) scalarColumns() []string {
	var names []string
	seen := map[string]bool{}
	for _, zams := range s.Masses {
		sum, ok := s.Summaries[zams]
		if !ok {
			continue
		}
		for _, name := range sum.Names() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// Table builds the model-set table: one row per successfully loaded model
// in mass order, a leading "zams" string column, and one float64 column
// per scalar. A scalar absent from a particular model is NaN.
// The caller owns the returned record and must Release it.
func (s *Set) Table() (arrow.Record, error) {
	scalars := s.scalarColumns()
	if len(scalars) == 0 {
		return nil, fmt.Errorf("%w: set %q produced no scalar summaries", progerr.ErrNotFound, s.Name)
	}

	fields := make([]arrow.Field, 0, len(scalars)+1)
	fields = append(fields, arrow.Field{Name: "zams", Type: arrow.BinaryTypes.String})
	for _, name := range scalars {
		fields = append(fields, arrow.Field{Name: name, Type: arrow.PrimitiveTypes.Float64})
	}
	schema := arrow.NewSchema(fields, nil)

	pool := memory.NewGoAllocator()
	b := array.NewRecordBuilder(pool, schema)
	defer b.Release()

	for _, zams := range s.Masses {
		sum, ok := s.Summaries[zams]
		if !ok {
			continue
		}
		b.Field(0).(*array.StringBuilder).Append(zams)
		for i, name := range scalars {
			v, ok := sum.Get(name)
			if !ok {
				v = math.NaN()
			}
			b.Field(i + 1).(*array.Float64Builder).Append(v)
		}
	}
	return b.NewRecord(), nil
}

// WriteCSV writes the model-set table with a header row.
func (s *Set) WriteCSV(w io.Writer) error {
	rec, err := s.Table()
	if err != nil {
		return err
	}
	defer rec.Release()

	cw := csv.NewWriter(w, rec.Schema(), csv.WithHeader(true))
	if err := cw.Write(rec); err != nil {
		return fmt.Errorf("write set csv: %w", err)
	}
	return cw.Flush()
}
