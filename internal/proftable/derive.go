package proftable

import (
	"fmt"
	"sort"

	"github.com/ccsn-dev/progs/internal/dataset"
	"github.com/ccsn-dev/progs/internal/progerr"
	"github.com/ccsn-dev/progs/internal/quantities"
)

// applyDerived appends the descriptor's derived columns, then the isotope
// group columns, to the parsed column set. Derived columns are computed in
// the order listed so later entries can depend on earlier ones
// (e.g. "xi" after "mass").
func applyDerived(names *[]string, cols map[string][]float64, d *dataset.Descriptor) error {
	get := func(derived, dep string) ([]float64, error) {
		vals, ok := cols[dep]
		if !ok {
			return nil, fmt.Errorf("%w: derived column %q requires column %q",
				progerr.ErrConfig, derived, dep)
		}
		return vals, nil
	}

	add := func(name string, vals []float64) error {
		if _, exists := cols[name]; exists {
			return fmt.Errorf("%w: derived column %q collides with an existing column",
				progerr.ErrConfig, name)
		}
		cols[name] = vals
		*names = append(*names, name)
		return nil
	}

	for _, derived := range d.Load.Derived {
		var (
			vals []float64
			err  error
		)
		switch derived {
		case "mass_edge":
			var zm []float64
			if zm, err = get(derived, "zone_mass"); err == nil {
				vals = quantities.EnclosedMass(zm)
			}
		case "radius":
			var re []float64
			if re, err = get(derived, "radius_edge"); err == nil {
				vals = quantities.CenteredRadius(re)
			}
		case "mass":
			vals, err = centeredMass(derived, get)
		case "xi":
			vals, err = twoColumn(derived, "mass", "radius", get, quantities.Compactness)
		case "luminosity":
			vals, err = twoColumn(derived, "radius", "temperature", get, quantities.Luminosity)
		case "vkep":
			vals, err = twoColumn(derived, "mass", "radius", get, quantities.Vkep)
		case "velz":
			vals, err = twoColumn(derived, "radius", "ang_vel", get, quantities.Velz)
		case "velz_edge":
			vals, err = twoColumn(derived, "radius_edge", "ang_vel", get, quantities.Velz)
		case "sumy":
			var abar []float64
			if abar, err = get(derived, "abar"); err == nil {
				vals = make([]float64, len(abar))
				for i, a := range abar {
					vals[i] = 1 / a
				}
			}
		case "zbar":
			vals, err = zbar(derived, get)
		default:
			return fmt.Errorf("%w: descriptor %q lists unknown derived column %q",
				progerr.ErrConfig, d.Name, derived)
		}
		if err != nil {
			return err
		}
		if err := add(derived, vals); err != nil {
			return err
		}
	}

	return addIsoGroups(names, cols, d)
}

func twoColumn(derived, depA, depB string,
	get func(string, string) ([]float64, error),
	fn func(a, b []float64) []float64,
) ([]float64, error) {
	a, err := get(derived, depA)
	if err != nil {
		return nil, err
	}
	b, err := get(derived, depB)
	if err != nil {
		return nil, err
	}
	return fn(a, b), nil
}

func centeredMass(derived string,
	get func(string, string) ([]float64, error),
) ([]float64, error) {
	me, err := get(derived, "mass_edge")
	if err != nil {
		return nil, err
	}
	re, err := get(derived, "radius_edge")
	if err != nil {
		return nil, err
	}
	rc, err := get(derived, "radius")
	if err != nil {
		return nil, err
	}
	rho, err := get(derived, "density")
	if err != nil {
		return nil, err
	}
	return quantities.CenteredMass(me, re, rc, rho), nil
}

func zbar(derived string,
	get func(string, string) ([]float64, error),
) ([]float64, error) {
	ye, err := get(derived, "ye")
	if err != nil {
		return nil, err
	}
	abar, err := get(derived, "abar")
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(ye))
	for i := range ye {
		out[i] = ye[i] * abar[i]
	}
	return out, nil
}

// addIsoGroups appends one column per descriptor isotope group, summing
// the member mass fractions (e.g. CO = c12 + o16). Groups are added in
// name order for a deterministic column layout.
func addIsoGroups(names *[]string, cols map[string][]float64, d *dataset.Descriptor) error {
	groups := make([]string, 0, len(d.Network.IsoGroups))
	for g := range d.Network.IsoGroups {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	for _, group := range groups {
		var sum []float64
		for _, iso := range d.Network.IsoGroups[group] {
			x, ok := cols[iso]
			if !ok {
				return fmt.Errorf("%w: isotope group %q references unknown column %q",
					progerr.ErrConfig, group, iso)
			}
			if sum == nil {
				sum = make([]float64, len(x))
			}
			for i, v := range x {
				sum[i] += v
			}
		}
		if _, exists := cols[group]; exists {
			return fmt.Errorf("%w: isotope group %q collides with an existing column",
				progerr.ErrConfig, group)
		}
		cols[group] = sum
		*names = append(*names, group)
	}
	return nil
}
