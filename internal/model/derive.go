package model

import (
	"fmt"

	"github.com/ccsn-dev/progs/internal/dataset"
	"github.com/ccsn-dev/progs/internal/progerr"
	"github.com/ccsn-dev/progs/internal/proftable"
)

// Compactness reference mass coordinates [Msun]. xi_2.5 is the standard
// explodability predictor; xi_1.75 probes the inner core.
var compactnessMasses = []struct {
	key  string
	mass float64
}{
	{"xi_1.75", 1.75},
	{"xi_2.5", 2.5},
}

// computeScalars derives the scalar summary from a parsed profile:
// surface quantities at the outermost shell, compactness at fixed mass
// coordinates, and composition-threshold core masses. Scalars whose input
// columns the set does not carry are omitted rather than faked.
func computeScalars(p *proftable.Profile, d *dataset.Descriptor) (*ScalarSummary, error) {
	s := NewScalarSummary()

	massCol, err := massColumn(p)
	if err != nil {
		return nil, err
	}

	presn, err := p.Surface(massCol)
	if err != nil {
		return nil, err
	}
	s.Set("presn_mass", presn)

	if radiusCol := pick(p, "radius", "radius_edge"); radiusCol != "" {
		r, err := p.Surface(radiusCol)
		if err != nil {
			return nil, err
		}
		s.Set("presn_radius", r)
	}
	if p.Has("luminosity") {
		l, err := p.Surface("luminosity")
		if err != nil {
			return nil, err
		}
		s.Set("presn_luminosity", l)
	}

	if p.Has("xi") {
		for _, cm := range compactnessMasses {
			xi, err := p.Interp(cm.mass, "xi", massCol)
			if err != nil {
				return nil, err
			}
			s.Set(cm.key, xi)
		}
	}

	if err := addCoreMasses(s, p, d, massCol); err != nil {
		return nil, err
	}
	return s, nil
}

// addCoreMasses derives composition-boundary scalars:
//
//	coremass_fe   innermost mass coordinate where the Fe-core tracer
//	              (si28 by default) exceeds its threshold
//	coremass_he   outermost mass coordinate where he4 exceeds its threshold
//	coremass_co   outermost mass coordinate where c12 exceeds its threshold
//	envelope_mass total mass minus the mass coordinate at the base of the
//	              hydrogen envelope (first h1 above threshold)
func addCoreMasses(s *ScalarSummary, p *proftable.Profile, d *dataset.Descriptor, massCol string) error {
	mass, err := p.Column(massCol)
	if err != nil {
		return err
	}

	if m, ok, err := thresholdMass(p, mass, d.Scalars.FeCore, first); err != nil {
		return err
	} else if ok {
		s.Set("coremass_fe", m)
	}
	if m, ok, err := thresholdMass(p, mass, d.Scalars.HeCore, last); err != nil {
		return err
	} else if ok {
		s.Set("coremass_he", m)
	}
	if m, ok, err := thresholdMass(p, mass, d.Scalars.COCore, last); err != nil {
		return err
	} else if ok {
		s.Set("coremass_co", m)
	}

	if m, ok, err := thresholdMass(p, mass, d.Scalars.Envelope, first); err != nil {
		return err
	} else if ok {
		total, ok := s.Get("presn_mass")
		if !ok {
			return fmt.Errorf("%w: envelope mass needs presn_mass", progerr.ErrConfig)
		}
		s.Set("envelope_mass", total-m)
	}
	return nil
}

type boundary int

const (
	first boundary = iota // innermost zone above threshold
	last                  // outermost zone above threshold
)

// thresholdMass scans the rule's isotope column for zones above the
// threshold and returns the mass coordinate of the requested boundary.
// Returns ok=false when the set lacks the isotope column or no zone
// crosses the threshold.
func thresholdMass(p *proftable.Profile, mass []float64, rule dataset.CoreRule, b boundary) (float64, bool, error) {
	if rule.Isotope == "" || !p.Has(rule.Isotope) {
		return 0, false, nil
	}
	x, err := p.Column(rule.Isotope)
	if err != nil {
		return 0, false, err
	}

	idx := -1
	for i, xi := range x {
		if xi > rule.Threshold {
			idx = i
			if b == first {
				break
			}
		}
	}
	if idx < 0 {
		return 0, false, nil
	}
	return mass[idx], true, nil
}

// massColumn picks the enclosed-mass coordinate column of a profile.
func massColumn(p *proftable.Profile) (string, error) {
	if col := pick(p, "mass", "mass_edge"); col != "" {
		return col, nil
	}
	return "", fmt.Errorf("%w: profile carries no mass coordinate column", progerr.ErrConfig)
}

func pick(p *proftable.Profile, candidates ...string) string {
	for _, c := range candidates {
		if p.Has(c) {
			return c
		}
	}
	return ""
}
