package model

// ScalarSummary maps named scalar quantities of one model to values,
// preserving insertion order for deterministic table layouts.
type ScalarSummary struct {
	names  []string
	values map[string]float64
}

// NewScalarSummary returns an empty summary.
func NewScalarSummary() *ScalarSummary {
	return &ScalarSummary{values: map[string]float64{}}
}

// Set adds or replaces a scalar.
func (s *ScalarSummary) Set(name string, v float64) {
	if _, ok := s.values[name]; !ok {
		s.names = append(s.names, name)
	}
	s.values[name] = v
}

// Get returns a scalar and whether it is present.
func (s *ScalarSummary) Get(name string) (float64, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Names returns the scalar names in insertion order.
func (s *ScalarSummary) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of scalars.
func (s *ScalarSummary) Len() int { return len(s.names) }
