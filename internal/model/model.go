// Package model implements the single-model reader: it locates one
// progenitor file by set name and ZAMS mass, parses its radial profile,
// and derives the scalar summary quantities.
package model

import (
	"fmt"
	"path/filepath"

	"github.com/ccsn-dev/progs/internal/dataset"
	"github.com/ccsn-dev/progs/internal/network"
	"github.com/ccsn-dev/progs/internal/paths"
	"github.com/ccsn-dev/progs/internal/progerr"
	"github.com/ccsn-dev/progs/internal/proftable"
)

// Model is one core-collapse progenitor: its radial profile, nuclear
// network, composition sums and scalar summary.
type Model struct {
	SetName  string
	ZAMS     string
	Filename string
	Path     string

	Descriptor *dataset.Descriptor
	Profile    *proftable.Profile
	Network    *network.Network // nil when the set declares no network
	Sums       *network.Sums    // nil when the set declares no network
	Scalars    *ScalarSummary
}

// Label returns a human-readable identifier, e.g. "sukhbold_2016: 9.0 Msun".
func (m *Model) Label() string {
	return fmt.Sprintf("%s: %s Msun", m.SetName, m.ZAMS)
}

// Release frees the profile's backing buffers.
func (m *Model) Release() {
	if m.Profile != nil {
		m.Profile.Release()
	}
}

// Load reads the progenitor model identified by set name and ZAMS mass.
// The returned model is immutable. Errors wrap ErrConfig, ErrNotFound or
// ErrParse depending on the failing stage.
func Load(setName, zams string) (*Model, error) {
	d, err := dataset.Load(setName)
	if err != nil {
		return nil, err
	}

	dir := paths.SetDir(d.Name)
	filename, err := resolveFile(d, dir, zams)
	if err != nil {
		return nil, err
	}

	m := &Model{
		SetName:    d.Name,
		ZAMS:       zams,
		Filename:   filename,
		Path:       filepath.Join(dir, filename),
		Descriptor: d,
	}

	m.Profile, err = proftable.Parse(m.Path, d)
	if err != nil {
		return nil, err
	}

	if d.Network.Name != "" {
		m.Network, err = network.Load(d.Network.Name)
		if err != nil {
			m.Release()
			return nil, err
		}
		m.Sums, err = network.CompositionSums(m.Profile, m.Network)
		if err != nil {
			m.Release()
			return nil, err
		}
	}

	m.Scalars, err = computeScalars(m.Profile, d)
	if err != nil {
		m.Release()
		return nil, err
	}
	return m, nil
}

// resolveFile finds the model filename whose stripped name equals the ZAMS
// identifier, e.g. "s9.0_presn" for zams "9.0".
func resolveFile(d *dataset.Descriptor, dir, zams string) (string, error) {
	files, err := paths.ModelFiles(dir, d.Load.MatchSubstring)
	if err != nil {
		return "", err
	}
	for _, f := range files {
		if paths.ZAMSFromFile(f, d.Load.StripPrefix, d.Load.StripSuffix) == zams {
			return f, nil
		}
	}
	return "", &progerr.NotFoundError{Set: d.Name, ZAMS: zams, Dir: dir}
}

// Compactness returns xi at the given mass coordinate [Msun], interpolated
// along the profile's compactness column.
func (m *Model) Compactness(mass float64) (float64, error) {
	return m.Profile.Interp(mass, "xi", "mass")
}
