// Package progs is a data-access layer for core-collapse supernova
// progenitor models. It reads per-set descriptor files to learn the column
// layout of raw stellar models, parses each model's radial profile into an
// immutable table, derives scalar summary quantities, and aggregates
// scalars across a whole progenitor set.
//
// Descriptor files live under PROGS_CONFIG_DIR (default ./config) and the
// model data tree under PROGS_DATA_DIR (default ./data).
package progs

import (
	"io"

	"github.com/ccsn-dev/progs/internal/dataset"
	"github.com/ccsn-dev/progs/internal/flash"
	"github.com/ccsn-dev/progs/internal/model"
	"github.com/ccsn-dev/progs/internal/network"
	"github.com/ccsn-dev/progs/internal/progerr"
	"github.com/ccsn-dev/progs/internal/proftable"
	"github.com/ccsn-dev/progs/internal/progset"
)

type (
	// Model is one progenitor: profile, network, composition sums and
	// scalar summary.
	Model = model.Model

	// ScalarSummary maps scalar quantity names to values for one model.
	ScalarSummary = model.ScalarSummary

	// Profile is the radial profile table of one model.
	Profile = proftable.Profile

	// Descriptor is the parsed configuration of one progenitor set.
	Descriptor = dataset.Descriptor

	// Network is the nuclear network isotope table of a set.
	Network = network.Network

	// Set is the aggregation of scalar summaries across a progenitor set.
	Set = progset.Set

	// Failure records one model that failed during set aggregation.
	Failure = progset.Failure

	// ParseError describes a malformed value in a model file.
	ParseError = progerr.ParseError

	// NotFoundError describes a model missing from its set directory.
	NotFoundError = progerr.NotFoundError
)

// Error taxonomy sentinels; match with errors.Is.
var (
	ErrConfig   = progerr.ErrConfig
	ErrNotFound = progerr.ErrNotFound
	ErrParse    = progerr.ErrParse
)

// LoadModel reads one progenitor model by set name and ZAMS mass
// identifier, e.g. LoadModel("sukhbold_2016", "9.0"). Set-name aliases
// such as "s16" are accepted.
func LoadModel(setName, zams string) (*Model, error) {
	return model.Load(setName, zams)
}

// LoadSet aggregates the scalar summaries of every model in a set.
// Individual model failures are reported in Set.Failures rather than
// aborting the aggregation.
func LoadSet(setName string) (*Set, error) {
	return progset.Load(setName)
}

// LoadDescriptor returns the (cached) descriptor of a progenitor set.
func LoadDescriptor(setName string) (*Descriptor, error) {
	return dataset.Load(setName)
}

// WriteFlash exports profile columns in the FLASH 1D initial-model format.
func WriteFlash(w io.Writer, p *Profile, columns []string, comment string) error {
	return flash.Write(w, p, columns, comment)
}
