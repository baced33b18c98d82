// Package progerr defines the error taxonomy shared across the progs packages.
package progerr

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig reports a missing or malformed dataset descriptor.
	ErrConfig = errors.New("progs: configuration error")

	// ErrNotFound reports a missing progenitor model file or set directory.
	ErrNotFound = errors.New("progs: not found")

	// ErrParse reports a malformed numeric row in a model file.
	ErrParse = errors.New("progs: parse error")
)

// ParseError describes a malformed value in a model file. Line and Column
// are 1-based positions in the source file.
type ParseError struct {
	Path   string
	Line   int
	Column int
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("progs: parse error: %s:%d: column %d: bad value %q: %s",
		e.Path, e.Line, e.Column, e.Token, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// NotFoundError describes a progenitor model that could not be located
// within a set directory.
type NotFoundError struct {
	Set  string
	ZAMS string
	Dir  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("progs: model zams=%q not found in set %q (%s)", e.ZAMS, e.Set, e.Dir)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
