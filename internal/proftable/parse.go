package proftable

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ccsn-dev/progs/internal/dataset"
	"github.com/ccsn-dev/progs/internal/progerr"
	"github.com/ccsn-dev/progs/internal/quantities"
)

// Parse reads a raw model file into a Profile using the descriptor's column
// layout, converts mass columns to solar masses, and appends the
// descriptor's derived columns.
func Parse(path string, d *dataset.Descriptor) (*Profile, error) {
	names := d.ColumnOrder()
	cols := make(map[string][]float64, len(names))
	for _, name := range names {
		cols[name] = []float64{}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening model file %s: %v", progerr.ErrNotFound, path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		if lineNo <= d.Load.SkipRows {
			continue
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		for _, name := range names {
			idx := d.Columns[name]
			if idx >= len(fields) {
				return nil, &progerr.ParseError{
					Path:   path,
					Line:   lineNo,
					Column: idx + 1,
					Reason: fmt.Sprintf("row has %d fields, column %q needs field %d",
						len(fields), name, idx+1),
				}
			}
			v, err := parseValue(fields[idx], d.Load.MissingToken)
			if err != nil {
				return nil, &progerr.ParseError{
					Path:   path,
					Line:   lineNo,
					Column: idx + 1,
					Token:  fields[idx],
					Reason: "not a number",
				}
			}
			if isMassColumn(name, d) {
				v = quantities.GramsToMsun(v)
			}
			cols[name] = append(cols[name], v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading model file %s: %w", path, err)
	}

	if len(cols[names[0]]) == 0 {
		return nil, &progerr.ParseError{
			Path:   path,
			Line:   lineNo,
			Column: 1,
			Reason: "file contains no data rows",
		}
	}

	if err := applyDerived(&names, cols, d); err != nil {
		return nil, err
	}

	return newProfile(names, cols)
}

// isMassColumn reports whether a raw column holds mass in grams and should
// be converted to Msun. Mass-like columns are converted unless the
// descriptor declares them already in solar masses.
func isMassColumn(name string, d *dataset.Descriptor) bool {
	if !strings.Contains(name, "mass") {
		return false
	}
	return !strings.EqualFold(d.Unit(name), "msun")
}

// parseValue converts one whitespace-delimited token to a float64. The
// set's missing-value token reads as 0.0; Fortran-style D exponents
// ("1.0D+05") are accepted.
func parseValue(token, missingToken string) (float64, error) {
	if missingToken != "" && token == missingToken {
		return 0, nil
	}
	v, err := strconv.ParseFloat(token, 64)
	if err == nil {
		return v, nil
	}
	if strings.ContainsAny(token, "dD") {
		fixed := strings.Map(func(r rune) rune {
			if r == 'd' || r == 'D' {
				return 'e'
			}
			return r
		}, token)
		if v, err2 := strconv.ParseFloat(fixed, 64); err2 == nil {
			return v, nil
		}
	}
	return 0, err
}
