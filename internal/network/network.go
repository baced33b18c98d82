// Package network handles nuclear network tables: the isotope list of a
// progenitor set with proton and mass numbers, and composition sums
// derived from the profile's mass fractions.
package network

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ccsn-dev/progs/internal/paths"
	"github.com/ccsn-dev/progs/internal/progerr"
	"github.com/ccsn-dev/progs/internal/proftable"
)

// Isotope is one species of a nuclear network.
type Isotope struct {
	Name string  // column name in the profile, e.g. "he4"
	Z    float64 // proton number
	A    float64 // mass number
}

// Network is the isotope table of a progenitor set.
type Network struct {
	Name     string
	Isotopes []Isotope
}

// Load reads the named network table from <config root>/networks/<name>.txt.
// The file is a whitespace table with an "isotope Z A" header line.
func Load(name string) (*Network, error) {
	path := paths.NetworkPath(name)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: network table %q not found at %s", progerr.ErrConfig, name, path)
	}
	defer f.Close()

	net := &Network{Name: name}
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || lineNo == 1 {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, &progerr.ParseError{
				Path:   path,
				Line:   lineNo,
				Column: 1,
				Reason: "network row needs 3 fields: isotope Z A",
			}
		}
		z, errZ := strconv.ParseFloat(fields[1], 64)
		a, errA := strconv.ParseFloat(fields[2], 64)
		if errZ != nil || errA != nil {
			return nil, &progerr.ParseError{
				Path:   path,
				Line:   lineNo,
				Column: 2,
				Token:  fields[1] + " " + fields[2],
				Reason: "Z and A must be numeric",
			}
		}
		net.Isotopes = append(net.Isotopes, Isotope{Name: fields[0], Z: z, A: a})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading network table %s: %w", path, err)
	}
	if len(net.Isotopes) == 0 {
		return nil, fmt.Errorf("%w: network table %q is empty", progerr.ErrConfig, name)
	}
	return net, nil
}

// Names returns the isotope column names in network order.
func (n *Network) Names() []string {
	names := make([]string, len(n.Isotopes))
	for i, iso := range n.Isotopes {
		names[i] = iso.Name
	}
	return names
}

// Sums holds per-zone quantities summed over the network composition.
type Sums struct {
	SumX []float64 // total mass fraction
	SumY []float64 // total abundance sum(X/A)
	Ye   []float64 // electron fraction sum(X*Z/A)
	Abar []float64 // mean mass number 1/SumY
}

// CompositionSums accumulates sumx, sumy, ye and abar over the profile's
// isotope mass-fraction columns. Isotopes absent from the profile are an
// error: the network must match the descriptor's column layout.
func CompositionSums(p *proftable.Profile, net *Network) (*Sums, error) {
	rows := p.Rows()
	s := &Sums{
		SumX: make([]float64, rows),
		SumY: make([]float64, rows),
		Ye:   make([]float64, rows),
		Abar: make([]float64, rows),
	}

	for _, iso := range net.Isotopes {
		x, err := p.Column(iso.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: network %q isotope %q missing from profile",
				progerr.ErrConfig, net.Name, iso.Name)
		}
		for i, xi := range x {
			s.SumX[i] += xi
			s.SumY[i] += xi / iso.A
			s.Ye[i] += xi * (iso.Z / iso.A)
		}
	}
	for i := range s.Abar {
		s.Abar[i] = 1 / s.SumY[i]
	}
	return s, nil
}
