// Package flash writes progenitor profiles in the FLASH 1D initial-model
// text format: a comment line, a counted variable header, then one
// space-separated row per zone.
package flash

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ccsn-dev/progs/internal/progerr"
	"github.com/ccsn-dev/progs/internal/proftable"
	"github.com/ccsn-dev/progs/internal/quantities"
)

// varMap renames profile columns to the variable names FLASH expects.
var varMap = map[string]string{
	"density":     "dens",
	"temperature": "temp",
	"pressure":    "pres",
	"energy":      "eint",
	"entropy":     "entr",
	"ang_vel":     "velz",
}

// Write emits the given profile columns in FLASH format. The first column
// must be the coordinate (radius); it is excluded from the variable count.
// Mass columns are written back in grams. A requested column missing from
// the profile wraps ErrConfig.
func Write(w io.Writer, p *proftable.Profile, columns []string, comment string) error {
	if len(columns) < 2 {
		return fmt.Errorf("%w: flash export needs a coordinate column and at least one variable",
			progerr.ErrConfig)
	}

	cols := make([][]float64, len(columns))
	for i, name := range columns {
		vals, err := p.Column(name)
		if err != nil {
			return err
		}
		cols[i] = vals
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s\n", comment)
	fmt.Fprintf(bw, "number of variables = %d\n", len(columns)-1)
	for _, name := range columns[1:] {
		if mapped, ok := varMap[name]; ok {
			name = mapped
		}
		fmt.Fprintln(bw, name)
	}

	for row := 0; row < p.Rows(); row++ {
		for i, name := range columns {
			v := cols[i][row]
			if name == "mass" || name == "mass_edge" {
				v *= quantities.MsunGrams
			}
			if i > 0 {
				fmt.Fprint(bw, " ")
			}
			fmt.Fprintf(bw, "%.9e", v)
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}
