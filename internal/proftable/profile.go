// Package proftable parses raw progenitor model files into immutable
// in-memory profile tables, appends derived columns, and exposes column
// access and interpolation over them.
package proftable

import (
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/csv"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"gonum.org/v1/gonum/interp"

	"github.com/ccsn-dev/progs/internal/progerr"
)

// Profile is the radial profile table of one progenitor model: one row per
// shell, ordered by increasing mass coordinate. The backing arrow record is
// immutable after construction.
type Profile struct {
	rec   arrow.Record
	index map[string]int
}

// newProfile freezes named float64 columns into an arrow record.
// All columns must share the same length.
func newProfile(names []string, cols map[string][]float64) (*Profile, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: profile has no columns", progerr.ErrConfig)
	}
	rows := len(cols[names[0]])

	fields := make([]arrow.Field, len(names))
	for i, name := range names {
		if len(cols[name]) != rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, want %d",
				progerr.ErrParse, name, len(cols[name]), rows)
		}
		fields[i] = arrow.Field{Name: name, Type: arrow.PrimitiveTypes.Float64}
	}
	schema := arrow.NewSchema(fields, nil)

	pool := memory.NewGoAllocator()
	b := array.NewRecordBuilder(pool, schema)
	defer b.Release()

	for i, name := range names {
		b.Field(i).(*array.Float64Builder).AppendValues(cols[name], nil)
	}

	index := make(map[string]int, len(names))
	for i, name := range names {
		index[name] = i
	}

	return &Profile{rec: b.NewRecord(), index: index}, nil
}

// Rows returns the number of radial shells.
func (p *Profile) Rows() int { return int(p.rec.NumRows()) }

// ColumnNames returns the column names in table order.
func (p *Profile) ColumnNames() []string {
	names := make([]string, p.rec.Schema().NumFields())
	for i, f := range p.rec.Schema().Fields() {
		names[i] = f.Name
	}
	return names
}

// Has reports whether the profile holds the named column.
func (p *Profile) Has(name string) bool {
	_, ok := p.index[name]
	return ok
}

// Column returns the backing values of the named column. The slice aliases
// the record's memory and must not be modified.
func (p *Profile) Column(name string) ([]float64, error) {
	i, ok := p.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: profile has no column %q", progerr.ErrConfig, name)
	}
	return p.rec.Column(i).(*array.Float64).Float64Values(), nil
}

// Surface returns the value of the named column at the outermost shell.
func (p *Profile) Surface(name string) (float64, error) {
	vals, err := p.Column(name)
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return 0, fmt.Errorf("%w: profile column %q is empty", progerr.ErrParse, name)
	}
	return vals[len(vals)-1], nil
}

// Interp linearly interpolates column yCol at coordinate x along column
// xCol (typically "mass" or "radius"). Outside the table range the nearest
// endpoint value is returned.
func (p *Profile) Interp(x float64, yCol, xCol string) (float64, error) {
	xs, err := p.Column(xCol)
	if err != nil {
		return 0, err
	}
	ys, err := p.Column(yCol)
	if err != nil {
		return 0, err
	}

	xs, ys = dedupeIncreasing(xs, ys)
	if len(xs) < 2 {
		return 0, fmt.Errorf("%w: column %q has too few distinct points to interpolate",
			progerr.ErrParse, xCol)
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return 0, fmt.Errorf("%w: column %q is not monotonically increasing: %v",
			progerr.ErrParse, xCol, err)
	}
	return pl.Predict(x), nil
}

// dedupeIncreasing drops rows whose x repeats the previous value, leaving
// a strictly increasing abscissa for the interpolator.
func dedupeIncreasing(xs, ys []float64) ([]float64, []float64) {
	outX := make([]float64, 0, len(xs))
	outY := make([]float64, 0, len(ys))
	for i := range xs {
		if i > 0 && xs[i] == outX[len(outX)-1] {
			continue
		}
		outX = append(outX, xs[i])
		outY = append(outY, ys[i])
	}
	return outX, outY
}

// Record returns the backing arrow record. The caller must not release it;
// use Release on the Profile instead.
func (p *Profile) Record() arrow.Record { return p.rec }

// Release frees the backing arrow buffers.
func (p *Profile) Release() {
	if p.rec != nil {
		p.rec.Release()
		p.rec = nil
	}
}

// WriteCSV writes the profile with a header row.
func (p *Profile) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w, p.rec.Schema(), csv.WithHeader(true))
	if err := cw.Write(p.rec); err != nil {
		return fmt.Errorf("write profile csv: %w", err)
	}
	return cw.Flush()
}
