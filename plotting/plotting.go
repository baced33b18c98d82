// Package plotting renders progenitor profiles and set-wide scalar trends
// to image files. The output format follows the file extension
// (.png, .svg, .pdf).
package plotting

import (
	"fmt"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/ccsn-dev/progs"
)

// Options control figure appearance. Zero values mean: title from the
// model label, axis labels from column names and descriptor units, linear
// scales, 8x6 inch canvas.
type Options struct {
	Title  string
	XLabel string
	YLabel string
	XLog   bool
	YLog   bool
	Width  float64 // inches
	Height float64 // inches
}

func (o Options) size() (vg.Length, vg.Length) {
	w, h := o.Width, o.Height
	if w == 0 {
		w = 8
	}
	if h == 0 {
		h = 6
	}
	return vg.Length(w) * vg.Inch, vg.Length(h) * vg.Inch
}

func (o Options) apply(p *plot.Plot) {
	p.Title.Text = o.Title
	p.X.Label.Text = o.XLabel
	p.Y.Label.Text = o.YLabel
	if o.XLog {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	if o.YLog {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
}

// axisLabel builds "name [unit]" from the descriptor's declared units.
func axisLabel(d *progs.Descriptor, column string) string {
	if unit := d.Unit(column); unit != "" {
		return fmt.Sprintf("%s [%s]", column, unit)
	}
	return column
}

// Profile saves a line plot of one profile column against another
// (typically mass or radius).
func Profile(m *progs.Model, yColumn, xColumn, outPath string, opts Options) error {
	xs, err := m.Profile.Column(xColumn)
	if err != nil {
		return err
	}
	ys, err := m.Profile.Column(yColumn)
	if err != nil {
		return err
	}

	if opts.Title == "" {
		opts.Title = m.Label()
	}
	if opts.XLabel == "" {
		opts.XLabel = axisLabel(m.Descriptor, xColumn)
	}
	if opts.YLabel == "" {
		opts.YLabel = axisLabel(m.Descriptor, yColumn)
	}

	p := plot.New()
	opts.apply(p)

	line, err := plotter.NewLine(toXYs(xs, ys))
	if err != nil {
		return fmt.Errorf("plot %s vs %s: %w", yColumn, xColumn, err)
	}
	p.Add(line)

	w, h := opts.size()
	return p.Save(w, h, outPath)
}

// Composition saves mass-fraction lines for the given isotopes against a
// coordinate column. A nil isotope list falls back to the descriptor's
// plot_isotopes, then to the full network.
func Composition(m *progs.Model, isotopes []string, xColumn, outPath string, opts Options) error {
	if isotopes == nil {
		isotopes = m.Descriptor.Network.PlotIsotopes
	}
	if isotopes == nil && m.Network != nil {
		isotopes = m.Network.Names()
	}
	if len(isotopes) == 0 {
		return fmt.Errorf("%w: no isotopes to plot for set %q", progs.ErrConfig, m.SetName)
	}

	xs, err := m.Profile.Column(xColumn)
	if err != nil {
		return err
	}

	if opts.Title == "" {
		opts.Title = m.Label()
	}
	if opts.XLabel == "" {
		opts.XLabel = axisLabel(m.Descriptor, xColumn)
	}
	if opts.YLabel == "" {
		opts.YLabel = "mass fraction"
	}

	p := plot.New()
	opts.apply(p)

	for i, iso := range isotopes {
		ys, err := m.Profile.Column(iso)
		if err != nil {
			return err
		}
		line, err := plotter.NewLine(toXYs(xs, ys))
		if err != nil {
			return fmt.Errorf("plot isotope %s: %w", iso, err)
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(iso, line)
	}

	w, h := opts.size()
	return p.Save(w, h, outPath)
}

// SetScalar saves one scalar quantity against ZAMS mass across a set.
// Masses that failed to load or do not parse as numbers are skipped.
func SetScalar(s *progs.Set, scalar, outPath string, opts Options) error {
	var xys plotter.XYs
	for _, zams := range s.Masses {
		sum, ok := s.Summaries[zams]
		if !ok {
			continue
		}
		v, ok := sum.Get(scalar)
		if !ok {
			continue
		}
		x, err := strconv.ParseFloat(zams, 64)
		if err != nil {
			continue
		}
		xys = append(xys, plotter.XY{X: x, Y: v})
	}
	if len(xys) == 0 {
		return fmt.Errorf("%w: set %q has no values for scalar %q", progs.ErrNotFound, s.Name, scalar)
	}

	if opts.Title == "" {
		opts.Title = s.Name
	}
	if opts.XLabel == "" {
		opts.XLabel = "ZAMS mass [Msun]"
	}
	if opts.YLabel == "" {
		opts.YLabel = scalar
	}

	p := plot.New()
	opts.apply(p)

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return fmt.Errorf("plot scalar %s: %w", scalar, err)
	}
	p.Add(line, points)

	w, h := opts.size()
	return p.Save(w, h, outPath)
}

func toXYs(xs, ys []float64) plotter.XYs {
	xys := make(plotter.XYs, len(xs))
	for i := range xs {
		xys[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	return xys
}
