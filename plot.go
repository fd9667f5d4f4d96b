package piecewise

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// WritePlot renders the approximation as a polyline through its breakpoints,
// with the breakpoints marked, and saves it to path. The image format is
// taken from the file extension (.png, .svg, .pdf, ...).
func (p *Piecewise) WritePlot(path string) error {
	plt := plot.New()
	plt.Title.Text = fmt.Sprintf("piecewise approximation, %d segments", len(p.forward))
	plt.X.Label.Text = "x"
	plt.Y.Label.Text = "y"
	plt.Add(plotter.NewGrid())

	pts := make(plotter.XYs, 0, len(p.forward)+1)
	for _, s := range p.forward {
		pts = append(pts, plotter.XY{X: s.lo, Y: s.eval(s.lo)})
	}
	last := p.forward[len(p.forward)-1]
	pts = append(pts, plotter.XY{X: last.hi, Y: last.eval(last.hi)})

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("piecewise: plot line: %w", err)
	}
	dots, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("piecewise: plot points: %w", err)
	}
	plt.Add(line, dots)

	return plt.Save(16*vg.Centimeter, 12*vg.Centimeter, path)
}
