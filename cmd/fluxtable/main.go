// Command fluxtable builds a piecewise approximation of the block-magnet
// flux curve and prints a distance/flux table together with the inverse
// readback, the way a hall-sensor host would use it.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/magflux/piecewise"
	"github.com/magflux/piecewise/magnet"
)

func main() {
	var (
		segments = flag.Int("segments", 100, "number of linear segments")
		lo       = flag.Float64("lo", 0, "interval lower bound, mm")
		hi       = flag.Float64("hi", 16, "interval upper bound, mm")
		rows     = flag.Int("rows", 16, "table rows to print")
		plotPath = flag.String("plot", "", "write a plot of the approximation to this file")
	)
	flag.Parse()

	p, err := piecewise.New(magnet.DRV5056Sample.FluxDensity, *segments, piecewise.Interval{Lo: *lo, Hi: *hi})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := printTable(os.Stdout, p, *rows); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *plotPath != "" {
		if err := p.WritePlot(*plotPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func printTable(w io.Writer, p *piecewise.Piecewise, rows int) error {
	d := p.Domain()
	fmt.Fprintf(w, "distance mm\tflux mT\treadback mm\n")
	step := (d.Hi - d.Lo) / float64(rows)
	for i := 0; i < rows; i++ {
		// Sample segment midpoints: the domain endpoints map to the extreme
		// flux values, and the upper extreme is the excluded bound of the
		// topmost inverse range, so the readback would fail there.
		x := d.Lo + (float64(i)+0.5)*step
		y, err := p.Eval(x)
		if err != nil {
			return err
		}
		back, err := p.Invert(y)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%10.4f\t%8.3f\t%10.4f\n", x, y, back)
	}
	return nil
}
