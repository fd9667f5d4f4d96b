// Package piecewise approximates a continuous scalar function over a bounded
// interval with n linear segments, and answers queries in both directions:
// y from x using the segment tables, and x from y even when the source
// function has no closed-form inverse.
package piecewise

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Func is any scalar function the approximator can sample. It must be pure
// and defined (finite) across the full construction interval.
type Func func(x float64) float64

// Interval is a construction domain with Lo < Hi. Segment tables built over
// it cover the half-open range [Lo, Hi).
type Interval struct {
	Lo, Hi float64
}

var (
	ErrInvalidConstruction = errors.New("piecewise: invalid construction")
	ErrOutOfDomain         = errors.New("piecewise: argument outside construction interval")
	ErrOutOfRange          = errors.New("piecewise: value outside inverse range")
	ErrAmbiguous           = errors.New("piecewise: inverse is not single-valued")
)

// segment is one linear piece: value = slope*input + intercept, valid for
// input in [lo, hi). Forward segments are keyed on x, inverse segments on y.
type segment struct {
	lo, hi    float64
	slope     float64
	intercept float64
}

func (s segment) eval(v float64) float64 {
	return s.slope*v + s.intercept
}

// Piecewise holds the forward and inverse segment tables for one source
// function. Both tables are computed at construction and never change, so a
// Piecewise is safe for concurrent queries.
type Piecewise struct {
	domain  Interval
	forward []segment // sorted by lo on the x axis, contiguous
	inverse []segment // sorted by lo on the y axis, gaps where slope was 0

	// invertible means every forward segment produced an inverse segment and
	// no two inverse ranges overlap.
	invertible bool
	// ambiguous means at least two inverse ranges overlap, so no y can be
	// matched to exactly one segment. Set only for non-monotonic sources.
	ambiguous bool
}

// New samples f at segments+1 evenly spaced points over domain and builds the
// forward and inverse tables. It returns ErrInvalidConstruction for a nil f,
// segments < 1, an empty or inverted domain, or a sample at which f is not
// finite. On error no Piecewise is returned.
func New(f Func, segments int, domain Interval) (*Piecewise, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil function", ErrInvalidConstruction)
	}
	if segments < 1 {
		return nil, fmt.Errorf("%w: segment count %d < 1", ErrInvalidConstruction, segments)
	}
	if !(domain.Lo < domain.Hi) {
		return nil, fmt.Errorf("%w: interval [%v, %v)", ErrInvalidConstruction, domain.Lo, domain.Hi)
	}

	step := (domain.Hi - domain.Lo) / float64(segments)
	xs := make([]float64, segments+1)
	ys := make([]float64, segments+1)
	for i := 0; i <= segments; i++ {
		x := domain.Lo + float64(i)*step
		if i == segments {
			// Pin the last breakpoint to the exact upper bound so step
			// accumulation cannot leave the tail of [Lo, Hi) uncovered.
			x = domain.Hi
		}
		y := f(x)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return nil, fmt.Errorf("%w: f(%v) = %v", ErrInvalidConstruction, x, y)
		}
		xs[i] = x
		ys[i] = y
	}

	p := &Piecewise{
		domain:  domain,
		forward: make([]segment, 0, segments),
		inverse: make([]segment, 0, segments),
	}
	for i := 0; i < segments; i++ {
		x0, x1 := xs[i], xs[i+1]
		y0, y1 := ys[i], ys[i+1]
		slope := (y1 - y0) / (x1 - x0)
		intercept := y0 - slope*x0
		p.forward = append(p.forward, segment{lo: x0, hi: x1, slope: slope, intercept: intercept})

		if slope == 0 {
			// Flat slice: x is indeterminate for this y, so the slice gets no
			// inverse segment. Queries landing in the gap fail as out of range.
			continue
		}
		inv := segment{
			lo:        math.Min(y0, y1),
			hi:        math.Max(y0, y1),
			slope:     1 / slope,
			intercept: -intercept / slope,
		}
		p.inverse = append(p.inverse, inv)
	}

	slices.SortFunc(p.inverse, func(a, b segment) int {
		return cmp.Compare(a.lo, b.lo)
	})
	for i := 1; i < len(p.inverse); i++ {
		if p.inverse[i].lo < p.inverse[i-1].hi {
			p.ambiguous = true
			break
		}
	}
	p.invertible = !p.ambiguous && len(p.inverse) == len(p.forward)
	return p, nil
}

// lookup finds the unique segment whose [lo, hi) range contains v.
func lookup(segs []segment, v float64) (segment, bool) {
	i, exact := slices.BinarySearchFunc(segs, v, func(s segment, v float64) int {
		return cmp.Compare(s.lo, v)
	})
	if exact {
		return segs[i], true
	}
	if i == 0 {
		return segment{}, false
	}
	if s := segs[i-1]; v < s.hi {
		return s, true
	}
	return segment{}, false
}

// Eval returns the approximated f(x). It fails with ErrOutOfDomain when x is
// outside [Lo, Hi); note the upper bound itself is rejected.
func (p *Piecewise) Eval(x float64) (float64, error) {
	s, ok := lookup(p.forward, x)
	if !ok {
		return 0, fmt.Errorf("%w: x=%v, domain [%v, %v)", ErrOutOfDomain, x, p.domain.Lo, p.domain.Hi)
	}
	return s.eval(x), nil
}

// Invert returns the x for which the approximation takes the value y. It
// fails with ErrAmbiguous when the source function was not monotonic over the
// construction interval (overlapping inverse ranges), and with ErrOutOfRange
// when y is outside every inverse segment, including gaps left by flat
// slices of the source.
func (p *Piecewise) Invert(y float64) (float64, error) {
	if p.ambiguous {
		return 0, fmt.Errorf("%w: overlapping inverse ranges", ErrAmbiguous)
	}
	s, ok := lookup(p.inverse, y)
	if !ok {
		return 0, fmt.Errorf("%w: y=%v", ErrOutOfRange, y)
	}
	return s.eval(y), nil
}

// Domain returns the construction interval.
func (p *Piecewise) Domain() Interval {
	return p.domain
}

// Range returns the bounds of the union of the inverse segment ranges, i.e.
// the y values Invert can resolve (gaps from flat slices excepted). The zero
// Interval is returned when the source was flat everywhere.
func (p *Piecewise) Range() Interval {
	if len(p.inverse) == 0 {
		return Interval{}
	}
	return Interval{
		Lo: p.inverse[0].lo,
		Hi: p.inverse[len(p.inverse)-1].hi,
	}
}

// Segments returns the number of linear pieces in the forward table.
func (p *Piecewise) Segments() int {
	return len(p.forward)
}

// Invertible reports whether every forward segment has an inverse and the
// inverse ranges are disjoint, so any y inside Range resolves to exactly
// one x.
func (p *Piecewise) Invertible() bool {
	return p.invertible
}

// Breakpoints returns the segments+1 x values at which the approximation
// changes slope, in ascending order.
func (p *Piecewise) Breakpoints() []float64 {
	bp := make([]float64, 0, len(p.forward)+1)
	for _, s := range p.forward {
		bp = append(bp, s.lo)
	}
	bp = append(bp, p.forward[len(p.forward)-1].hi)
	return bp
}

// MaxDeviation samples f and p at n evenly spaced points inside p's domain
// and returns the largest absolute difference. It reports how well the
// segment count resolves f: refining the table must not increase it.
func MaxDeviation(f Func, p *Piecewise, n int) float64 {
	if n < 1 {
		return 0
	}
	d := p.Domain()
	step := (d.Hi - d.Lo) / float64(n)
	devs := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		x := d.Lo + float64(i)*step
		y, err := p.Eval(x)
		if err != nil {
			continue
		}
		devs = append(devs, math.Abs(y-f(x)))
	}
	if len(devs) == 0 {
		return 0
	}
	return floats.Max(devs)
}

func (p *Piecewise) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "piecewise over [%v, %v), %d segments, invertible: %v\n",
		p.domain.Lo, p.domain.Hi, len(p.forward), p.invertible)
	for _, s := range p.forward {
		fmt.Fprintf(&b, "\t[%v, %v): y = %v*x + %v\n", s.lo, s.hi, s.slope, s.intercept)
	}
	for _, s := range p.inverse {
		fmt.Fprintf(&b, "\t[%v, %v): x = %v*y + %v\n", s.lo, s.hi, s.slope, s.intercept)
	}
	return b.String()
}
