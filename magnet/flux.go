// Package magnet models the magnetic flux density of a rectangular block
// magnet along its magnetization axis. The flux equation cannot be solved
// algebraically for distance, which is why hosts feed FluxDensity through a
// piecewise approximation and invert that instead.
package magnet

import "math"

// BlockMagnet is a rectangular magnet magnetized through its thickness.
// Dimensions are in millimetres, remanence in millitesla.
type BlockMagnet struct {
	Length    float64
	Width     float64
	Thickness float64
	Remanence float64
}

// DRV5056Sample is the magnet used by the reference hall-sensor setup, per
// the DRV5056 datasheet worked example.
var DRV5056Sample = BlockMagnet{
	Length:    19.05,
	Width:     9.525,
	Thickness: 1.5875,
	Remanence: 1320,
}

// FluxDensity returns the flux density in millitesla at distance d
// millimetres from the magnet face, on the axis through its center.
// The method value m.FluxDensity satisfies piecewise.Func.
func (m BlockMagnet) FluxDensity(d float64) float64 {
	w, l, t, br := m.Width, m.Length, m.Thickness, m.Remanence
	wl := w * l
	near := math.Atan(wl / (2 * d * math.Sqrt(4*d*d+w*w+l*l)))
	dt := d + t
	far := math.Atan(wl / (2 * dt * math.Sqrt(4*dt*dt+w*w+l*l)))
	return br / math.Pi * (near - far)
}
