// Package charge holds the point charges that drive the field.
//
// Charges live on integer grid cells. Positions are not bounds-checked: a
// charge outside the grid is kept in the registry and simply never injected.
// Several charges may share a cell.
package charge

import (
	"errors"
	"math"
)

// ErrNotFound is returned when an operation names an id that is not in the
// registry.
var ErrNotFound = errors.New("charge: no charge with that id")

// ID identifies a charge for the lifetime of a registry. IDs are never
// reused, so they stay valid while other charges are added or erased.
type ID int

type Charge struct {
	ID        ID
	X, Y      int
	Magnitude float64

	Oscillating   bool
	BaseMagnitude float64
	Frequency     float64
}

// Positive reports whether the charge currently has positive polarity.
func (c Charge) Positive() bool { return c.Magnitude > 0 }

// Polarity returns the sign of the current magnitude: -1, 0 or 1.
func (c Charge) Polarity() int {
	switch {
	case c.Magnitude > 0:
		return 1
	case c.Magnitude < 0:
		return -1
	}
	return 0
}

// MagnitudeAt returns the magnitude the charge has at simulation time t.
// Static charges ignore t.
func (c Charge) MagnitudeAt(t float64) float64 {
	if !c.Oscillating {
		return c.Magnitude
	}
	return c.BaseMagnitude * math.Sin(2*math.Pi*c.Frequency*t)
}

// Distance is the Euclidean distance from the charge center to (x, y).
func (c Charge) Distance(x, y float64) float64 {
	return math.Hypot(float64(c.X)-x, float64(c.Y)-y)
}

// Option adjusts a charge at creation.
type Option func(*Charge)

// Oscillating makes the charge a sinusoidal source with the given base
// magnitude and frequency (cycles per unit of simulation time).
func Oscillating(baseMagnitude, frequency float64) Option {
	return func(c *Charge) {
		c.Oscillating = true
		c.BaseMagnitude = baseMagnitude
		c.Frequency = frequency
	}
}
