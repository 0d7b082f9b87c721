// Package fieldlines traces electrostatic field lines from positive charges.
//
// Lines are integrated with fixed-length explicit steps along the unit
// direction of the inverse-square field of the charge set. The time-stepped
// grid plays no part; only its dimensions bound the trace.
package fieldlines

import (
	"fmt"
	"math"

	"github.com/san-kum/fieldsim/internal/charge"
)

const (
	DefaultDensity    = 6
	DefaultStepSize   = 2.0
	DefaultMaxSteps   = 1000
	DefaultEpsilon    = 1e-4
	DefaultSeedRadius = 0.1
)

// Reason records why a line stopped.
type Reason int

const (
	LeftGrid Reason = iota
	MaxSteps
	WeakField
)

func (r Reason) String() string {
	switch r {
	case LeftGrid:
		return "left grid"
	case MaxSteps:
		return "max steps"
	case WeakField:
		return "weak field"
	}
	return fmt.Sprintf("reason(%d)", int(r))
}

type Point struct {
	X, Y float64
}

// Line is one traced polyline. Points starts with the seed; the final point
// may lie outside the grid when Reason is LeftGrid.
type Line struct {
	Source charge.ID
	Angle  float64
	Points []Point
	Reason Reason
}

// Field returns the field (Ex, Ey) at (x, y): Σ q·Δ/|Δ|³. Charges at zero
// distance are skipped.
func Field(x, y float64, charges []charge.Charge) (ex, ey float64) {
	for _, c := range charges {
		dx := x - float64(c.X)
		dy := y - float64(c.Y)
		r2 := dx*dx + dy*dy
		if r2 == 0 {
			continue
		}
		r3 := r2 * math.Sqrt(r2)
		ex += c.Magnitude * dx / r3
		ey += c.Magnitude * dy / r3
	}
	return ex, ey
}

// Tracer holds the integration parameters.
type Tracer struct {
	StepSize   float64
	MaxSteps   int
	Epsilon    float64
	SeedRadius float64
}

func NewTracer() *Tracer {
	return &Tracer{
		StepSize:   DefaultStepSize,
		MaxSteps:   DefaultMaxSteps,
		Epsilon:    DefaultEpsilon,
		SeedRadius: DefaultSeedRadius,
	}
}

// Trace seeds density rays around every positive charge, evenly spaced in
// angle, and integrates each within an nx x ny grid. Negative and neutral
// charges are never seeded.
func (t *Tracer) Trace(nx, ny int, charges []charge.Charge, density int) []Line {
	if density <= 0 {
		return nil
	}
	lines := make([]Line, 0, density*len(charges))
	for _, c := range charges {
		if !c.Positive() {
			continue
		}
		for k := 0; k < density; k++ {
			angle := 2 * math.Pi * float64(k) / float64(density)
			x := float64(c.X) + math.Cos(angle)*t.SeedRadius
			y := float64(c.Y) + math.Sin(angle)*t.SeedRadius
			line := t.TraceFrom(x, y, nx, ny, charges)
			line.Source = c.ID
			line.Angle = angle
			lines = append(lines, line)
		}
	}
	return lines
}

// TraceFrom integrates a single line starting at (x, y).
func (t *Tracer) TraceFrom(x, y float64, nx, ny int, charges []charge.Charge) Line {
	line := Line{
		Points: []Point{{x, y}},
		Reason: MaxSteps,
	}
	for step := 0; step < t.MaxSteps; step++ {
		ex, ey := Field(x, y, charges)
		mag := math.Hypot(ex, ey)
		if mag < t.Epsilon {
			line.Reason = WeakField
			return line
		}

		x += ex / mag * t.StepSize
		y += ey / mag * t.StepSize
		line.Points = append(line.Points, Point{x, y})

		if x < 0 || x >= float64(nx) || y < 0 || y >= float64(ny) {
			line.Reason = LeftGrid
			return line
		}
	}
	return line
}
