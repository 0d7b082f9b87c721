// Package potential evaluates the electrostatic potential of the charge set.
//
// The potential at a point is the superposition Σ q/r over all charges. A
// charge at zero distance from the evaluation point contributes nothing, so
// the result is finite everywhere, including on the charges themselves.
// Evaluation depends only on the charges, never on the time-stepped grid.
package potential

import (
	"math"

	"github.com/san-kum/fieldsim/internal/charge"
)

// At returns the potential at (x, y) in grid units.
func At(x, y float64, charges []charge.Charge) float64 {
	sum := 0.0
	for _, c := range charges {
		d := c.Distance(x, y)
		if d > 0 {
			sum += c.Magnitude / d
		}
	}
	return sum
}

// Map is the potential sampled on every grid cell, with its range for
// downstream normalization.
type Map struct {
	NX, NY   int
	Values   []float64
	Min, Max float64
}

// At returns the value at cell (i, j). It does not check bounds.
func (m *Map) At(i, j int) float64 { return m.Values[j*m.NX+i] }

// Normalized maps the value at (i, j) into [0, 1] over the map's range. A
// flat map normalizes to 0.
func (m *Map) Normalized(i, j int) float64 {
	span := m.Max - m.Min
	if span == 0 {
		return 0
	}
	return (m.At(i, j) - m.Min) / span
}

// Evaluator computes potential maps. Workers > 1 splits rows across
// goroutines; the call still returns only once the map is complete and each
// cell sums charges in the same order, so results do not depend on Workers.
type Evaluator struct {
	Workers int
}

// Map evaluates the potential at every cell of an nx x ny grid.
func (e Evaluator) Map(nx, ny int, charges []charge.Charge) *Map {
	m := &Map{NX: nx, NY: ny, Values: make([]float64, nx*ny)}
	if nx <= 0 || ny <= 0 {
		m.NX, m.NY, m.Values = 0, 0, nil
		return m
	}

	parallelRows(ny, e.Workers, func(start, end int) {
		for j := start; j < end; j++ {
			row := m.Values[j*nx : (j+1)*nx]
			for i := range row {
				row[i] = At(float64(i), float64(j), charges)
			}
		}
	})

	m.Min, m.Max = math.Inf(1), math.Inf(-1)
	for _, v := range m.Values {
		if v < m.Min {
			m.Min = v
		}
		if v > m.Max {
			m.Max = v
		}
	}
	return m
}

// NewMap evaluates a map on the calling goroutine.
func NewMap(nx, ny int, charges []charge.Charge) *Map {
	return Evaluator{Workers: 1}.Map(nx, ny, charges)
}
