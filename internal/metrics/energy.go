package metrics

import (
	"math"

	"github.com/san-kum/fieldsim/internal/grid"
)

// FieldEnergy tracks ½·Σ(Ez²+Hx²+Hy²) over the grid, reporting the latest
// sample, the running maximum and the drift relative to the first non-zero
// sample.
type FieldEnergy struct {
	name     string
	initial  float64
	current  float64
	peak     float64
	maxDrift float64
	samples  int
}

func NewFieldEnergy() *FieldEnergy {
	return &FieldEnergy{name: "energy"}
}

// Energy computes the discrete field energy of g.
func Energy(g *grid.Grid) float64 {
	sum := 0.0
	for _, b := range []*grid.Buffer{g.Ez, g.Hx, g.Hy} {
		for _, v := range b.Data() {
			sum += v * v
		}
	}
	return 0.5 * sum
}

func (e *FieldEnergy) Name() string { return e.name }

func (e *FieldEnergy) Observe(g *grid.Grid, t float64) {
	energy := Energy(g)
	if e.initial == 0 {
		e.initial = energy
	}
	e.current = energy
	e.peak = math.Max(e.peak, energy)
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / e.initial
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *FieldEnergy) Value() float64 { return e.current }
func (e *FieldEnergy) Peak() float64  { return e.peak }

// Drift is the largest relative deviation from the first non-zero energy.
func (e *FieldEnergy) Drift() float64 { return e.maxDrift }

func (e *FieldEnergy) Reset() {
	e.initial = 0
	e.current = 0
	e.peak = 0
	e.maxDrift = 0
	e.samples = 0
}

// PeakAmplitude records the largest |Ez| seen.
type PeakAmplitude struct {
	name string
	peak float64
}

func NewPeakAmplitude() *PeakAmplitude {
	return &PeakAmplitude{name: "peak_ez"}
}

func (p *PeakAmplitude) Name() string { return p.name }

func (p *PeakAmplitude) Observe(g *grid.Grid, t float64) {
	for _, v := range g.Ez.Data() {
		if a := math.Abs(v); a > p.peak {
			p.peak = a
		}
	}
}

func (p *PeakAmplitude) Value() float64 { return p.peak }
func (p *PeakAmplitude) Reset()         { p.peak = 0 }

// Probe samples Ez at one cell every step. Value is the last sample.
type Probe struct {
	name   string
	X, Y   int
	times  []float64
	series []float64
}

func NewProbe(x, y int) *Probe {
	return &Probe{
		name:   "probe",
		X:      x,
		Y:      y,
		times:  make([]float64, 0),
		series: make([]float64, 0),
	}
}

func (p *Probe) Name() string { return p.name }

func (p *Probe) Observe(g *grid.Grid, t float64) {
	p.times = append(p.times, t)
	p.series = append(p.series, g.Ez.At(p.X, p.Y))
}

func (p *Probe) Value() float64 {
	if len(p.series) == 0 {
		return 0
	}
	return p.series[len(p.series)-1]
}

// Series returns the sampled Ez values in step order.
func (p *Probe) Series() []float64 { return p.series }
func (p *Probe) Times() []float64  { return p.times }

func (p *Probe) Reset() {
	p.times = p.times[:0]
	p.series = p.series[:0]
}
