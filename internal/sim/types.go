package sim

import (
	"github.com/san-kum/fieldsim/internal/fdtd"
	"github.com/san-kum/fieldsim/internal/grid"
	"github.com/san-kum/fieldsim/internal/metrics"
)

// Params is the time and space step pair.
type Params struct {
	Dt float64
	Dx float64
}

// Metric accumulates a value over the ticks of a run.
type Metric interface {
	Name() string
	Observe(g *grid.Grid, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every completed tick.
type Observer interface {
	OnStep(g *grid.Grid, tick fdtd.Tick)
}

// ScheduledPulse is a one-shot Ez write applied before tick Step of a run.
type ScheduledPulse struct {
	Step      int
	X, Y      int
	Magnitude float64
}

// RunConfig drives a headless run.
type RunConfig struct {
	Steps  int
	Pulses []ScheduledPulse
}

type Result struct {
	Params     Params
	CFL        metrics.CFLReport
	StepsTaken int
	Time       float64
	Metrics    map[string]float64
	Errors     []error
}

// Snapshot is a copy of the field state for renderers.
type Snapshot struct {
	NX, NY     int
	Time       float64
	Ticks      int
	Ez, Hx, Hy *grid.Buffer
}
