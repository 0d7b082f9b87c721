package sim

import (
	"context"
	"math"
	"sync"

	"github.com/san-kum/fieldsim/internal/charge"
	"github.com/san-kum/fieldsim/internal/fdtd"
	"github.com/san-kum/fieldsim/internal/fieldlines"
	"github.com/san-kum/fieldsim/internal/grid"
	"github.com/san-kum/fieldsim/internal/metrics"
	"github.com/san-kum/fieldsim/internal/potential"
)

type Simulation struct {
	mu sync.Mutex

	width, height float64
	params        Params

	grid    *grid.Grid
	charges *charge.Registry
	clock   fdtd.Clock

	tracer    *fieldlines.Tracer
	evaluator potential.Evaluator
	validate  bool

	selected *charge.ID

	metrics   []Metric
	observers []Observer
}

type Option func(*Simulation)

// WithValidation makes Advance report ErrDiverged when a tick leaves
// non-finite values in the fields.
func WithValidation() Option {
	return func(s *Simulation) { s.validate = true }
}

// WithTracer replaces the default field-line tracer.
func WithTracer(t *fieldlines.Tracer) Option {
	return func(s *Simulation) { s.tracer = t }
}

// WithWorkers sets the goroutine count used for potential maps.
func WithWorkers(n int) Option {
	return func(s *Simulation) { s.evaluator.Workers = n }
}

// New creates a simulation over a width x height canvas.
func New(width, height float64, params Params, opts ...Option) (*Simulation, error) {
	if err := ValidateParams(width, height, params); err != nil {
		return nil, err
	}
	s := &Simulation{
		width:     width,
		height:    height,
		params:    params,
		grid:      grid.New(width, height, params.Dx),
		charges:   charge.NewRegistry(),
		tracer:    fieldlines.NewTracer(),
		evaluator: potential.Evaluator{Workers: 1},
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ValidateParams checks a step pair against a canvas size.
func ValidateParams(width, height float64, p Params) error {
	if !(p.Dt > 0) || math.IsInf(p.Dt, 0) {
		return &ConfigError{Field: "dt", Value: p.Dt, Wrapped: ErrInvalidDt}
	}
	if !(p.Dx > 0) || math.IsInf(p.Dx, 0) {
		return &ConfigError{Field: "dx", Value: p.Dx, Wrapped: ErrInvalidDx}
	}
	nx, ny := grid.Dimensions(width, height, p.Dx)
	if nx < 2 || ny < 2 {
		return &ConfigError{Field: "dx", Value: p.Dx, Wrapped: ErrGridTooSmall}
	}
	return nil
}

func (s *Simulation) AddMetric(m Metric) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = append(s.metrics, m)
}

func (s *Simulation) AddObserver(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// SetParameters validates and installs a new step pair. A changed dx
// reallocates the grid, clears the charges and rewinds the clock, since
// charge positions are in cells of the old resolution.
func (s *Simulation) SetParameters(dt, dx float64) error {
	p := Params{Dt: dt, Dx: dx}
	if err := ValidateParams(s.width, s.height, p); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	changed := dx != s.params.Dx
	s.params = p
	if changed {
		s.grid.Resize(dx)
		s.charges.Clear()
		s.selected = nil
		s.clock.Reset()
	}
	return nil
}

func (s *Simulation) Params() Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// Dims returns the grid cell counts.
func (s *Simulation) Dims() (nx, ny int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.NX, s.grid.NY
}

func (s *Simulation) Time() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock.Now()
}

// ResetFields zeroes the buffers and keeps the charges and the clock.
func (s *Simulation) ResetFields() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grid.Reset()
}

// ResetAll zeroes the buffers, clears the charges and rewinds the clock.
func (s *Simulation) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grid.Reset()
	s.charges.Clear()
	s.selected = nil
	s.clock.Reset()
}

// AddCharge places a charge at cell (x, y). Positions outside the grid are
// accepted and never injected.
func (s *Simulation) AddCharge(x, y int, magnitude float64, opts ...charge.Option) charge.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.charges.Add(x, y, magnitude, opts...)
}

// RemoveNearestCharge erases the charge closest to (x, y) if it is closer
// than threshold. Erasing the held charge releases the drag lease.
func (s *Simulation) RemoveNearestCharge(x, y, threshold float64) (charge.Charge, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.charges.RemoveNearest(x, y, threshold)
	if ok && s.selected != nil && *s.selected == c.ID {
		s.selected = nil
	}
	return c, ok
}

func (s *Simulation) MoveCharge(id charge.ID, x, y int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.charges.Move(id, x, y)
}

func (s *Simulation) SetOscillating(id charge.ID, baseMagnitude, frequency float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.charges.SetOscillating(id, baseMagnitude, frequency)
}

func (s *Simulation) SetStatic(id charge.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.charges.SetStatic(id)
}

func (s *Simulation) Charges() []charge.Charge {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.charges.All()
}

// InjectPulse writes magnitude into Ez at (x, y) immediately, between ticks.
// It reports false when the cell lies outside the grid.
func (s *Simulation) InjectPulse(x, y int, magnitude float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fdtd.InjectPulse(s.grid, x, y, magnitude)
}

// Advance runs one tick with time step dt. The stored dt is not changed.
func (s *Simulation) Advance(dt float64) (fdtd.Tick, error) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return fdtd.Tick{}, &ConfigError{Field: "dt", Value: dt, Wrapped: ErrInvalidDt}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advance(dt)
}

// Tick runs one tick with the stored dt.
func (s *Simulation) Tick() (fdtd.Tick, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advance(s.params.Dt)
}

func (s *Simulation) advance(dt float64) (fdtd.Tick, error) {
	step := s.clock.Ticks()
	tick := fdtd.Advance(s.grid, s.charges, &s.clock, dt)

	t := s.clock.Now()
	for _, m := range s.metrics {
		m.Observe(s.grid, t)
	}
	for _, o := range s.observers {
		o.OnStep(s.grid, tick)
	}

	if s.validate && !(s.grid.Ez.IsFinite() && s.grid.Hx.IsFinite() && s.grid.Hy.IsFinite()) {
		return tick, &TickError{Step: step, Time: tick.Start, Wrapped: ErrDiverged}
	}
	return tick, nil
}

// FieldAt returns Ez at cell (x, y), or 0 outside the grid.
func (s *Simulation) FieldAt(x, y int) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.Ez.At(x, y)
}

// PotentialAt evaluates the potential of the current charges at (x, y).
func (s *Simulation) PotentialAt(x, y float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return potential.At(x, y, s.charges.All())
}

// PotentialMap evaluates the potential over every grid cell.
func (s *Simulation) PotentialMap() *potential.Map {
	s.mu.Lock()
	nx, ny := s.grid.NX, s.grid.NY
	charges := s.charges.All()
	s.mu.Unlock()
	return s.evaluator.Map(nx, ny, charges)
}

// TraceFieldLines traces density lines from every positive charge.
func (s *Simulation) TraceFieldLines(density int) []fieldlines.Line {
	s.mu.Lock()
	nx, ny := s.grid.NX, s.grid.NY
	charges := s.charges.All()
	s.mu.Unlock()
	return s.tracer.Trace(nx, ny, charges, density)
}

// CFLStatus classifies the stored step pair.
func (s *Simulation) CFLStatus() metrics.CFLReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return metrics.AnalyzeCFL(s.params.Dt, s.params.Dx)
}

// Snapshot copies the field buffers.
func (s *Simulation) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		NX:    s.grid.NX,
		NY:    s.grid.NY,
		Time:  s.clock.Now(),
		Ticks: s.clock.Ticks(),
		Ez:    s.grid.Ez.Clone(),
		Hx:    s.grid.Hx.Clone(),
		Hy:    s.grid.Hy.Clone(),
	}
}

// Run advances cfg.Steps ticks with the stored dt, applying scheduled pulses
// between ticks. Cancellation is checked before every tick; the partial
// result is returned with the context error.
func (s *Simulation) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	s.mu.Lock()
	params := s.params
	for _, m := range s.metrics {
		m.Reset()
	}
	s.mu.Unlock()

	result := &Result{
		Params:  params,
		CFL:     metrics.AnalyzeCFL(params.Dt, params.Dx),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	pulses := make(map[int][]ScheduledPulse)
	for _, p := range cfg.Pulses {
		pulses[p.Step] = append(pulses[p.Step], p)
	}

	var runErr error
	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		for _, p := range pulses[i] {
			s.InjectPulse(p.X, p.Y, p.Magnitude)
		}

		_, err := s.Tick()
		result.StepsTaken++
		if err != nil {
			result.Errors = append(result.Errors, err)
			break
		}
	}

	s.mu.Lock()
	result.Time = s.clock.Now()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	s.mu.Unlock()

	return result, runErr
}
