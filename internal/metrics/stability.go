package metrics

import "fmt"

// WaveSpeed is the propagation speed of the scheme in grid units per step.
const WaveSpeed = 1.0

// WarnCFL is the Courant number above which a run may become unstable.
const WarnCFL = 0.9

// Status classifies a Courant number.
type Status int

const (
	Stable Status = iota
	PossiblyUnstable
	Unstable
)

func (s Status) String() string {
	switch s {
	case Stable:
		return "stable"
	case PossiblyUnstable:
		return "possibly unstable"
	case Unstable:
		return "unstable"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Label is the human readable classification with its band.
func (s Status) Label() string {
	switch s {
	case Stable:
		return "Stable (CFL ≤ 0.9)"
	case PossiblyUnstable:
		return "Possibly Unstable (0.9 < CFL ≤ 1)"
	case Unstable:
		return "Unstable (CFL > 1)"
	}
	return s.String()
}

// Safe reports whether the step pair sits inside the stable band.
func (s Status) Safe() bool { return s == Stable }

// CFL returns the Courant number WaveSpeed·dt/dx.
func CFL(dt, dx float64) float64 {
	return WaveSpeed * dt / dx
}

// Classify maps a Courant number onto a Status. Band edges are inclusive
// on the stable side: 0.9 is stable and 1.0 is possibly unstable.
func Classify(cfl float64) Status {
	switch {
	case cfl > 1:
		return Unstable
	case cfl > WarnCFL:
		return PossiblyUnstable
	}
	return Stable
}

// CFLReport is the advisory result of a stability check. It never changes
// how the engine steps.
type CFLReport struct {
	Dt, Dx float64
	Number float64
	Status Status
}

func AnalyzeCFL(dt, dx float64) CFLReport {
	n := CFL(dt, dx)
	return CFLReport{Dt: dt, Dx: dx, Number: n, Status: Classify(n)}
}

func (r CFLReport) String() string {
	return fmt.Sprintf("CFL: %.3f %s", r.Number, r.Status.Label())
}
