package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/fieldsim/internal/charge"
)

var (
	// ErrInvalidDt indicates a non-positive time step.
	ErrInvalidDt = errors.New("sim: dt must be positive")

	// ErrInvalidDx indicates a non-positive spatial step.
	ErrInvalidDx = errors.New("sim: dx must be positive")

	// ErrGridTooSmall indicates dimensions that cannot hold the update stencil.
	ErrGridTooSmall = errors.New("sim: grid must be at least 2x2 cells")

	// ErrUnknownCharge indicates an id that is not in the registry.
	ErrUnknownCharge = charge.ErrNotFound

	// ErrNoSelection indicates a drag without a held charge.
	ErrNoSelection = errors.New("sim: no charge selected")

	// ErrSelectionHeld indicates a second select while a charge is held.
	ErrSelectionHeld = errors.New("sim: a charge is already selected")

	// ErrDiverged indicates NaN or Inf in the fields after a tick.
	ErrDiverged = errors.New("sim: field diverged (NaN or Inf detected)")
)

// ConfigError reports a rejected parameter. State is never mutated when one
// is returned.
type ConfigError struct {
	Field   string
	Value   float64
	Wrapped error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s=%g: %v", e.Field, e.Value, e.Wrapped)
}

func (e *ConfigError) Unwrap() error { return e.Wrapped }

// TickError wraps an error with the tick it occurred on.
type TickError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *TickError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *TickError) Unwrap() error { return e.Wrapped }
