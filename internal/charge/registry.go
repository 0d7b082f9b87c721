package charge

import "math"

// Registry is an insertion-ordered set of charges. It is not safe for
// concurrent use; the simulation controller serializes access.
type Registry struct {
	charges []Charge
	nextID  ID
}

func NewRegistry() *Registry {
	return &Registry{charges: make([]Charge, 0)}
}

// Add appends a charge at (x, y) and returns its id. Without options the
// charge is static and its base magnitude equals magnitude.
func (r *Registry) Add(x, y int, magnitude float64, opts ...Option) ID {
	c := Charge{
		ID:            r.nextID,
		X:             x,
		Y:             y,
		Magnitude:     magnitude,
		BaseMagnitude: magnitude,
	}
	for _, opt := range opts {
		opt(&c)
	}
	r.nextID++
	r.charges = append(r.charges, c)
	return c.ID
}

// nearest returns the index and distance of the charge closest to (x, y).
// Ties go to the earliest inserted charge. It returns -1 for an empty
// registry.
func (r *Registry) nearest(x, y float64) (int, float64) {
	best, bestDist := -1, math.Inf(1)
	for i, c := range r.charges {
		if d := c.Distance(x, y); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}

// Nearest returns the charge closest to (x, y) if it lies strictly within
// radius.
func (r *Registry) Nearest(x, y, radius float64) (Charge, bool) {
	idx, dist := r.nearest(x, y)
	if idx < 0 || dist >= radius {
		return Charge{}, false
	}
	return r.charges[idx], true
}

// RemoveNearest erases the charge closest to (x, y) when it is strictly
// closer than threshold. Finding nothing in range is a normal outcome and
// leaves the registry unchanged.
func (r *Registry) RemoveNearest(x, y, threshold float64) (Charge, bool) {
	idx, dist := r.nearest(x, y)
	if idx < 0 || dist >= threshold {
		return Charge{}, false
	}
	c := r.charges[idx]
	r.charges = append(r.charges[:idx], r.charges[idx+1:]...)
	return c, true
}

// Move overwrites the position of a charge. The new position is not
// bounds-checked.
func (r *Registry) Move(id ID, x, y int) error {
	idx := r.index(id)
	if idx < 0 {
		return ErrNotFound
	}
	r.charges[idx].X = x
	r.charges[idx].Y = y
	return nil
}

// SetOscillating turns a charge into a sinusoidal source.
func (r *Registry) SetOscillating(id ID, baseMagnitude, frequency float64) error {
	idx := r.index(id)
	if idx < 0 {
		return ErrNotFound
	}
	Oscillating(baseMagnitude, frequency)(&r.charges[idx])
	return nil
}

// SetStatic stops a charge oscillating and restores its base magnitude.
func (r *Registry) SetStatic(id ID) error {
	idx := r.index(id)
	if idx < 0 {
		return ErrNotFound
	}
	c := &r.charges[idx]
	c.Oscillating = false
	c.Magnitude = c.BaseMagnitude
	c.Frequency = 0
	return nil
}

// Oscillate recomputes the magnitude of every oscillating charge for
// simulation time t.
func (r *Registry) Oscillate(t float64) {
	for i := range r.charges {
		if r.charges[i].Oscillating {
			r.charges[i].Magnitude = r.charges[i].MagnitudeAt(t)
		}
	}
}

func (r *Registry) Get(id ID) (Charge, bool) {
	idx := r.index(id)
	if idx < 0 {
		return Charge{}, false
	}
	return r.charges[idx], true
}

// All returns a copy of the charges in insertion order.
func (r *Registry) All() []Charge {
	out := make([]Charge, len(r.charges))
	copy(out, r.charges)
	return out
}

// Positive returns the charges with positive magnitude, in insertion order.
func (r *Registry) Positive() []Charge {
	out := make([]Charge, 0, len(r.charges))
	for _, c := range r.charges {
		if c.Positive() {
			out = append(out, c)
		}
	}
	return out
}

func (r *Registry) Len() int { return len(r.charges) }

// Clear drops every charge. IDs keep increasing so stale ids never alias
// new charges.
func (r *Registry) Clear() {
	r.charges = r.charges[:0]
}

func (r *Registry) index(id ID) int {
	for i, c := range r.charges {
		if c.ID == id {
			return i
		}
	}
	return -1
}
