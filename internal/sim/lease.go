package sim

import (
	"math"

	"github.com/san-kum/fieldsim/internal/charge"
)

// Select acquires the drag lease on the charge nearest to (x, y) within
// radius. Only one charge can be held at a time.
func (s *Simulation) Select(x, y, radius float64) (charge.ID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected != nil {
		return *s.selected, ErrSelectionHeld
	}
	c, ok := s.charges.Nearest(x, y, radius)
	if !ok {
		return 0, ErrNoSelection
	}
	id := c.ID
	s.selected = &id
	return id, nil
}

// Drag moves the held charge to the cell containing (x, y).
func (s *Simulation) Drag(x, y float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected == nil {
		return ErrNoSelection
	}
	return s.charges.Move(*s.selected, int(math.Floor(x)), int(math.Floor(y)))
}

// Release drops the drag lease. It is a no-op when nothing is held.
func (s *Simulation) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// Selected returns the held charge, if any.
func (s *Simulation) Selected() (charge.ID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return 0, false
	}
	return *s.selected, true
}
