package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/fieldsim/internal/grid"
)

func TestEnergy(t *testing.T) {
	g := grid.New(50, 50, 5)
	g.Ez.Set(2, 2, 3)
	g.Hx.Set(1, 1, 4)

	if got := Energy(g); math.Abs(got-12.5) > 1e-12 {
		t.Errorf("Energy() = %v, want 12.5", got)
	}
}

func TestFieldEnergy_DriftAndReset(t *testing.T) {
	m := NewFieldEnergy()
	g := grid.New(50, 50, 5)

	m.Observe(g, 0)
	if m.Value() != 0 || m.Drift() != 0 {
		t.Error("vacuum should have zero energy and drift")
	}

	g.Ez.Set(1, 1, 2) // energy 2
	m.Observe(g, 1)
	g.Ez.Set(1, 1, 1) // energy 0.5
	m.Observe(g, 2)

	if m.Value() != 0.5 {
		t.Errorf("Value() = %v, want 0.5", m.Value())
	}
	if m.Peak() != 2 {
		t.Errorf("Peak() = %v, want 2", m.Peak())
	}
	if math.Abs(m.Drift()-0.75) > 1e-12 {
		t.Errorf("Drift() = %v, want 0.75", m.Drift())
	}

	m.Reset()
	if m.Value() != 0 || m.Peak() != 0 || m.Drift() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestPeakAmplitude(t *testing.T) {
	m := NewPeakAmplitude()
	g := grid.New(50, 50, 5)
	g.Ez.Set(3, 3, -7)
	g.Ez.Set(4, 4, 2)

	m.Observe(g, 0)
	if m.Value() != 7 {
		t.Errorf("Value() = %v, want 7", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestProbe(t *testing.T) {
	p := NewProbe(2, 3)
	g := grid.New(50, 50, 5)

	p.Observe(g, 0)
	g.Ez.Set(2, 3, 1.5)
	p.Observe(g, 2)

	if len(p.Series()) != 2 || p.Series()[1] != 1.5 {
		t.Errorf("unexpected series %v", p.Series())
	}
	if p.Times()[1] != 2 {
		t.Errorf("unexpected times %v", p.Times())
	}
	if p.Value() != 1.5 {
		t.Errorf("Value() = %v, want 1.5", p.Value())
	}

	p.Reset()
	if len(p.Series()) != 0 || p.Value() != 0 {
		t.Error("expected empty probe after reset")
	}
}
