package metrics

import (
	"math"
	"strings"
	"testing"
)

func TestCFLClassification(t *testing.T) {
	tests := []struct {
		dt, dx float64
		cfl    float64
		status Status
	}{
		{5, 5, 1.0, PossiblyUnstable},
		{4, 5, 0.8, Stable},
		{4.5, 5, 0.9, Stable},
		{6, 5, 1.2, Unstable},
		{2, 5, 0.4, Stable},
		{4.75, 5, 0.95, PossiblyUnstable},
	}

	for _, tt := range tests {
		r := AnalyzeCFL(tt.dt, tt.dx)
		if math.Abs(r.Number-tt.cfl) > 1e-12 {
			t.Errorf("CFL(%v, %v) = %v, want %v", tt.dt, tt.dx, r.Number, tt.cfl)
		}
		if r.Status != tt.status {
			t.Errorf("CFL(%v, %v) status = %v, want %v", tt.dt, tt.dx, r.Status, tt.status)
		}
	}
}

func TestCFL_UnitCourantIsNotSafe(t *testing.T) {
	if AnalyzeCFL(5, 5).Status.Safe() {
		t.Error("CFL 1.0 must not be reported safe")
	}
	if !AnalyzeCFL(4.5, 5).Status.Safe() {
		t.Error("CFL 0.9 must be safe")
	}
}

func TestCFLReport_String(t *testing.T) {
	s := AnalyzeCFL(2, 5).String()
	if !strings.HasPrefix(s, "CFL: 0.400") || !strings.Contains(s, "Stable") {
		t.Errorf("unexpected report %q", s)
	}
	if Status(9).String() != "status(9)" {
		t.Error("unknown status formatting")
	}
}
