package export

import (
	"encoding/json"
	"io"
	"math"

	"github.com/san-kum/fieldsim/internal/charge"
	"github.com/san-kum/fieldsim/internal/sim"
)

type ChargeData struct {
	ID            int     `json:"id"`
	X             int     `json:"x"`
	Y             int     `json:"y"`
	Magnitude     float64 `json:"magnitude"`
	Oscillating   bool    `json:"oscillating,omitempty"`
	BaseMagnitude float64 `json:"base_magnitude,omitempty"`
	Frequency     float64 `json:"frequency,omitempty"`
}

type Summary struct {
	Dt        float64             `json:"dt"`
	Dx        float64             `json:"dx"`
	CFL       float64             `json:"cfl"`
	CFLStatus string              `json:"cfl_status"`
	Steps     int                 `json:"steps"`
	Time      float64             `json:"time"`
	Charges   []ChargeData        `json:"charges"`
	Metrics   map[string]*float64 `json:"metrics"`
	Errors    []string            `json:"errors,omitempty"`
}

// NewSummary collects a run result and the final charge set.
func NewSummary(result *sim.Result, charges []charge.Charge) Summary {
	s := Summary{
		Dt:        result.Params.Dt,
		Dx:        result.Params.Dx,
		CFL:       result.CFL.Number,
		CFLStatus: result.CFL.Status.String(),
		Steps:     result.StepsTaken,
		Time:      result.Time,
		Charges:   make([]ChargeData, len(charges)),
		Metrics:   make(map[string]*float64, len(result.Metrics)),
	}
	for name, v := range result.Metrics {
		s.Metrics[name] = finite(v)
	}
	for i, c := range charges {
		s.Charges[i] = ChargeData{
			ID:            int(c.ID),
			X:             c.X,
			Y:             c.Y,
			Magnitude:     c.Magnitude,
			Oscillating:   c.Oscillating,
			BaseMagnitude: c.BaseMagnitude,
			Frequency:     c.Frequency,
		}
	}
	for _, err := range result.Errors {
		s.Errors = append(s.Errors, err.Error())
	}
	return s
}

// finite returns nil for NaN and Inf, which JSON cannot encode. A diverged
// run exports its metrics as null.
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func WriteSummaryJSON(w io.Writer, s Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
