package config

import (
	"fmt"
	"os"

	"github.com/san-kum/fieldsim/internal/charge"
	"github.com/san-kum/fieldsim/internal/fieldlines"
	"github.com/san-kum/fieldsim/internal/metrics"
	"github.com/san-kum/fieldsim/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth        = 800.0
	DefaultHeight       = 600.0
	DefaultDt           = 2.0
	DefaultDx           = 5.0
	DefaultSteps        = 500
	DefaultEraseRadius  = 5.0
	DefaultSelectRadius = 5.0
	DefaultMagnitude    = 10.0
)

type Config struct {
	Width            float64        `yaml:"width"`
	Height           float64        `yaml:"height"`
	Dt               float64        `yaml:"dt"`
	Dx               float64        `yaml:"dx"`
	Steps            int            `yaml:"steps"`
	FieldLineDensity int            `yaml:"field_line_density"`
	EraseRadius      float64        `yaml:"erase_radius"`
	SelectRadius     float64        `yaml:"select_radius"`
	Workers          int            `yaml:"workers"`
	CheckFinite      bool           `yaml:"check_finite"`
	Charges          []ChargeConfig `yaml:"charges"`
	Pulses           []PulseConfig  `yaml:"pulses"`
	Probe            *ProbeConfig   `yaml:"probe,omitempty"`
}

type ChargeConfig struct {
	X             int     `yaml:"x"`
	Y             int     `yaml:"y"`
	Magnitude     float64 `yaml:"magnitude"`
	Oscillating   bool    `yaml:"oscillating,omitempty"`
	BaseMagnitude float64 `yaml:"base_magnitude,omitempty"`
	Frequency     float64 `yaml:"frequency,omitempty"`
}

type PulseConfig struct {
	X         int     `yaml:"x"`
	Y         int     `yaml:"y"`
	Magnitude float64 `yaml:"magnitude"`
	Step      int     `yaml:"step"`
}

type ProbeConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:            DefaultWidth,
		Height:           DefaultHeight,
		Dt:               DefaultDt,
		Dx:               DefaultDx,
		Steps:            DefaultSteps,
		FieldLineDensity: fieldlines.DefaultDensity,
		EraseRadius:      DefaultEraseRadius,
		SelectRadius:     DefaultSelectRadius,
		Workers:          1,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Params() sim.Params {
	return sim.Params{Dt: c.Dt, Dx: c.Dx}
}

// Validate applies the same rules the simulation enforces on parameters,
// plus sanity checks on the run settings.
func (c *Config) Validate() error {
	if err := sim.ValidateParams(c.Width, c.Height, c.Params()); err != nil {
		return err
	}
	if c.Steps < 0 {
		return fmt.Errorf("steps must be non-negative, got %d", c.Steps)
	}
	if c.FieldLineDensity < 0 {
		return fmt.Errorf("field_line_density must be non-negative, got %d", c.FieldLineDensity)
	}
	return nil
}

func (c *Config) CFL() metrics.CFLReport {
	return metrics.AnalyzeCFL(c.Dt, c.Dx)
}

// Build creates a simulation and places the configured charges.
func (c *Config) Build(opts ...sim.Option) (*sim.Simulation, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.CheckFinite {
		opts = append(opts, sim.WithValidation())
	}
	if c.Workers > 1 {
		opts = append(opts, sim.WithWorkers(c.Workers))
	}
	s, err := sim.New(c.Width, c.Height, c.Params(), opts...)
	if err != nil {
		return nil, err
	}
	for _, ch := range c.Charges {
		var chargeOpts []charge.Option
		if ch.Oscillating {
			base := ch.BaseMagnitude
			if base == 0 {
				base = ch.Magnitude
			}
			chargeOpts = append(chargeOpts, charge.Oscillating(base, ch.Frequency))
		}
		s.AddCharge(ch.X, ch.Y, ch.Magnitude, chargeOpts...)
	}
	return s, nil
}

// RunConfig converts the run settings into a headless run description.
func (c *Config) RunConfig() sim.RunConfig {
	pulses := make([]sim.ScheduledPulse, 0, len(c.Pulses))
	for _, p := range c.Pulses {
		pulses = append(pulses, sim.ScheduledPulse{Step: p.Step, X: p.X, Y: p.Y, Magnitude: p.Magnitude})
	}
	return sim.RunConfig{Steps: c.Steps, Pulses: pulses}
}

// Clone returns a deep copy, so presets can be adjusted safely.
func (c *Config) Clone() *Config {
	out := *c
	out.Charges = append([]ChargeConfig(nil), c.Charges...)
	out.Pulses = append([]PulseConfig(nil), c.Pulses...)
	if c.Probe != nil {
		p := *c.Probe
		out.Probe = &p
	}
	return &out
}
