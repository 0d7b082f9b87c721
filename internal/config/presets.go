package config

import "sort"

func preset(steps int, charges []ChargeConfig, pulses []PulseConfig, probe *ProbeConfig) *Config {
	cfg := DefaultConfig()
	cfg.Steps = steps
	cfg.Charges = charges
	cfg.Pulses = pulses
	cfg.Probe = probe
	return cfg
}

var Presets = map[string]*Config{
	"dipole": preset(400,
		[]ChargeConfig{
			{X: 60, Y: 60, Magnitude: DefaultMagnitude},
			{X: 100, Y: 60, Magnitude: -DefaultMagnitude},
		}, nil, &ProbeConfig{X: 80, Y: 60}),
	"quadrupole": preset(400,
		[]ChargeConfig{
			{X: 60, Y: 40, Magnitude: DefaultMagnitude},
			{X: 100, Y: 40, Magnitude: -DefaultMagnitude},
			{X: 60, Y: 80, Magnitude: -DefaultMagnitude},
			{X: 100, Y: 80, Magnitude: DefaultMagnitude},
		}, nil, &ProbeConfig{X: 80, Y: 60}),
	"antenna": preset(600,
		[]ChargeConfig{
			{X: 80, Y: 60, Magnitude: 0, Oscillating: true, BaseMagnitude: 1, Frequency: 0.02},
		}, nil, &ProbeConfig{X: 120, Y: 60}),
	"pulse": preset(300, nil,
		[]PulseConfig{
			{X: 80, Y: 60, Magnitude: DefaultMagnitude, Step: 0},
			{X: 40, Y: 30, Magnitude: -DefaultMagnitude, Step: 50},
		}, &ProbeConfig{X: 100, Y: 60}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
