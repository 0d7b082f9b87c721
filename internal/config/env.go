package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envOverrides lists the settings that may be overridden from the
// environment. Unset variables keep the values copied in from the config.
type envOverrides struct {
	Dt          float64 `env:"FIELDSIM_DT"`
	Dx          float64 `env:"FIELDSIM_DX"`
	Steps       int     `env:"FIELDSIM_STEPS"`
	Density     int     `env:"FIELDSIM_DENSITY"`
	Workers     int     `env:"FIELDSIM_WORKERS"`
	CheckFinite bool    `env:"FIELDSIM_CHECK_FINITE"`
}

// ApplyEnv overlays FIELDSIM_* environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	o := envOverrides{
		Dt:          cfg.Dt,
		Dx:          cfg.Dx,
		Steps:       cfg.Steps,
		Density:     cfg.FieldLineDensity,
		Workers:     cfg.Workers,
		CheckFinite: cfg.CheckFinite,
	}
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	cfg.Dt = o.Dt
	cfg.Dx = o.Dx
	cfg.Steps = o.Steps
	cfg.FieldLineDensity = o.Density
	cfg.Workers = o.Workers
	cfg.CheckFinite = o.CheckFinite
	return nil
}
