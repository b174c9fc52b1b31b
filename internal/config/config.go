package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sdgft/internal/params"
)

const (
	DefaultChiStart   = 0.0
	DefaultChiEnd     = 1.0
	DefaultFlowPoints = 11
	DefaultMaxZ       = 3.0
	DefaultPlotPoints = 60
	DefaultLMax       = 500
)

type Config struct {
	Model     params.Model     `yaml:"model"`
	Cosmology params.Cosmology `yaml:"cosmology"`
	Numerics  params.Numerics  `yaml:"numerics"`
	Flow      FlowConfig       `yaml:"flow"`
	Plot      PlotConfig       `yaml:"plot"`
}

// FlowConfig describes the checkpoint grid of a flow run.
type FlowConfig struct {
	ChiStart float64 `yaml:"chi_start"`
	ChiEnd   float64 `yaml:"chi_end"`
	Points   int     `yaml:"points"`
}

type PlotConfig struct {
	MaxZ   float64 `yaml:"max_z"`
	Points int     `yaml:"points"`
	LMax   int     `yaml:"l_max"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:     params.DefaultModel(),
		Cosmology: params.DefaultCosmology(),
		Numerics:  params.DefaultNumerics(),
		Flow: FlowConfig{
			ChiStart: DefaultChiStart,
			ChiEnd:   DefaultChiEnd,
			Points:   DefaultFlowPoints,
		},
		Plot: PlotConfig{
			MaxZ:   DefaultMaxZ,
			Points: DefaultPlotPoints,
			LMax:   DefaultLMax,
		},
	}
}

// Load reads a YAML file over the defaults, so partial files are valid.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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

func (c *Config) Validate() error {
	if err := c.Model.Validate(); err != nil {
		return err
	}
	if err := c.Cosmology.Validate(); err != nil {
		return err
	}
	if err := c.Numerics.Validate(); err != nil {
		return err
	}
	if c.Flow.Points < 1 {
		return fmt.Errorf("%w: flow.points must be >= 1", params.ErrParameterBounds)
	}
	if c.Flow.Points > 1 && !(c.Flow.ChiEnd > c.Flow.ChiStart) {
		return fmt.Errorf("%w: flow.chi_end must exceed flow.chi_start", params.ErrParameterBounds)
	}
	if !(c.Plot.MaxZ > 0) || c.Plot.Points < 2 || c.Plot.LMax < 2 {
		return fmt.Errorf("%w: plot needs max_z > 0, points >= 2, l_max >= 2", params.ErrParameterBounds)
	}
	return nil
}

// Clone returns a deep copy; every field is a value.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
