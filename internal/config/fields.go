package config

import (
	"errors"
	"fmt"
)

var ErrUnknownParam = errors.New("config: unknown parameter")

type field struct {
	name string
	ptr  func(*Config) *float64
}

// fields lists the scalar parameters addressable by name, in display order.
var fields = []field{
	{"theta_max", func(c *Config) *float64 { return &c.Model.ThetaMax }},
	{"d_asymptotic", func(c *Config) *float64 { return &c.Model.DAsymptotic }},
	{"xi_g", func(c *Config) *float64 { return &c.Model.XiG }},
	{"beta", func(c *Config) *float64 { return &c.Model.Beta }},
	{"alpha", func(c *Config) *float64 { return &c.Model.Alpha }},
	{"beta_iso", func(c *Config) *float64 { return &c.Model.BetaIso }},
	{"h", func(c *Config) *float64 { return &c.Cosmology.H }},
	{"omega_b", func(c *Config) *float64 { return &c.Cosmology.OmegaB }},
	{"omega_cdm", func(c *Config) *float64 { return &c.Cosmology.OmegaCDM }},
	{"omega_k", func(c *Config) *float64 { return &c.Cosmology.OmegaK }},
	{"omega_l", func(c *Config) *float64 { return &c.Cosmology.OmegaL }},
	{"n_s", func(c *Config) *float64 { return &c.Cosmology.Ns }},
	{"a_s", func(c *Config) *float64 { return &c.Cosmology.As }},
}

// ParamNames returns the names accepted by Param.
func ParamNames() []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}
	return names
}

// Param returns a pointer to the named parameter inside c.
func (c *Config) Param(name string) (*float64, error) {
	for _, f := range fields {
		if f.name == name {
			return f.ptr(c), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownParam, name)
}

// With returns a validated copy of c with the named parameters replaced.
func (c *Config) With(values map[string]float64) (*Config, error) {
	next := c.Clone()
	for name, v := range values {
		p, err := next.Param(name)
		if err != nil {
			return nil, err
		}
		*p = v
	}
	if err := next.Validate(); err != nil {
		return nil, err
	}
	return next, nil
}
