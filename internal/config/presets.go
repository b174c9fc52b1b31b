package config

import "sort"

func preset(mutate func(*Config)) *Config {
	cfg := DefaultConfig()
	mutate(cfg)
	return cfg
}

var Presets = map[string]*Config{
	"planck2018": DefaultConfig(),
	"sh0es": preset(func(c *Config) {
		c.Cosmology.H = 0.7304
	}),
	"open": preset(func(c *Config) {
		c.Cosmology.OmegaK = 0.05
		c.Cosmology.OmegaL = 0.6347
	}),
	"closed": preset(func(c *Config) {
		c.Cosmology.OmegaK = -0.05
		c.Cosmology.OmegaL = 0.7347
	}),
	"flat-cone": preset(func(c *Config) {
		c.Model.ThetaMax = 5.0
	}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
