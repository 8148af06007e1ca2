// SPDX-License-Identifier: Unlicense OR MIT

// Package config loads the engine's tuning knobs from a YAML file through
// viper, the way the retrieved corpus's reinforcement-learning tooling does.
// No command-line flag overrides a value loaded here.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"

	"github.com/kaedeflow/touchplan/geom"
	"github.com/kaedeflow/touchplan/plan"
	"github.com/kaedeflow/touchplan/touch"
)

// Config is the on-disk shape of an engine configuration file.
type Config struct {
	Screen struct {
		Width  float64 `mapstructure:"width" yaml:"width"`
		Height float64 `mapstructure:"height" yaml:"height"`
	} `mapstructure:"screen" yaml:"screen"`

	Pointer struct {
		IDBase int `mapstructure:"id_base" yaml:"id_base"`
		IDStep int `mapstructure:"id_step" yaml:"id_step"`
	} `mapstructure:"pointer" yaml:"pointer"`
}

// Default returns a Config matching the hardcoded defaults baked into the
// geom and touch packages, for callers that don't supply a config file.
func Default() Config {
	var c Config
	c.Screen.Width = geom.DefaultBounds.Width
	c.Screen.Height = geom.DefaultBounds.Height
	c.Pointer.IDBase = int(touch.DefaultPointerIDBase)
	c.Pointer.IDStep = 1
	return c
}

// Load reads a YAML config file at path through viper. A missing file is not
// an error: it falls back to Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok || errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	return cfg, nil
}

// PlanConfig translates a loaded Config into the plan package's Engine
// configuration.
func (c Config) PlanConfig() plan.Config {
	return plan.Config{
		Bounds:        geom.Bounds{Width: c.Screen.Width, Height: c.Screen.Height},
		PointerIDBase: touch.PointerID(c.Pointer.IDBase),
		PointerIDStep: touch.PointerID(c.Pointer.IDStep),
	}
}
