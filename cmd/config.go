/*
Copyright © 2023 Glossopoeia
*/
package cmd

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const (
	PhaseTypeck = "typeck"
	PhaseTrans  = "trans"

	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"

	DefaultConfigFile = "subst.toml"
)

// Settings read from subst.toml. Command line flags override these.
type Config struct {
	// The compilation phase substitutions are performed in. Fixtures that do not give
	// regions get concrete empty regions while type checking, and erased regions during
	// translation.
	Phase string `toml:"phase"`
	Color string `toml:"color"`
	// Print the Go structure of every result.
	Dump bool `toml:"dump"`
	// Fail when substitution reports errors.
	Strict bool `toml:"strict"`
	// How many fixtures to apply at once. Zero means one per CPU.
	Jobs int `toml:"jobs"`
}

func DefaultConfig() Config {
	return Config{Phase: PhaseTypeck, Color: ColorAuto}
}

// Load the config file at path on top of the defaults. A missing file is only an error
// when the path was given explicitly.
func LoadConfig(path string, explicit bool) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "decoding config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.Errorf("config %s: unknown keys %v", path, undecoded)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Phase {
	case PhaseTypeck, PhaseTrans:
	default:
		return errors.Errorf("unknown phase %q, expected %q or %q", c.Phase, PhaseTypeck, PhaseTrans)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.Errorf("unknown color mode %q, expected %q, %q, or %q", c.Color, ColorAuto, ColorAlways, ColorNever)
	}
	if c.Jobs < 0 {
		return errors.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	return nil
}
