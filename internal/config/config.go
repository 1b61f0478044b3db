// Package config loads and persists the positioner configuration: ordered
// profiles, per-application settings, and the move tolerance.
//
// Precedence (low -> high): defaults, YAML file, environment variables with
// the MAP_ prefix (e.g. MAP_TOLERANCE=10).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"

	"github.com/kimcharli/mac-app-positioner/internal/layout"
	"github.com/kimcharli/mac-app-positioner/internal/profile"
)

// Sentinel error kinds for this package. Callers use errors.Is.
var (
	ErrInvalid = errors.New("invalid config")
	ErrLoad    = errors.New("load config failed")
)

const envPrefix = "MAP_"

// Strategy values for per-application move behavior.
const (
	// StrategyStandard issues a single move and trusts the reported result.
	StrategyStandard = "standard"

	// StrategyVerify re-reads the window frame after the move settles.
	// For applications with self-managed windows (browsers) that may
	// quietly override system positioning.
	StrategyVerify = "verify"
)

// AppSettings tunes how one application's window is handled.
type AppSettings struct {
	Strategy string `koanf:"strategy" yaml:"strategy,omitempty"`
}

// Config is the full on-disk configuration.
type Config struct {
	// Tolerance is the per-axis pixel slack for judging move results.
	Tolerance int `koanf:"tolerance" yaml:"tolerance,omitempty"`

	// Profiles in declaration order; the first matching one wins.
	Profiles []profile.Profile `koanf:"profiles" yaml:"profiles"`

	// Applications maps bundle identifiers to per-app settings.
	Applications map[string]AppSettings `koanf:"applications" yaml:"applications,omitempty"`
}

// Default returns a configuration with no profiles and standard tolerance.
func Default() *Config {
	return &Config{
		Tolerance: layout.DefaultTolerance,
	}
}

// Load reads the YAML file at path and applies MAP_ environment overrides.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(path), kyaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, path, err)
	}

	// MAP_TOLERANCE -> tolerance, etc. Underscores are preserved so env
	// keys line up with the koanf tags on the struct.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: environment: %v", ErrLoad, err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration's structural invariants.
func (c *Config) Validate() error {
	if c.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance must not be negative", ErrInvalid)
	}
	seen := map[string]bool{}
	for i := range c.Profiles {
		p := &c.Profiles[i]
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: duplicate profile %q", ErrInvalid, p.Name)
		}
		seen[p.Name] = true
	}
	for bundle, app := range c.Applications {
		switch app.Strategy {
		case "", StrategyStandard, StrategyVerify:
		default:
			return fmt.Errorf("%w: application %q has unknown strategy %q", ErrInvalid, bundle, app.Strategy)
		}
	}
	return nil
}

// Save writes the configuration back to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// Profile returns the named profile, or nil.
func (c *Config) Profile(name string) *profile.Profile {
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			return &c.Profiles[i]
		}
	}
	return nil
}

// Strategy returns the move strategy for a bundle identifier, defaulting to
// standard.
func (c *Config) Strategy(bundleID string) string {
	if app, ok := c.Applications[bundleID]; ok && app.Strategy != "" {
		return app.Strategy
	}
	return StrategyStandard
}
