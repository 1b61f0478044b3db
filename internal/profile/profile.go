// Package profile models named monitor/layout profiles and selects the one
// matching the currently connected displays.
package profile

import (
	"errors"
	"fmt"
)

// Roles a monitor spec can take inside a profile. Exactly one spec may be
// primary; the builtin role addresses the machine's built-in screen and its
// resolution entry always matches, whatever panel the machine has.
const (
	RolePrimary = "primary"
	RoleBuiltin = "builtin"

	// BuiltinResolution is the placeholder resolution for the built-in
	// screen, so one profile works across machines with different panels.
	BuiltinResolution = "builtin"
)

var (
	// ErrNoMatch means no configured profile's resolutions are all present.
	ErrNoMatch = errors.New("no profile matches the connected monitors")

	// ErrNotSatisfiable means an explicitly requested profile does not
	// exist or its primary monitor is not connected.
	ErrNotSatisfiable = errors.New("profile not satisfiable")

	// ErrMalformed covers structural profile problems, e.g. two primary
	// roles or an unparseable resolution.
	ErrMalformed = errors.New("malformed profile")
)

// MonitorSpec names one monitor a profile expects, by exact resolution.
type MonitorSpec struct {
	Resolution string `koanf:"resolution" yaml:"resolution"`
	Role       string `koanf:"role" yaml:"role"`
}

// Quadrants assigns applications to the four corners of the primary
// monitor. Unfilled quadrants are simply not used.
type Quadrants struct {
	TopLeft     string `koanf:"top_left" yaml:"top_left,omitempty"`
	TopRight    string `koanf:"top_right" yaml:"top_right,omitempty"`
	BottomLeft  string `koanf:"bottom_left" yaml:"bottom_left,omitempty"`
	BottomRight string `koanf:"bottom_right" yaml:"bottom_right,omitempty"`
}

// Zone is the layout for one monitor role: either a quadrant assignment or
// a plain list of applications that each get the full monitor rectangle.
type Zone struct {
	Quadrants *Quadrants `koanf:"quadrants" yaml:"quadrants,omitempty"`
	Apps      []string   `koanf:"apps" yaml:"apps,omitempty"`
}

// Profile is one named monitor arrangement with its layout. Profiles are
// declared as an ordered list so that "first match wins" is deterministic.
type Profile struct {
	Name     string          `koanf:"name" yaml:"name"`
	Monitors []MonitorSpec   `koanf:"monitors" yaml:"monitors"`
	Layout   map[string]Zone `koanf:"layout" yaml:"layout,omitempty"`
}

// Primary returns the profile's primary monitor spec, or nil.
func (p *Profile) Primary() *MonitorSpec {
	return p.Spec(RolePrimary)
}

// Spec returns the monitor spec holding the given role, or nil.
func (p *Profile) Spec(role string) *MonitorSpec {
	for i := range p.Monitors {
		if p.Monitors[i].Role == role {
			return &p.Monitors[i]
		}
	}
	return nil
}

// RequiredResolutions lists the "WxH" keys the profile needs, excluding the
// builtin placeholder.
func (p *Profile) RequiredResolutions() []string {
	var out []string
	for _, spec := range p.Monitors {
		if spec.Resolution != BuiltinResolution {
			out = append(out, spec.Resolution)
		}
	}
	return out
}

// Validate checks structural invariants common to all profiles.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: profile without a name", ErrMalformed)
	}
	primaries := 0
	for _, spec := range p.Monitors {
		if spec.Role == "" {
			return fmt.Errorf("%w: %s: monitor spec %q has no role", ErrMalformed, p.Name, spec.Resolution)
		}
		if spec.Role == RolePrimary {
			primaries++
		}
		if spec.Resolution != BuiltinResolution {
			if _, _, err := ParseResolution(spec.Resolution); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrMalformed, p.Name, err)
			}
		}
	}
	if primaries > 1 {
		return fmt.Errorf("%w: %s: %d monitor specs claim the primary role", ErrMalformed, p.Name, primaries)
	}
	for role, zone := range p.Layout {
		if p.Spec(role) == nil {
			return fmt.Errorf("%w: %s: layout role %q has no monitor spec", ErrMalformed, p.Name, role)
		}
		if zone.Quadrants != nil && len(zone.Apps) > 0 {
			return fmt.Errorf("%w: %s: layout role %q mixes quadrants and an app list", ErrMalformed, p.Name, role)
		}
	}
	return nil
}

// ParseResolution splits a "WxH" key into its dimensions.
func ParseResolution(key string) (width, height int, err error) {
	if _, err := fmt.Sscanf(key, "%dx%d", &width, &height); err != nil {
		return 0, 0, fmt.Errorf("resolution %q is not in WxH form", key)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("resolution %q has non-positive dimensions", key)
	}
	return width, height, nil
}
