package profile

import (
	"fmt"
	"strings"
)

// Match selects the first declared profile whose required resolutions are
// all present among the detected ones (builtin entries always match). The
// scan is pure and order-stable, so matching the same inputs twice yields
// the same profile.
func Match(detected []string, profiles []Profile) (*Profile, error) {
	present := toSet(detected)
	for i := range profiles {
		if satisfied(&profiles[i], present) {
			return &profiles[i], nil
		}
	}
	return nil, fmt.Errorf("%w: detected [%s]", ErrNoMatch, strings.Join(detected, ", "))
}

// Require resolves an explicitly named profile, skipping matching. The
// profile must exist and its primary monitor's resolution must be present.
func Require(name string, detected []string, profiles []Profile) (*Profile, error) {
	for i := range profiles {
		p := &profiles[i]
		if p.Name != name {
			continue
		}
		primary := p.Primary()
		if primary == nil {
			return nil, fmt.Errorf("%w: %q has no primary monitor", ErrNotSatisfiable, name)
		}
		if primary.Resolution != BuiltinResolution && !toSet(detected)[primary.Resolution] {
			return nil, fmt.Errorf("%w: %q needs primary %s, detected [%s]",
				ErrNotSatisfiable, name, primary.Resolution, strings.Join(detected, ", "))
		}
		return p, nil
	}
	return nil, fmt.Errorf("%w: no profile named %q", ErrNotSatisfiable, name)
}

func satisfied(p *Profile, present map[string]bool) bool {
	for _, res := range p.RequiredResolutions() {
		if !present[res] {
			return false
		}
	}
	return true
}

func toSet(keys []string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}
