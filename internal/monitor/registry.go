package monitor

import (
	"fmt"
	"log/slog"

	"github.com/kimcharli/mac-app-positioner/internal/platform"
)

// Registry is the immutable per-run snapshot of connected monitors, fully
// annotated with positioning origins. It is rebuilt from scratch on every
// run: when the main-display role moves to a different physical monitor the
// whole positioning space shifts, so nothing keyed by monitor identity may
// survive across runs.
type Registry struct {
	monitors []*Monitor
}

// BuildRegistry validates the enumerator's records and derives positioning
// origins for every monitor.
//
// A malformed non-main monitor is dropped with a warning so a run that does
// not need it can still proceed; a malformed main display is fatal because
// every translation depends on it. Overlapping positioning rectangles are a
// configuration error: the registry is still returned for inspection, but
// alongside ErrConfiguration so positioning runs abort.
func BuildRegistry(raws []platform.RawMonitor) (*Registry, error) {
	if len(raws) == 0 {
		return nil, fmt.Errorf("%w: no monitors detected", ErrConfiguration)
	}

	var main *platform.RawMonitor
	for i := range raws {
		if !raws[i].IsMain {
			continue
		}
		if main != nil {
			return nil, fmt.Errorf("%w: more than one monitor flagged main", ErrConfiguration)
		}
		main = &raws[i]
	}
	if main == nil {
		return nil, fmt.Errorf("%w: no monitor flagged main", ErrConfiguration)
	}
	if main.Width <= 0 || main.Height <= 0 {
		return nil, fmt.Errorf("%w: main display %q has dimensions %dx%d",
			ErrInvalidMonitorData, main.Name, main.Width, main.Height)
	}

	reg := &Registry{}
	for i, raw := range raws {
		origin, relation, err := Translate(raw, *main)
		if err != nil {
			slog.Warn("dropping monitor with invalid data", "name", raw.Name, "error", err)
			continue
		}
		reg.monitors = append(reg.monitors, &Monitor{
			ID:                monitorID(raw, i),
			Name:              raw.Name,
			Resolution:        platform.Size{Width: raw.Width, Height: raw.Height},
			ArrangementOrigin: Point{X: raw.ArrangementX, Y: raw.ArrangementY},
			PositioningOrigin: origin,
			IsMain:            raw.IsMain,
			IsBuiltin:         raw.IsBuiltin,
			Relation:          relation,
		})
	}

	if err := reg.checkOverlap(); err != nil {
		return reg, err
	}
	return reg, nil
}

func (r *Registry) checkOverlap() error {
	for i := 0; i < len(r.monitors); i++ {
		for j := i + 1; j < len(r.monitors); j++ {
			a, b := r.monitors[i], r.monitors[j]
			if a.PositioningRect().Overlaps(b.PositioningRect()) {
				slog.Error("monitors overlap in positioning space",
					"a", a.ID, "a_rect", a.PositioningRect().String(),
					"b", b.ID, "b_rect", b.PositioningRect().String())
				return fmt.Errorf("%w: monitors %q and %q overlap", ErrConfiguration, a.ID, b.ID)
			}
		}
	}
	return nil
}

// Monitors returns the snapshot in enumeration order.
func (r *Registry) Monitors() []*Monitor {
	return r.monitors
}

// Main returns the monitor the OS flags as the main display.
func (r *Registry) Main() *Monitor {
	for _, m := range r.monitors {
		if m.IsMain {
			return m
		}
	}
	return nil
}

// Builtin returns the machine's built-in screen, or nil when running
// closed-lid with externals only.
func (r *Registry) Builtin() *Monitor {
	for _, m := range r.monitors {
		if m.IsBuiltin {
			return m
		}
	}
	return nil
}

// FindContaining returns the monitor whose positioning rectangle contains
// the point, or nil. Containment is half-open, [x, x+w) x [y, y+h), and ties
// resolve to the first match in registry order; overlap itself is already
// reported at build time.
func (r *Registry) FindContaining(x, y int) *Monitor {
	for _, m := range r.monitors {
		if m.PositioningRect().Contains(x, y) {
			return m
		}
	}
	return nil
}

// ByResolution returns every monitor with exactly the given resolution, in
// registry order.
func (r *Registry) ByResolution(width, height int) []*Monitor {
	var out []*Monitor
	for _, m := range r.monitors {
		if m.Resolution.Width == width && m.Resolution.Height == height {
			out = append(out, m)
		}
	}
	return out
}

// Resolutions returns the set of detected "WxH" keys in enumeration order.
func (r *Registry) Resolutions() []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range r.monitors {
		key := m.ResolutionKey()
		if !seen[key] {
			seen[key] = true
			out = append(out, key)
		}
	}
	return out
}

// HasResolution reports whether any detected monitor has the "WxH" key.
func (r *Registry) HasResolution(key string) bool {
	for _, m := range r.monitors {
		if m.ResolutionKey() == key {
			return true
		}
	}
	return false
}

// Hints converts the snapshot into persistable positioning hints, keyed by
// monitor ID.
func (r *Registry) Hints() map[string]platform.Hint {
	hints := make(map[string]platform.Hint, len(r.monitors))
	for _, m := range r.monitors {
		hints[m.ID] = platform.Hint{
			PositioningX: m.PositioningOrigin.X,
			PositioningY: m.PositioningOrigin.Y,
		}
	}
	return hints
}
