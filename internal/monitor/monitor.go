// Package monitor builds the per-run snapshot of connected displays and owns
// the translation between the two coordinate systems macOS reports:
// display-arrangement coordinates (monitor detection) and window-positioning
// coordinates (the API that actually moves windows). The two disagree on
// origin and vertical axis direction, so every positioning decision goes
// through the derived positioning origin computed here.
package monitor

import (
	"errors"
	"fmt"

	"github.com/kimcharli/mac-app-positioner/internal/platform"
)

var (
	// ErrConfiguration covers structurally unusable display setups: no
	// monitors, zero or more than one main display, overlapping rectangles.
	ErrConfiguration = errors.New("invalid display configuration")

	// ErrInvalidMonitorData covers malformed enumerator records, such as a
	// zero width or height. Never defaulted to (0,0).
	ErrInvalidMonitorData = errors.New("invalid monitor data")
)

// Relation describes where a monitor sits physically relative to the main
// display, derived from arrangement-space deltas.
type Relation string

const (
	RelationSelf      Relation = "self"
	RelationAbove     Relation = "above"
	RelationBelow     Relation = "below"
	RelationLeft      Relation = "left"
	RelationRight     Relation = "right"
	RelationSameLevel Relation = "same-level"
)

// Point is a coordinate pair in either coordinate system.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Monitor is one connected display carrying both coordinate representations.
// PositioningOrigin and Relation are derived during registry construction;
// the struct is not mutated afterwards.
type Monitor struct {
	ID                string        `json:"id"`
	Name              string        `json:"name,omitempty"`
	Resolution        platform.Size `json:"resolution"`
	ArrangementOrigin Point         `json:"arrangement_origin"`
	PositioningOrigin Point         `json:"positioning_origin"`
	IsMain            bool          `json:"is_main"`
	IsBuiltin         bool          `json:"is_builtin"`
	Relation          Relation      `json:"relation"`
}

// PositioningRect is the monitor's bounds in window-positioning coordinates.
func (m *Monitor) PositioningRect() platform.Rect {
	return platform.Rect{
		X:      m.PositioningOrigin.X,
		Y:      m.PositioningOrigin.Y,
		Width:  m.Resolution.Width,
		Height: m.Resolution.Height,
	}
}

// ResolutionKey is the "WxH" form used by profile matching.
func (m *Monitor) ResolutionKey() string {
	return m.Resolution.String()
}

func monitorID(raw platform.RawMonitor, index int) string {
	if raw.Name != "" {
		return raw.Name
	}
	// Fallback identity when the enumerator has no hardware name.
	return fmt.Sprintf("%dx%d_%d", raw.Width, raw.Height, index)
}
