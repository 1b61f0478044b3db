package layout

import (
	"github.com/kimcharli/mac-app-positioner/internal/platform"
	"github.com/kimcharli/mac-app-positioner/internal/profile"
)

// DefaultTolerance is the per-axis pixel slack allowed between a requested
// and an actual window origin before a move counts as off-target. Title
// bars and other reserved regions routinely consume a few pixels.
const DefaultTolerance = 25

// Placement is one application's computed target rectangle. Quadrant is
// empty for full-monitor placements.
type Placement struct {
	AppID    string
	Quadrant Quadrant
	Target   platform.Rect
}

// SizeLookup resolves an application's current natural window size. The
// second return is false when no window is measurable, in which case the
// placement falls back to the full quadrant (or monitor) size.
type SizeLookup func(appID string) (platform.Size, bool)

// QuadrantPlan corner-aligns each assigned application inside its quadrant
// of the monitor rectangle. Placements come out in fixed quadrant order
// (top-left, top-right, bottom-left, bottom-right), skipping unassigned
// quadrants, so plans are reproducible.
func QuadrantPlan(monitor platform.Rect, assignment profile.Quadrants, sizes SizeLookup) []Placement {
	grid := Split(monitor)
	byQuadrant := map[Quadrant]string{
		TopLeft:     assignment.TopLeft,
		TopRight:    assignment.TopRight,
		BottomLeft:  assignment.BottomLeft,
		BottomRight: assignment.BottomRight,
	}

	var plan []Placement
	for _, q := range quadrantOrder {
		appID := byQuadrant[q]
		if appID == "" {
			continue
		}
		quad := grid.Rect(q)
		natural, ok := sizes(appID)
		if !ok {
			natural = platform.Size{Width: quad.Width, Height: quad.Height}
		}
		plan = append(plan, Placement{
			AppID:    appID,
			Quadrant: q,
			Target:   CornerAlign(q, quad, natural),
		})
	}
	return plan
}

// FullZonePlan gives each application the entire monitor rectangle. Used
// for single-zone roles such as the built-in screen.
func FullZonePlan(monitor platform.Rect, apps []string) []Placement {
	plan := make([]Placement, 0, len(apps))
	for _, appID := range apps {
		plan = append(plan, Placement{AppID: appID, Target: monitor})
	}
	return plan
}

// WithinTolerance reports whether an actual window origin landed within the
// per-axis pixel tolerance of the requested one. Size differences are
// ignored: applications may refuse a resize yet still sit at the right
// corner.
func WithinTolerance(want, got platform.Rect, tolerance int) bool {
	return abs(got.X-want.X) <= tolerance && abs(got.Y-want.Y) <= tolerance
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
