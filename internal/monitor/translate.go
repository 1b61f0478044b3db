package monitor

import (
	"fmt"

	"github.com/kimcharli/mac-app-positioner/internal/platform"
)

// Translate converts a monitor's arrangement-space placement into its
// window-positioning origin, relative to whichever monitor is currently
// flagged main. This is the single authority for the conversion; no cached
// per-monitor table is consulted.
//
// The main monitor sits at (0,0) in positioning space regardless of its
// arrangement origin. For every other monitor the X coordinate carries over
// unchanged (the sign already encodes left/right in both systems) and only Y
// converts, by comparing arrangement Y against the main display's:
//
//	arrangement reports "below" main (dy > 0)  -> physically above -> y = -height
//	arrangement reports "above" main (dy < 0)  -> physically below -> y = main height
//	equal                                      -> vertically level -> y = 0
func Translate(raw, main platform.RawMonitor) (Point, Relation, error) {
	if raw.Width <= 0 || raw.Height <= 0 {
		return Point{}, "", fmt.Errorf("%w: %q has dimensions %dx%d",
			ErrInvalidMonitorData, raw.Name, raw.Width, raw.Height)
	}
	if main.Height <= 0 {
		return Point{}, "", fmt.Errorf("%w: main display %q has height %d",
			ErrInvalidMonitorData, main.Name, main.Height)
	}

	if raw.IsMain {
		return Point{X: 0, Y: 0}, RelationSelf, nil
	}

	dy := raw.ArrangementY - main.ArrangementY
	dx := raw.ArrangementX - main.ArrangementX

	switch {
	case dy > 0:
		return Point{X: raw.ArrangementX, Y: -raw.Height}, RelationAbove, nil
	case dy < 0:
		return Point{X: raw.ArrangementX, Y: main.Height}, RelationBelow, nil
	case dx < 0:
		return Point{X: raw.ArrangementX, Y: 0}, RelationLeft, nil
	case dx > 0:
		return Point{X: raw.ArrangementX, Y: 0}, RelationRight, nil
	default:
		return Point{X: raw.ArrangementX, Y: 0}, RelationSameLevel, nil
	}
}
