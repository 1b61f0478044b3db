// Package layout computes target rectangles: quadrant subdivision of the
// primary monitor, corner alignment of each application's natural window
// size, and the tolerance rule for judging move results. Everything here is
// pure geometry over window-positioning coordinates.
package layout

import (
	"github.com/kimcharli/mac-app-positioner/internal/platform"
)

// Quadrant names one corner region of the primary monitor.
type Quadrant string

const (
	TopLeft     Quadrant = "top_left"
	TopRight    Quadrant = "top_right"
	BottomLeft  Quadrant = "bottom_left"
	BottomRight Quadrant = "bottom_right"
)

// quadrantOrder fixes the deterministic emission order of placements.
var quadrantOrder = []Quadrant{TopLeft, TopRight, BottomLeft, BottomRight}

// Grid is the 2x2 subdivision of a monitor rectangle. Widths and heights
// are halved with integer division; the remainder pixels belong to the
// right and bottom quadrants, so the four rectangles partition the monitor
// exactly.
type Grid struct {
	TopLeft     platform.Rect
	TopRight    platform.Rect
	BottomLeft  platform.Rect
	BottomRight platform.Rect
}

// Split subdivides a monitor rectangle into its four quadrants.
func Split(r platform.Rect) Grid {
	halfW := r.Width / 2
	halfH := r.Height / 2
	rightW := r.Width - halfW
	bottomH := r.Height - halfH

	return Grid{
		TopLeft:     platform.Rect{X: r.X, Y: r.Y, Width: halfW, Height: halfH},
		TopRight:    platform.Rect{X: r.X + halfW, Y: r.Y, Width: rightW, Height: halfH},
		BottomLeft:  platform.Rect{X: r.X, Y: r.Y + halfH, Width: halfW, Height: bottomH},
		BottomRight: platform.Rect{X: r.X + halfW, Y: r.Y + halfH, Width: rightW, Height: bottomH},
	}
}

// Rect returns the rectangle for a named quadrant.
func (g Grid) Rect(q Quadrant) platform.Rect {
	switch q {
	case TopLeft:
		return g.TopLeft
	case TopRight:
		return g.TopRight
	case BottomLeft:
		return g.BottomLeft
	default:
		return g.BottomRight
	}
}

// CornerAlign anchors a window of the given natural size to the quadrant's
// matching corner. A window larger than its quadrant is clamped to the
// quadrant dimensions rather than allowed to spill into a neighbor;
// predictable layout wins over preserving oversized natural sizes.
func CornerAlign(q Quadrant, quad platform.Rect, natural platform.Size) platform.Rect {
	w := min(natural.Width, quad.Width)
	h := min(natural.Height, quad.Height)

	target := platform.Rect{X: quad.X, Y: quad.Y, Width: w, Height: h}
	switch q {
	case TopRight:
		target.X = quad.X + quad.Width - w
	case BottomLeft:
		target.Y = quad.Y + quad.Height - h
	case BottomRight:
		target.X = quad.X + quad.Width - w
		target.Y = quad.Y + quad.Height - h
	}
	return target
}
