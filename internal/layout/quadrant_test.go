package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kimcharli/mac-app-positioner/internal/platform"
)

func TestSplitPartitionsExactly(t *testing.T) {
	tests := []struct {
		name string
		rect platform.Rect
	}{
		{name: "even dimensions", rect: platform.Rect{X: 0, Y: 0, Width: 3840, Height: 2160}},
		{name: "odd dimensions", rect: platform.Rect{X: 0, Y: 0, Width: 2057, Height: 1329}},
		{name: "negative origin", rect: platform.Rect{X: -2560, Y: -2160, Width: 3840, Height: 2161}},
		{name: "tiny", rect: platform.Rect{X: 5, Y: 7, Width: 3, Height: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Split(tt.rect)

			// Widths and heights sum back to the monitor dimensions.
			assert.Equal(t, tt.rect.Width, g.TopLeft.Width+g.TopRight.Width)
			assert.Equal(t, tt.rect.Width, g.BottomLeft.Width+g.BottomRight.Width)
			assert.Equal(t, tt.rect.Height, g.TopLeft.Height+g.BottomLeft.Height)
			assert.Equal(t, tt.rect.Height, g.TopRight.Height+g.BottomRight.Height)

			// Remainder pixels belong to the right/bottom quadrants.
			assert.GreaterOrEqual(t, g.TopRight.Width, g.TopLeft.Width)
			assert.GreaterOrEqual(t, g.BottomLeft.Height, g.TopLeft.Height)

			// Pairwise non-overlapping.
			quads := []platform.Rect{g.TopLeft, g.TopRight, g.BottomLeft, g.BottomRight}
			for i := 0; i < len(quads); i++ {
				for j := i + 1; j < len(quads); j++ {
					assert.False(t, quads[i].Overlaps(quads[j]), "quadrants %d and %d overlap", i, j)
				}
			}

			// Union covers the monitor: every quadrant sits inside it and
			// the opposite corners meet the monitor's corners.
			assert.Equal(t, tt.rect.X, g.TopLeft.X)
			assert.Equal(t, tt.rect.Y, g.TopLeft.Y)
			assert.Equal(t, tt.rect.X+tt.rect.Width, g.BottomRight.X+g.BottomRight.Width)
			assert.Equal(t, tt.rect.Y+tt.rect.Height, g.BottomRight.Y+g.BottomRight.Height)
			assert.Equal(t, g.TopLeft.X+g.TopLeft.Width, g.TopRight.X)
			assert.Equal(t, g.TopLeft.Y+g.TopLeft.Height, g.BottomLeft.Y)
		})
	}
}

func TestCornerAlignAnchors(t *testing.T) {
	quad := platform.Rect{X: 100, Y: -200, Width: 800, Height: 600}
	natural := platform.Size{Width: 300, Height: 250}

	tests := []struct {
		name     string
		quadrant Quadrant
		want     platform.Rect
	}{
		{
			name:     "top-left anchors to quadrant origin",
			quadrant: TopLeft,
			want:     platform.Rect{X: 100, Y: -200, Width: 300, Height: 250},
		},
		{
			name:     "top-right anchors to right edge",
			quadrant: TopRight,
			want:     platform.Rect{X: 600, Y: -200, Width: 300, Height: 250},
		},
		{
			name:     "bottom-left anchors to bottom edge",
			quadrant: BottomLeft,
			want:     platform.Rect{X: 100, Y: 150, Width: 300, Height: 250},
		},
		{
			name:     "bottom-right anchors to both far edges",
			quadrant: BottomRight,
			want:     platform.Rect{X: 600, Y: 150, Width: 300, Height: 250},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CornerAlign(tt.quadrant, quad, natural)
			assert.Equal(t, tt.want, got)

			// The opposite corner lies strictly inside the quadrant.
			assert.Greater(t, got.X, quad.X-1)
			assert.Greater(t, got.Y, quad.Y-1)
			assert.Less(t, got.X+got.Width, quad.X+quad.Width+1)
			assert.Less(t, got.Y+got.Height, quad.Y+quad.Height+1)
		})
	}
}

func TestCornerAlignClampsOversized(t *testing.T) {
	quad := platform.Rect{X: 0, Y: 0, Width: 800, Height: 600}

	tests := []struct {
		name    string
		natural platform.Size
		want    platform.Rect
	}{
		{
			name:    "wider than quadrant",
			natural: platform.Size{Width: 1000, Height: 500},
			want:    platform.Rect{X: 0, Y: 100, Width: 800, Height: 500},
		},
		{
			name:    "taller than quadrant",
			natural: platform.Size{Width: 500, Height: 900},
			want:    platform.Rect{X: 300, Y: 0, Width: 500, Height: 600},
		},
		{
			name:    "larger on both axes",
			natural: platform.Size{Width: 1000, Height: 900},
			want:    platform.Rect{X: 0, Y: 0, Width: 800, Height: 600},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CornerAlign(BottomRight, quad, tt.natural)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, got.Width, quad.Width)
			assert.LessOrEqual(t, got.Height, quad.Height)
		})
	}
}
