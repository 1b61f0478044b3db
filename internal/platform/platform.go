// Package platform holds the boundary to the host window system: display
// enumeration, window movement, and running-application discovery. The core
// positioning pipeline only ever sees these interfaces; the darwin
// implementation lives behind a build tag and every other OS gets a stub.
package platform

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrUnsupported is returned by every backend operation on platforms
	// without a native implementation.
	ErrUnsupported = errors.New("window system not supported on this platform")

	// ErrSizeUnavailable is returned by NaturalSize when an application has
	// no measurable window. Callers fall back to the full quadrant size.
	ErrSizeUnavailable = errors.New("natural window size unavailable")

	// ErrMoveFailed wraps per-application move errors so callers can keep
	// positioning the remaining applications.
	ErrMoveFailed = errors.New("window move failed")

	// ErrNotTrusted indicates the process lacks accessibility permissions.
	ErrNotTrusted = errors.New("accessibility permissions not granted")
)

// Rect describes a rectangular region in window-positioning coordinates.
type Rect struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d) %dx%d", r.X, r.Y, r.Width, r.Height)
}

// Contains reports whether the point lies inside the half-open region
// [x, x+w) x [y, y+h).
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Overlaps reports whether two rectangles share any area.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.Width && o.X < r.X+r.Width &&
		r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}

// Size is a window or monitor extent in pixels.
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// RawMonitor is one display as reported by the enumerator, in
// display-arrangement coordinates. Positioning coordinates are derived
// later by the registry; they are never an enumerator concern.
type RawMonitor struct {
	Name         string
	Width        int
	Height       int
	ArrangementX int
	ArrangementY int
	IsMain       bool
	IsBuiltin    bool
}

// App is a running application the mover can address.
type App struct {
	Name     string
	BundleID string
	PID      int
}

// DisplayEnumerator lists the connected displays.
type DisplayEnumerator interface {
	Displays(ctx context.Context) ([]RawMonitor, error)
}

// WindowMover queries and repositions an application's main window,
// addressed by process ID.
type WindowMover interface {
	// NaturalSize returns the current size of the application's main window
	// without moving it.
	NaturalSize(ctx context.Context, pid int) (Size, error)

	// Move places the application's main window at the target rectangle and
	// returns the rectangle the window actually ended up with. The window
	// server may adjust the request (title bars, screen edges), so the
	// returned rectangle is authoritative.
	Move(ctx context.Context, pid int, target Rect) (Rect, error)

	// Trusted reports whether the process holds the permissions required to
	// manipulate other applications' windows.
	Trusted() bool
}

// AppFinder lists running applications that own windows.
type AppFinder interface {
	RunningApps(ctx context.Context) ([]App, error)
}

// Backend bundles the three collaborators a positioning run needs.
type Backend interface {
	DisplayEnumerator
	WindowMover
	AppFinder
}
