//go:build !darwin

package platform

import "context"

// Window positioning is platform-specific; only macOS is implemented. The
// stub keeps the CLI buildable everywhere so inspection commands can report
// a clear error instead of failing to compile.
type stubBackend struct{}

// New returns the native backend for the current platform.
func New() (Backend, error) {
	return stubBackend{}, nil
}

func (stubBackend) Displays(context.Context) ([]RawMonitor, error) {
	return nil, ErrUnsupported
}

func (stubBackend) NaturalSize(context.Context, int) (Size, error) {
	return Size{}, ErrUnsupported
}

func (stubBackend) Move(context.Context, int, Rect) (Rect, error) {
	return Rect{}, ErrUnsupported
}

func (stubBackend) Trusted() bool { return false }

func (stubBackend) RunningApps(context.Context) ([]App, error) {
	return nil, ErrUnsupported
}
