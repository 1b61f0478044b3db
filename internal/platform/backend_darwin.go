//go:build darwin

package platform

// darwinBackend talks to the macOS window system through CoreGraphics and
// the Accessibility API.
type darwinBackend struct{}

// New returns the native backend for the current platform.
func New() (Backend, error) {
	return &darwinBackend{}, nil
}
