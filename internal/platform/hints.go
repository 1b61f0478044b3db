package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Hint is a last-known positioning origin for a monitor. Hints are a
// diagnostic fallback for when live enumeration fails; they are never
// consulted while live arrangement data is available, and they are
// rewritten from live data after every successful run.
type Hint struct {
	PositioningX int `yaml:"positioning_x"`
	PositioningY int `yaml:"positioning_y"`
}

// HintStore persists per-monitor positioning hints between runs.
type HintStore interface {
	All() (map[string]Hint, error)
	Replace(hints map[string]Hint) error
}

// FileHintStore keeps hints in a YAML file under the user config directory.
type FileHintStore struct {
	path string
}

// DefaultHintPath returns the standard location of the hint file.
func DefaultHintPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}
	return filepath.Join(dir, "mac-app-positioner", "hints.yaml"), nil
}

func NewFileHintStore(path string) *FileHintStore {
	return &FileHintStore{path: path}
}

func (s *FileHintStore) load() (map[string]Hint, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	hints := map[string]Hint{}
	if err := yaml.Unmarshal(data, &hints); err != nil {
		return nil, fmt.Errorf("parsing hint file %s: %w", s.path, err)
	}
	return hints, nil
}

// All returns every cached hint. A hint file that was never written yields
// an empty map, not an error.
func (s *FileHintStore) All() (map[string]Hint, error) {
	hints, err := s.load()
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]Hint{}, nil
	}
	if err != nil {
		return nil, err
	}
	return hints, nil
}

// Replace overwrites the whole hint file. Live detection invalidates any
// previously cached value, so partial updates are never wanted.
func (s *FileHintStore) Replace(hints map[string]Hint) error {
	data, err := yaml.Marshal(hints)
	if err != nil {
		return fmt.Errorf("encoding hints: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating hint dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing hint file: %w", err)
	}
	return nil
}
