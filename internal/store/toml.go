// Package store persists the lighting state as a TOML document.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/smazurov/kbcontrol/internal/keyboard"
)

const currentVersion = 1

var (
	// ErrNotFound is returned by Load when no state has been saved yet.
	ErrNotFound = errors.New("state file not found")
	// ErrCorrupt is returned by Load when the state file cannot be parsed.
	ErrCorrupt = errors.New("CONFIG_CORRUPT: state file unreadable")
)

// document is the on-disk layout.
type document struct {
	Version  int            `toml:"version"`
	Keyboard keyboard.State `toml:"kb"`
}

// TOML stores the state in a single TOML file.
type TOML struct {
	path string
}

// NewTOML creates a store backed by path. An empty path uses DefaultPath.
func NewTOML(path string) *TOML {
	if path == "" {
		if p, err := DefaultPath(); err == nil {
			path = p
		} else {
			path = "state.toml"
		}
	}
	return &TOML{path: path}
}

// Path returns the backing file.
func (s *TOML) Path() string {
	return s.path
}

// Load reads the state. It returns ErrNotFound when the file does not exist
// and wraps ErrCorrupt when it cannot be decoded.
func (s *TOML) Load() (keyboard.State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return keyboard.State{}, ErrNotFound
		}
		return keyboard.State{}, fmt.Errorf("failed to read state file: %w", err)
	}

	doc := document{Keyboard: keyboard.Default()}
	if unmarshalErr := toml.Unmarshal(data, &doc); unmarshalErr != nil {
		return keyboard.State{}, fmt.Errorf("%w: %w", ErrCorrupt, unmarshalErr)
	}
	if doc.Version > currentVersion {
		return keyboard.State{}, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, doc.Version)
	}

	doc.Keyboard.Normalize()
	return doc.Keyboard, nil
}

// Save writes the state atomically through a temporary file.
func (s *TOML) Save(state keyboard.State) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := toml.Marshal(document{Version: currentVersion, Keyboard: state})
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmp := s.path + ".tmp"
	if writeErr := os.WriteFile(tmp, data, 0o644); writeErr != nil {
		return fmt.Errorf("failed to write state file: %w", writeErr)
	}
	if renameErr := os.Rename(tmp, s.path); renameErr != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace state file: %w", renameErr)
	}

	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/kbcontrol/state.toml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot locate config directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "kbcontrol", "state.toml"), nil
}
