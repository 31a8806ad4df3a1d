// Package prefs persists per-user tally preferences.
// Preferences are stored in ~/.config/tally/prefs.toml.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/tally/internal/config"
)

// Prefs holds user preferences that survive restarts.
type Prefs struct {
	Theme string `toml:"theme"`
	// PageSize overrides the configured grid page size when positive.
	PageSize int `toml:"page_size,omitempty"`
}

const (
	defaultPrefsPath = "~/.config/tally/prefs.toml"
	defaultTheme     = "Nord"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Default returns the preferences used when nothing is stored.
func Default() Prefs {
	return Prefs{Theme: defaultTheme}
}

// Load reads preferences from the given path. Unreadable or malformed files
// degrade to defaults; only path resolution failures are reported.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Default(), fmt.Errorf("resolve path: %w", err)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return Default(), nil
	}

	p := Default()
	if err := toml.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	return p.normalize(), nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p.normalize())
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func (p Prefs) normalize() Prefs {
	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	if p.PageSize < 0 {
		p.PageSize = 0
	}
	return p
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	return config.ExpandPath(path)
}
