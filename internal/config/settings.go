// Package config persists termctl settings as JSON under the user config
// directory and exposes a schema for editor tooling.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Settings holds user-tunable terminal pane options.
type Settings struct {
	// FontSize drives the cell metrics used to convert pixels to a grid.
	FontSize int `json:"fontSize" jsonschema:"minimum=1,description=Terminal font size in points"`
	// Theme selects the pane palette, "dark" or "light".
	Theme string `json:"theme" jsonschema:"enum=dark,enum=light,description=Terminal color theme"`
	// CursorBlink toggles the block cursor blink.
	CursorBlink bool `json:"cursorBlink" jsonschema:"description=Whether the cursor blinks"`
	// InitialCommand runs once when a pane first binds to its session.
	InitialCommand string `json:"initialCommand,omitempty" jsonschema:"description=Command sent to a new session after it becomes ready"`
	// Server is the default session host address for remote panes.
	Server string `json:"server,omitempty" jsonschema:"description=Default session server address (host:port)"`
}

// Default returns the settings applied when nothing is stored.
func Default() Settings {
	return Settings{
		FontSize:    13,
		Theme:       "dark",
		CursorBlink: true,
	}
}

// normalize clamps stored values back into their valid ranges so a
// hand-edited file cannot wedge the pane.
func (s Settings) normalize() Settings {
	if s.FontSize < 1 {
		s.FontSize = Default().FontSize
	}
	switch strings.ToLower(strings.TrimSpace(s.Theme)) {
	case "light":
		s.Theme = "light"
	default:
		s.Theme = "dark"
	}
	s.InitialCommand = strings.TrimSpace(s.InitialCommand)
	s.Server = strings.TrimSpace(s.Server)
	return s
}

// Load returns stored settings. A missing file yields defaults without error.
func Load() (Settings, error) {
	p, err := SettingsPath()
	if err != nil {
		return Default(), err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), err
	}
	s := Default()
	if err := json.Unmarshal(b, &s); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", p, err)
	}
	return s.normalize(), nil
}

// Save writes s to disk, creating the config directory if needed.
func Save(s Settings) error {
	p, err := SettingsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(s.normalize(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o644)
}
