package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tu "termctl/internal/testutil"
)

func TestSettings_LoadMissingYieldsDefaults(t *testing.T) {
	tmp := t.TempDir()
	defer tu.WithEnv(t, "XDG_CONFIG_HOME", tmp)()
	defer tu.WithEnv(t, "HOME", tmp)()

	s, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if s != Default() {
		t.Fatalf("missing file settings = %+v, want defaults %+v", s, Default())
	}
}

func TestSettings_SaveLoadRoundTrip(t *testing.T) {
	tmp := t.TempDir()
	defer tu.WithEnv(t, "XDG_CONFIG_HOME", tmp)()
	defer tu.WithEnv(t, "HOME", tmp)()

	want := Settings{
		FontSize:       16,
		Theme:          "light",
		CursorBlink:    false,
		InitialCommand: "echo hi",
		Server:         "127.0.0.1:7681",
	}
	if err := Save(want); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got != want {
		t.Fatalf("round trip = %+v, want %+v", got, want)
	}
}

func TestSettings_NormalizeRepairsBadValues(t *testing.T) {
	tmp := t.TempDir()
	defer tu.WithEnv(t, "XDG_CONFIG_HOME", tmp)()
	defer tu.WithEnv(t, "HOME", tmp)()

	p, err := SettingsPath()
	if err != nil {
		t.Fatalf("SettingsPath error: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	raw := `{"fontSize": -4, "theme": "solarized", "cursorBlink": true, "initialCommand": "  top  "}`
	if err := os.WriteFile(p, []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if s.FontSize != 13 {
		t.Fatalf("FontSize = %d, want repaired default 13", s.FontSize)
	}
	if s.Theme != "dark" {
		t.Fatalf("Theme = %q, want repaired default dark", s.Theme)
	}
	if s.InitialCommand != "top" {
		t.Fatalf("InitialCommand = %q, want trimmed %q", s.InitialCommand, "top")
	}
}

func TestSettings_LoadCorruptFileErrors(t *testing.T) {
	tmp := t.TempDir()
	defer tu.WithEnv(t, "XDG_CONFIG_HOME", tmp)()
	defer tu.WithEnv(t, "HOME", tmp)()

	p, _ := SettingsPath()
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error for corrupt settings file")
	}
}

func TestSettingsSchema(t *testing.T) {
	b, err := MarshalSchema(SettingsSchema())
	if err != nil {
		t.Fatalf("MarshalSchema error: %v", err)
	}
	out := string(b)
	for _, want := range []string{"fontSize", "theme", "cursorBlink", "initialCommand", "server"} {
		if !strings.Contains(out, want) {
			t.Fatalf("schema missing property %q:\n%s", want, out)
		}
	}
}

func TestDirUsesUserConfigBase(t *testing.T) {
	tmp := t.TempDir()
	defer tu.WithEnv(t, "XDG_CONFIG_HOME", tmp)()
	defer tu.WithEnv(t, "HOME", tmp)()

	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir error: %v", err)
	}
	if filepath.Base(dir) != "termctl" {
		t.Fatalf("Dir = %q, want a termctl directory", dir)
	}
}
