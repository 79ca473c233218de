package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettingsReturnsDefaultHandleWhenMissing(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	settings, handle, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings returned error: %v", err)
	}
	expectedPath := filepath.Join(dir, "settings.toml")
	if handle.Path != expectedPath {
		t.Fatalf("expected handle path %q, got %q", expectedPath, handle.Path)
	}
	if handle.Format != SettingsFormatTOML {
		t.Fatalf("expected format %q, got %q", SettingsFormatTOML, handle.Format)
	}
	if settings.Layout.ListWidth != LayoutListWidthDefault {
		t.Fatalf(
			"expected default list width %v, got %v",
			LayoutListWidthDefault,
			settings.Layout.ListWidth,
		)
	}
	if settings.Theme != "" {
		t.Fatalf("expected empty theme key, got %q", settings.Theme)
	}
	if settings.UseSystemTheme {
		t.Fatalf("expected system sync off by default")
	}
}

func TestSaveAndLoadSettingsTOML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	want := Settings{
		Theme:            "gruvbox-dark",
		UseSystemTheme:   true,
		SystemDarkTheme:  "gruvbox-dark",
		SystemLightTheme: "light",
	}
	if err := SaveSettings(want, SettingsHandle{}); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	got, handle, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if got.Theme != want.Theme {
		t.Fatalf("expected theme %q, got %q", want.Theme, got.Theme)
	}
	if !got.UseSystemTheme {
		t.Fatalf("expected system sync to survive a round trip")
	}
	if got.SystemLightTheme != want.SystemLightTheme {
		t.Fatalf("expected light key %q, got %q", want.SystemLightTheme, got.SystemLightTheme)
	}
	if handle.Format != SettingsFormatTOML {
		t.Fatalf("expected format %q after save, got %q", SettingsFormatTOML, handle.Format)
	}
}

func TestLoadSettingsJSON(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	payload := Settings{Theme: "solarized-light"}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		t.Fatalf("marshal json: %v", err)
	}
	path := filepath.Join(dir, "settings.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write json settings: %v", err)
	}

	got, handle, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if got.Theme != payload.Theme {
		t.Fatalf("expected theme %q, got %q", payload.Theme, got.Theme)
	}
	if handle.Format != SettingsFormatJSON {
		t.Fatalf("expected json format, got %q", handle.Format)
	}
	if handle.Path != path {
		t.Fatalf("expected handle path %q, got %q", path, handle.Path)
	}
}

func TestDirHonoursEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	if got := Dir(); got != dir {
		t.Fatalf("expected dir %q, got %q", dir, got)
	}
	if got := ThemeDir(); got != filepath.Join(dir, "themes") {
		t.Fatalf("expected theme dir under override, got %q", got)
	}
	if got := HistoryPath(); got != filepath.Join(dir, "history.db") {
		t.Fatalf("expected history path under override, got %q", got)
	}
}
