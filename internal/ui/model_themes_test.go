package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/unkn0wn-root/tinct/internal/appstate"
	"github.com/unkn0wn-root/tinct/internal/bindings"
	"github.com/unkn0wn-root/tinct/internal/config"
	"github.com/unkn0wn-root/tinct/internal/theme"
)

// newTestModel builds a model with watchers disabled and a settings
// handle under a temp dir, then feeds it the builtin catalog
// (load order: dark, light).
func newTestModel(t *testing.T, initial appstate.Snapshot) *Model {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvConfigDir, dir)

	state := appstate.NewStore(initial)
	m := New(Config{
		ThemeDirs: []string{filepath.Join(dir, "themes")},
		Settings: config.Settings{
			Theme:          initial.ThemeKey,
			UseSystemTheme: initial.UseSystemTheme,
			Layout:         config.DefaultLayoutSettings(),
		},
		SettingsHandle: config.SettingsHandle{
			Path:   filepath.Join(dir, "settings.toml"),
			Format: config.SettingsFormatTOML,
		},
		State:        state,
		Bindings:     bindings.DefaultMap(),
		DisableWatch: true,
	})
	t.Cleanup(m.teardown)

	catalog, err := theme.LoadCatalog(nil)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if cmd := m.handleThemesLoaded(themesLoadedMsg{catalog: catalog}); cmd != nil {
		t.Fatalf("unexpected follow-up command from catalog load")
	}
	return &m
}

func selectListKey(t *testing.T, m *Model, key string) {
	t.Helper()
	for idx, item := range m.themeList.Items() {
		if entry, ok := item.(themeItem); ok && entry.key == key {
			m.themeList.Select(idx)
			return
		}
	}
	t.Fatalf("theme %q not in list", key)
}

func TestInitialSelectionMatchesIdentifier(t *testing.T) {
	m := newTestModel(t, appstate.Snapshot{ThemeKey: "light"})
	if m.selected == nil {
		t.Fatalf("expected a selection after load")
	}
	if m.selected.Key != "light" {
		t.Fatalf("expected selection %q, got %q", "light", m.selected.Key)
	}
}

func TestInitialSelectionFallsBackToFirstEntry(t *testing.T) {
	for _, key := range []string{"", "no-such-theme"} {
		m := newTestModel(t, appstate.Snapshot{ThemeKey: key})
		if m.selected == nil {
			t.Fatalf("identifier %q: expected a selection", key)
		}
		if m.selected.Key != "dark" {
			t.Fatalf("identifier %q: expected first entry %q, got %q", key, "dark", m.selected.Key)
		}
	}
}

func TestApplySelectionUpdatesLocallyAndPersists(t *testing.T) {
	m := newTestModel(t, appstate.Snapshot{ThemeKey: "dark"})
	selectListKey(t, m, "light")

	cmd := m.applyThemeSelection()
	if cmd == nil {
		t.Fatalf("expected a persistence command")
	}
	// Optimistic: local selection and shared state change before the
	// write completes.
	if m.selected == nil || m.selected.Key != "light" {
		t.Fatalf("expected optimistic selection light, got %+v", m.selected)
	}
	if got := m.state.Snapshot().ThemeKey; got != "light" {
		t.Fatalf("expected shared identifier %q, got %q", "light", got)
	}

	msg, ok := cmd().(themeSavedMsg)
	if !ok {
		t.Fatalf("expected themeSavedMsg, got %T", msg)
	}
	if msg.err != nil {
		t.Fatalf("save failed: %v", msg.err)
	}
	if cmd := m.handleThemeSaved(msg); cmd != nil {
		t.Fatalf("unexpected follow-up command after save")
	}

	saved, _, err := config.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if saved.Theme != "light" {
		t.Fatalf("expected persisted theme %q, got %q", "light", saved.Theme)
	}
}

func TestApplySelectionSameKeyIsNoop(t *testing.T) {
	m := newTestModel(t, appstate.Snapshot{ThemeKey: "dark"})
	selectListKey(t, m, "dark")
	if cmd := m.applyThemeSelection(); cmd != nil {
		t.Fatalf("expected no command for re-applying the active theme")
	}
}

func TestSaveFailureRevertsOptimisticSelection(t *testing.T) {
	m := newTestModel(t, appstate.Snapshot{ThemeKey: "dark"})

	// Point the handle below a regular file so MkdirAll fails.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	m.settingsHandle = config.SettingsHandle{
		Path:   filepath.Join(blocker, "settings.toml"),
		Format: config.SettingsFormatTOML,
	}

	selectListKey(t, m, "light")
	cmd := m.applyThemeSelection()
	if cmd == nil {
		t.Fatalf("expected a persistence command")
	}
	msg, ok := cmd().(themeSavedMsg)
	if !ok || msg.err == nil {
		t.Fatalf("expected failed themeSavedMsg, got %#v", msg)
	}

	m.handleThemeSaved(msg)
	if got := m.state.Snapshot().ThemeKey; got != "dark" {
		t.Fatalf("expected identifier reverted to %q, got %q", "dark", got)
	}
	if m.selected == nil || m.selected.Key != "dark" {
		t.Fatalf("expected selection reverted to dark, got %+v", m.selected)
	}
	if m.statusMessage.level != statusWarn {
		t.Fatalf("expected warning status, got level %d", m.statusMessage.level)
	}
}

func TestSystemSyncDisablesThemeActions(t *testing.T) {
	m := newTestModel(t, appstate.Snapshot{ThemeKey: "dark", UseSystemTheme: true})
	selectListKey(t, m, "light")

	handled, cmd, quit := m.dispatchAction(bindings.ActionApplyTheme)
	if !handled || quit {
		t.Fatalf("expected handled=true quit=false, got %v %v", handled, quit)
	}
	if cmd != nil {
		t.Fatalf("expected no command while system sync is on")
	}
	if got := m.state.Snapshot().ThemeKey; got != "dark" {
		t.Fatalf("expected identifier unchanged, got %q", got)
	}
	if m.statusMessage.level != statusInfo ||
		!strings.Contains(m.statusMessage.text, "system theme sync") {
		t.Fatalf("expected sync hint status, got %+v", m.statusMessage)
	}
}

func TestDuplicateFailureReturnsFalse(t *testing.T) {
	m := newTestModel(t, appstate.Snapshot{ThemeKey: "dark"})

	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	m.themeDirs = []string{filepath.Join(blocker, "themes")}

	cmd, ok := m.duplicateCurrentTheme()
	if ok {
		t.Fatalf("expected duplicate failure")
	}
	if cmd != nil {
		t.Fatalf("expected no refresh command on failure")
	}
	if m.statusMessage.level != statusWarn {
		t.Fatalf("expected warning status, got level %d", m.statusMessage.level)
	}
}

func TestDuplicateWritesCopyAndRefreshes(t *testing.T) {
	m := newTestModel(t, appstate.Snapshot{ThemeKey: "dark"})

	cmd, ok := m.duplicateCurrentTheme()
	if !ok {
		t.Fatalf("expected duplicate to succeed: %+v", m.statusMessage)
	}
	if cmd == nil {
		t.Fatalf("expected a refresh command")
	}

	entries, err := os.ReadDir(m.primaryThemeDir())
	if err != nil {
		t.Fatalf("read themes dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one duplicated file, got %d", len(entries))
	}

	msg, ok := cmd().(themesRefreshedMsg)
	if !ok {
		t.Fatalf("expected themesRefreshedMsg, got %T", msg)
	}
	if msg.err != nil {
		t.Fatalf("refresh failed: %v", msg.err)
	}
	if msg.catalog.Len() != m.catalog.Len()+1 {
		t.Fatalf("expected catalog to grow by one, got %d -> %d", m.catalog.Len(), msg.catalog.Len())
	}
	want := fmt.Sprintf("Duplicated Dark to %s", entries[0].Name())
	if msg.announce != want {
		t.Fatalf("expected announce %q, got %q", want, msg.announce)
	}
}

func TestOpenThemesFolderFailureReturnsFalse(t *testing.T) {
	m := newTestModel(t, appstate.Snapshot{ThemeKey: "dark"})

	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	m.themeDirs = []string{filepath.Join(blocker, "themes")}

	if m.openThemesFolder() {
		t.Fatalf("expected folder open to fail")
	}
	if m.statusMessage.level != statusWarn {
		t.Fatalf("expected warning status, got level %d", m.statusMessage.level)
	}
}

func TestRefreshFallsBackWhenActiveThemeRemoved(t *testing.T) {
	m := newTestModel(t, appstate.Snapshot{ThemeKey: "dark"})

	// Catalog from disk includes a user theme; activate it, then
	// refresh with a catalog where it no longer exists.
	themesDir := m.primaryThemeDir()
	if err := os.MkdirAll(themesDir, 0o755); err != nil {
		t.Fatalf("mkdir themes: %v", err)
	}
	spec := "inherit = \"dark\"\n\n[metadata]\nname = \"Ephemeral\"\n"
	path := filepath.Join(themesDir, "ephemeral.toml")
	if err := os.WriteFile(path, []byte(spec), 0o644); err != nil {
		t.Fatalf("write theme: %v", err)
	}
	catalog, err := theme.LoadCatalog(m.themeDirs)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	m.handleThemesRefreshed(themesRefreshedMsg{catalog: catalog})
	m.state.SetTheme("ephemeral")
	m.activeThemeKey = "ephemeral"
	m.resolveSelection()
	if m.selected == nil || m.selected.Key != "ephemeral" {
		t.Fatalf("expected user theme selected, got %+v", m.selected)
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove theme: %v", err)
	}
	catalog, err = theme.LoadCatalog(m.themeDirs)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	cmd := m.handleThemesRefreshed(themesRefreshedMsg{catalog: catalog})
	if cmd == nil {
		t.Fatalf("expected a fallback persistence command")
	}
	if got := m.state.Snapshot().ThemeKey; got != "dark" {
		t.Fatalf("expected fallback to dark, got %q", got)
	}
	if m.selected == nil || m.selected.Key != "dark" {
		t.Fatalf("expected selection on fallback theme, got %+v", m.selected)
	}
}

func TestToggleSystemSyncFlipsSharedFlag(t *testing.T) {
	m := newTestModel(t, appstate.Snapshot{ThemeKey: "dark"})
	cmd := m.toggleSystemSync()
	if !m.state.Snapshot().UseSystemTheme {
		t.Fatalf("expected system sync on")
	}
	if cmd == nil {
		t.Fatalf("expected a settings save command")
	}
	if msg := cmd(); msg != nil {
		t.Fatalf("settings save reported: %v", msg)
	}
	saved, _, err := config.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if !saved.UseSystemTheme {
		t.Fatalf("expected persisted system sync on")
	}
}
