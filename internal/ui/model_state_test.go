package ui

import (
	"testing"
	"time"

	"github.com/unkn0wn-root/tinct/internal/appstate"
	"github.com/unkn0wn-root/tinct/internal/system"
)

func nextEvent(t *testing.T, m *Model) stateChangedMsg {
	t.Helper()
	select {
	case msg := <-m.events:
		change, ok := msg.(stateChangedMsg)
		if !ok {
			t.Fatalf("expected stateChangedMsg, got %T", msg)
		}
		return change
	case <-time.After(time.Second):
		t.Fatalf("no state change delivered")
		return stateChangedMsg{}
	}
}

func TestExternalThemeChangeReresolvesSelection(t *testing.T) {
	m := newTestModel(t, appstate.Snapshot{ThemeKey: "dark"})

	// Another component (CLI, scheme monitor) changes the identifier.
	m.state.SetTheme("light")
	msg := nextEvent(t, m)
	if msg.change.Field != appstate.FieldTheme {
		t.Fatalf("expected theme change, got %v", msg.change.Field)
	}

	m.handleStateChange(msg.change)
	if m.selected == nil || m.selected.Key != "light" {
		t.Fatalf("expected selection re-resolved to light, got %+v", m.selected)
	}
	item, ok := m.themeList.SelectedItem().(themeItem)
	if !ok || item.key != "light" {
		t.Fatalf("expected list cursor on light, got %+v", item)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	m := newTestModel(t, appstate.Snapshot{ThemeKey: "dark"})
	m.teardown()

	m.state.SetTheme("light")
	select {
	case msg := <-m.events:
		t.Fatalf("expected no delivery after teardown, got %T", msg)
	case <-time.After(50 * time.Millisecond):
	}
	// Idempotent.
	m.teardown()
}

func TestSchemeChangeIgnoredWhenSyncOff(t *testing.T) {
	m := newTestModel(t, appstate.Snapshot{ThemeKey: "dark"})
	if cmd := m.handleSchemeChange(system.SchemeLight); cmd != nil {
		t.Fatalf("expected no command while sync is off")
	}
	if got := m.state.Snapshot().ThemeKey; got != "dark" {
		t.Fatalf("expected identifier unchanged, got %q", got)
	}
}

func TestSchemeChangeSwitchesThemeWhenSyncOn(t *testing.T) {
	m := newTestModel(t, appstate.Snapshot{ThemeKey: "dark", UseSystemTheme: true})

	m.handleSchemeChange(system.SchemeLight)
	if got := m.state.Snapshot().ThemeKey; got != "light" {
		t.Fatalf("expected light-variant theme, got %q", got)
	}

	m.handleSchemeChange(system.SchemeDark)
	if got := m.state.Snapshot().ThemeKey; got != "dark" {
		t.Fatalf("expected dark-variant theme, got %q", got)
	}
}

func TestSchemeChangeDedupes(t *testing.T) {
	m := newTestModel(t, appstate.Snapshot{ThemeKey: "dark", UseSystemTheme: true})
	m.scheme = system.SchemeDark
	if cmd := m.handleSchemeChange(system.SchemeDark); cmd != nil {
		t.Fatalf("expected repeat scheme to be dropped")
	}
}

func TestSchemeCandidatePrefersConfiguredKey(t *testing.T) {
	m := newTestModel(t, appstate.Snapshot{ThemeKey: "dark"})
	m.settings.SystemLightTheme = "light"

	def, ok := m.schemeCandidate(system.SchemeLight)
	if !ok || def.Key != "light" {
		t.Fatalf("expected configured light theme, got %+v ok=%v", def, ok)
	}

	// A configured key that no longer resolves falls back to variant.
	m.settings.SystemDarkTheme = "gone"
	def, ok = m.schemeCandidate(system.SchemeDark)
	if !ok || def.Variant != "dark" {
		t.Fatalf("expected dark-variant fallback, got %+v ok=%v", def, ok)
	}
}
