package ui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/unkn0wn-root/tinct/internal/appstate"
	"github.com/unkn0wn-root/tinct/internal/importer"
)

func TestOpenImportModalPublishesDialogFlag(t *testing.T) {
	m := newTestModel(t, appstate.Snapshot{ThemeKey: "dark"})

	m.openImportModal()
	if !m.showImportModal {
		t.Fatalf("expected modal visible")
	}
	if !m.state.Snapshot().ImportDialogVisible {
		t.Fatalf("expected shared dialog flag set")
	}
}

func TestSubmitImportEmptyClosesWithoutImporting(t *testing.T) {
	m := newTestModel(t, appstate.Snapshot{ThemeKey: "dark"})
	m.openImportModal()
	m.importInput.SetValue("   ")

	cmd := m.submitImport()
	if cmd == nil {
		t.Fatalf("expected a close command")
	}
	msg, ok := cmd().(importDialogClosedMsg)
	if !ok {
		t.Fatalf("expected importDialogClosedMsg, got %T", msg)
	}
	if msg.imported || msg.err != nil {
		t.Fatalf("expected clean no-op close, got %+v", msg)
	}
}

func TestImportDialogCloseClearsFlagAndRefreshes(t *testing.T) {
	m := newTestModel(t, appstate.Snapshot{ThemeKey: "dark"})
	m.openImportModal()

	cmd := m.handleImportDialogClosed(importDialogClosedMsg{
		imported: true,
		result:   importer.Result{DisplayName: "Dracula", Kind: importer.KindMonacoJSON},
	})
	if m.showImportModal {
		t.Fatalf("expected modal hidden")
	}
	if m.state.Snapshot().ImportDialogVisible {
		t.Fatalf("expected shared dialog flag cleared")
	}
	if cmd == nil {
		t.Fatalf("expected a refresh command after dialog close")
	}
	msg, ok := cmd().(themesRefreshedMsg)
	if !ok {
		t.Fatalf("expected themesRefreshedMsg, got %T", msg)
	}
	if msg.announce != "Imported Dracula" {
		t.Fatalf("unexpected announce %q", msg.announce)
	}
}

func TestSubmitImportConvertsMonacoTheme(t *testing.T) {
	m := newTestModel(t, appstate.Snapshot{ThemeKey: "dark"})

	src := filepath.Join(t.TempDir(), "dracula.json")
	monaco := `{
		"base": "vs-dark",
		"inherit": true,
		"rules": [{"token": "keyword", "foreground": "ff79c6"}],
		"colors": {"editor.background": "#282a36", "editor.foreground": "#f8f8f2"}
	}`
	if err := os.WriteFile(src, []byte(monaco), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	m.openImportModal()
	m.importInput.SetValue(src)
	cmd := m.submitImport()
	if cmd == nil {
		t.Fatalf("expected an import command")
	}
	if !m.importBusy {
		t.Fatalf("expected busy flag while importing")
	}

	msg, ok := cmd().(importDialogClosedMsg)
	if !ok {
		t.Fatalf("expected importDialogClosedMsg, got %T", msg)
	}
	if msg.err != nil {
		t.Fatalf("import failed: %v", msg.err)
	}
	if !msg.imported {
		t.Fatalf("expected imported=true")
	}
	if _, err := os.Stat(msg.result.Path); err != nil {
		t.Fatalf("imported theme file missing: %v", err)
	}

	refresh := m.handleImportDialogClosed(msg)
	if refresh == nil {
		t.Fatalf("expected a refresh command")
	}
	refreshed, ok := refresh().(themesRefreshedMsg)
	if !ok {
		t.Fatalf("expected themesRefreshedMsg, got %T", refreshed)
	}
	if _, found := refreshed.catalog.Get("dracula"); !found {
		t.Fatalf("expected imported theme in catalog, keys: %v", refreshed.catalog.Keys())
	}
}
