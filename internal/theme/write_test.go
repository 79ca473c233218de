package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteSpecAvoidsClobberingExistingFiles(t *testing.T) {
	dir := t.TempDir()
	spec := ThemeSpec{Metadata: &Metadata{Name: "Nord"}}

	first, err := WriteSpec(dir, "Nord", spec)
	if err != nil {
		t.Fatalf("WriteSpec returned error: %v", err)
	}
	if filepath.Base(first) != "nord.toml" {
		t.Fatalf("expected nord.toml, got %q", filepath.Base(first))
	}

	second, err := WriteSpec(dir, "Nord", spec)
	if err != nil {
		t.Fatalf("WriteSpec returned error: %v", err)
	}
	if filepath.Base(second) != "nord_1.toml" {
		t.Fatalf("expected nord_1.toml, got %q", filepath.Base(second))
	}
}

func TestDuplicateBuiltinWritesInheritSpec(t *testing.T) {
	dir := t.TempDir()
	catalog, err := LoadCatalog(nil)
	if err != nil {
		t.Fatalf("LoadCatalog returned error: %v", err)
	}
	dark, ok := catalog.Get("dark")
	if !ok {
		t.Fatalf("expected dark builtin")
	}

	path, err := Duplicate(dark, dir)
	if err != nil {
		t.Fatalf("Duplicate returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read duplicate: %v", err)
	}
	if !strings.Contains(string(data), "inherit = 'dark'") &&
		!strings.Contains(string(data), `inherit = "dark"`) {
		t.Fatalf("expected duplicate to inherit dark, got:\n%s", data)
	}

	reloaded, err := LoadCatalog([]string{dir})
	if err != nil {
		t.Fatalf("reload catalog: %v", err)
	}
	copyDef, ok := reloaded.Get("dark-copy")
	if !ok {
		t.Fatalf("expected dark-copy in reloaded catalog, keys: %v", reloaded.Keys())
	}
	if copyDef.DisplayName != "Dark Copy" {
		t.Fatalf("expected display name Dark Copy, got %q", copyDef.DisplayName)
	}
	if copyDef.Theme.EditorBackground != DarkTheme().EditorBackground {
		t.Fatalf("expected duplicate to resolve to the dark palette")
	}
}

func TestDuplicateUserThemeKeepsOverrides(t *testing.T) {
	dir := t.TempDir()
	def := Definition{
		Key:         "ember",
		DisplayName: "Ember",
		Metadata:    Metadata{Name: "Ember"},
		Spec: ThemeSpec{
			Colors: ColorsSpec{PaneActiveForeground: strPtr("#ff4400")},
		},
		Source: SourceUser,
		Format: FormatTOML,
	}

	path, err := Duplicate(def, dir)
	if err != nil {
		t.Fatalf("Duplicate returned error: %v", err)
	}
	if filepath.Base(path) != "ember-copy.toml" {
		t.Fatalf("expected ember-copy.toml, got %q", filepath.Base(path))
	}

	reloaded, err := LoadCatalog([]string{dir})
	if err != nil {
		t.Fatalf("reload catalog: %v", err)
	}
	copyDef, ok := reloaded.Get("ember-copy")
	if !ok {
		t.Fatalf("expected ember-copy in catalog, keys: %v", reloaded.Keys())
	}
	if copyDef.Theme.PaneActiveForeground != "#ff4400" {
		t.Fatalf(
			"expected override to survive duplication, got %q",
			copyDef.Theme.PaneActiveForeground,
		)
	}
}
