package importer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/unkn0wn-root/tinct/internal/theme"
)

const monacoJSON = `{
  "base": "vs-dark",
  "inherit": true,
  "rules": [{"token": "keyword", "foreground": "C586C0"}],
  "colors": {"editor.background": "#1E1E2E"}
}`

func TestImportMonacoJSONWritesNativeSpec(t *testing.T) {
	srcDir := t.TempDir()
	themesDir := t.TempDir()
	source := filepath.Join(srcDir, "midnight.json")
	if err := os.WriteFile(source, []byte(monacoJSON), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	result, err := Import(context.Background(), source, themesDir)
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if result.Kind != KindMonacoJSON {
		t.Fatalf("expected monaco-json kind, got %q", result.Kind)
	}
	if result.DisplayName != "midnight" {
		t.Fatalf("expected display name from file, got %q", result.DisplayName)
	}
	if filepath.Dir(result.Path) != themesDir {
		t.Fatalf("expected theme written into themes dir, got %q", result.Path)
	}

	catalog, err := theme.LoadCatalog([]string{themesDir})
	if err != nil {
		t.Fatalf("LoadCatalog returned error: %v", err)
	}
	imported, ok := catalog.Get("midnight")
	if !ok {
		t.Fatalf("expected imported theme in catalog, keys: %v", catalog.Keys())
	}
	if imported.Theme.EditorBackground != "#1e1e2e" {
		t.Fatalf("expected editor background from import, got %q", imported.Theme.EditorBackground)
	}
	if imported.Variant != theme.VariantDark {
		t.Fatalf("expected dark variant, got %q", imported.Variant)
	}
}

func TestImportBase16YAMLDetectsLightVariant(t *testing.T) {
	srcDir := t.TempDir()
	themesDir := t.TempDir()
	source := filepath.Join(srcDir, "paper.yaml")
	scheme := []byte("scheme: Paper\nbase00: \"eeeeee\"\nbase05: \"444444\"\nbase0E: \"7a1fa2\"\n")
	if err := os.WriteFile(source, scheme, 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	result, err := Import(context.Background(), source, themesDir)
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if result.DisplayName != "Paper" {
		t.Fatalf("expected scheme name, got %q", result.DisplayName)
	}

	catalog, err := theme.LoadCatalog([]string{themesDir})
	if err != nil {
		t.Fatalf("LoadCatalog returned error: %v", err)
	}
	imported, ok := catalog.Get("paper")
	if !ok {
		t.Fatalf("expected paper in catalog, keys: %v", catalog.Keys())
	}
	if imported.Variant != theme.VariantLight {
		t.Fatalf("expected light variant, got %q", imported.Variant)
	}
}

func TestImportRejectsUnsupportedSource(t *testing.T) {
	srcDir := t.TempDir()
	source := filepath.Join(srcDir, "theme.txt")
	if err := os.WriteFile(source, []byte("not a theme"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	if _, err := Import(context.Background(), source, t.TempDir()); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
}

func TestImportMissingSourceFails(t *testing.T) {
	if _, err := Import(context.Background(), "/nonexistent/theme.json", t.TempDir()); err == nil {
		t.Fatalf("expected error for missing source")
	}
}

func TestImportFetchesRemoteTheme(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/themes/night.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(monacoJSON)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer server.Close()

	themesDir := t.TempDir()
	result, err := Import(context.Background(), server.URL+"/themes/night.json", themesDir)
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if result.DisplayName != "night" {
		t.Fatalf("expected display name from URL, got %q", result.DisplayName)
	}

	catalog, err := theme.LoadCatalog([]string{themesDir})
	if err != nil {
		t.Fatalf("LoadCatalog returned error: %v", err)
	}
	if _, ok := catalog.Get("night"); !ok {
		t.Fatalf("expected night in catalog, keys: %v", catalog.Keys())
	}
}

func TestImportRemoteFailureSurfacesStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	if _, err := Import(context.Background(), server.URL+"/missing.json", t.TempDir()); err == nil {
		t.Fatalf("expected error for non-200 response")
	}
}
