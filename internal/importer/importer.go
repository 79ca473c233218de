// Package importer converts foreign theme formats into native theme
// specs. Monaco editor themes arrive as JSON or as scripts that call
// monaco.editor.defineTheme, base16 schemes as YAML, and either may be
// fetched from a URL.
package importer

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/unkn0wn-root/tinct/internal/errdef"
	"github.com/unkn0wn-root/tinct/internal/theme"
)

type Kind string

const (
	KindMonacoJSON   Kind = "monaco-json"
	KindMonacoScript Kind = "monaco-script"
	KindBase16       Kind = "base16"
)

type Result struct {
	Path        string
	DisplayName string
	Kind        Kind
}

// Import converts source (a local file or an http(s) URL) and writes the
// resulting spec into themesDir. The written file never replaces an
// existing theme.
func Import(ctx context.Context, source string, themesDir string) (Result, error) {
	if isRemote(source) {
		data, hint, err := fetchSource(ctx, source)
		if err != nil {
			return Result{}, err
		}
		return importData(ctx, data, hint, sniffKind(source, data), themesDir)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return Result{}, errdef.Wrap(errdef.CodeFilesystem, err, "read theme source %s", source)
	}
	kind, ok := kindForPath(source)
	if !ok {
		return Result{}, errdef.New(errdef.CodeImport, "unsupported theme source %s", source)
	}
	return importData(ctx, data, nameHint(source), kind, themesDir)
}

func importData(ctx context.Context, data []byte, hint string, kind Kind, themesDir string) (Result, error) {
	var (
		spec theme.ThemeSpec
		name string
		err  error
	)
	switch kind {
	case KindMonacoJSON:
		var monaco monacoTheme
		monaco, err = decodeMonaco(data)
		if err == nil {
			name = hint
			spec, err = specFromMonaco(monaco, name)
		}
	case KindMonacoScript:
		var scriptName string
		var payload []byte
		scriptName, payload, err = evalMonacoScript(ctx, string(data))
		if err == nil {
			var monaco monacoTheme
			monaco, err = decodeMonaco(payload)
			if err == nil {
				name = strings.TrimSpace(scriptName)
				if name == "" {
					name = hint
				}
				spec, err = specFromMonaco(monaco, name)
			}
		}
	case KindBase16:
		var scheme base16Scheme
		scheme, err = decodeBase16(data)
		if err == nil {
			name = strings.TrimSpace(scheme.Scheme)
			if name == "" {
				name = hint
			}
			spec, err = specFromBase16(scheme, name)
		}
	default:
		err = errdef.New(errdef.CodeImport, "unsupported theme kind %q", kind)
	}
	if err != nil {
		return Result{}, err
	}

	path, err := theme.WriteSpec(themesDir, name, spec)
	if err != nil {
		return Result{}, errdef.Wrap(errdef.CodeImport, err, "write imported theme %s", name)
	}
	return Result{Path: path, DisplayName: name, Kind: kind}, nil
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func kindForPath(path string) (Kind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return KindMonacoJSON, true
	case ".js":
		return KindMonacoScript, true
	case ".yaml", ".yml":
		return KindBase16, true
	default:
		return "", false
	}
}

// sniffKind resolves the kind of fetched data, preferring the URL
// extension and falling back to content inspection.
func sniffKind(source string, data []byte) Kind {
	if kind, ok := kindForPath(strings.SplitN(source, "?", 2)[0]); ok {
		return kind
	}
	trimmed := strings.TrimSpace(string(data))
	switch {
	case strings.HasPrefix(trimmed, "{"):
		return KindMonacoJSON
	case strings.Contains(trimmed, "base00:"):
		return KindBase16
	default:
		return KindMonacoScript
	}
}

func nameHint(source string) string {
	base := filepath.Base(strings.SplitN(source, "?", 2)[0])
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.TrimSpace(name)
	if name == "" {
		return "Imported Theme"
	}
	return name
}
