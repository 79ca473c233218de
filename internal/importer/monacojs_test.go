package importer

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEvalMonacoScriptDefineTheme(t *testing.T) {
	script := `
monaco.editor.defineTheme('dracula', {
  base: 'vs-dark',
  inherit: true,
  rules: [{ token: 'comment', foreground: '6272a4' }],
  colors: { 'editor.background': '#282a36' }
});
`
	name, payload, err := evalMonacoScript(context.Background(), script)
	if err != nil {
		t.Fatalf("evalMonacoScript returned error: %v", err)
	}
	if name != "dracula" {
		t.Fatalf("expected captured name dracula, got %q", name)
	}
	monaco, err := decodeMonaco(payload)
	if err != nil {
		t.Fatalf("decodeMonaco on captured payload: %v", err)
	}
	if monaco.Base != "vs-dark" {
		t.Fatalf("expected vs-dark base, got %q", monaco.Base)
	}
	if len(monaco.Rules) != 1 || monaco.Rules[0].Foreground != "6272a4" {
		t.Fatalf("expected captured rules, got %+v", monaco.Rules)
	}
	if monaco.Colors["editor.background"] != "#282a36" {
		t.Fatalf("expected captured colors, got %+v", monaco.Colors)
	}
}

func TestEvalMonacoScriptModuleExports(t *testing.T) {
	script := `
module.exports = {
  base: 'vs',
  inherit: true,
  rules: [],
  colors: { 'editor.background': '#ffffff' }
};
`
	name, payload, err := evalMonacoScript(context.Background(), script)
	if err != nil {
		t.Fatalf("evalMonacoScript returned error: %v", err)
	}
	if name != "" {
		t.Fatalf("expected no captured name, got %q", name)
	}
	monaco, err := decodeMonaco(payload)
	if err != nil {
		t.Fatalf("decodeMonaco on exported payload: %v", err)
	}
	if monaco.Base != "vs" {
		t.Fatalf("expected vs base, got %q", monaco.Base)
	}
}

func TestEvalMonacoScriptExpressionValue(t *testing.T) {
	script := `({ base: 'vs-dark', inherit: false, rules: [], colors: {} })`
	_, payload, err := evalMonacoScript(context.Background(), script)
	if err != nil {
		t.Fatalf("evalMonacoScript returned error: %v", err)
	}
	monaco, err := decodeMonaco(payload)
	if err != nil {
		t.Fatalf("decodeMonaco on expression payload: %v", err)
	}
	if monaco.Base != "vs-dark" {
		t.Fatalf("expected vs-dark base, got %q", monaco.Base)
	}
}

func TestEvalMonacoScriptHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, _, err := evalMonacoScript(ctx, `for (;;) {}`)
	if err == nil {
		t.Fatalf("expected error for interrupted script")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}

func TestEvalMonacoScriptReportsScriptErrors(t *testing.T) {
	if _, _, err := evalMonacoScript(context.Background(), `throw new Error("boom")`); err == nil {
		t.Fatalf("expected error from throwing script")
	}
}

func TestEvalMonacoScriptWithoutThemeObject(t *testing.T) {
	if _, _, err := evalMonacoScript(context.Background(), `var unused = 1;`); err == nil {
		t.Fatalf("expected error when script produces no theme")
	}
}
