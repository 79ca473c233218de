package preview

import (
	"strings"
	"testing"

	"github.com/alecthomas/chroma"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/unkn0wn-root/tinct/internal/theme"
)

func TestCodeRendersAllSampleLines(t *testing.T) {
	out := Code(theme.DarkTheme(), 120, 0)
	if out == "" {
		t.Fatalf("expected rendered preview")
	}
	if !strings.Contains(out, "package") {
		t.Errorf("expected sample keyword in output")
	}
	if !strings.Contains(out, "Describe") {
		t.Errorf("expected sample identifier in output")
	}

	got := len(strings.Split(out, "\n"))
	want := len(strings.Split(strings.TrimRight(sampleSource, "\n"), "\n"))
	if got != want {
		t.Fatalf("expected %d lines, got %d", want, got)
	}
}

func TestCodeHonoursHeightCap(t *testing.T) {
	out := Code(theme.DarkTheme(), 120, 5)
	if got := len(strings.Split(out, "\n")); got != 5 {
		t.Fatalf("expected 5 lines, got %d", got)
	}
}

func TestCodeTruncatesToWidth(t *testing.T) {
	out := Code(theme.DarkTheme(), 24, 0)
	for i, line := range strings.Split(out, "\n") {
		if width := ansi.StringWidth(line); width > 24 {
			t.Fatalf("line %d exceeds width: %d", i, width)
		}
	}
}

func TestCodeZeroWidthIsEmpty(t *testing.T) {
	if out := Code(theme.DarkTheme(), 0, 0); out != "" {
		t.Fatalf("expected empty output for zero width, got %q", out)
	}
}

func TestSwatchesRenderChips(t *testing.T) {
	out := Swatches(theme.DarkTheme(), 80)
	if out == "" {
		t.Fatalf("expected swatch row")
	}
	if !strings.Contains(out, "Aa") {
		t.Errorf("expected swatch chips in output")
	}
	if out := Swatches(theme.Theme{}, 80); out != "" {
		t.Fatalf("expected empty row without swatches, got %q", out)
	}
}

func TestStyleForTokenMapsCategories(t *testing.T) {
	th := theme.DarkTheme()
	cases := []struct {
		name  string
		token chroma.TokenType
		want  string
	}{
		{"comment", chroma.CommentSingle, renderedColor(th.SyntaxComment)},
		{"keyword", chroma.Keyword, renderedColor(th.SyntaxKeyword)},
		{"keyword type", chroma.KeywordType, renderedColor(th.SyntaxType)},
		{"keyword constant", chroma.KeywordConstant, renderedColor(th.SyntaxConstant)},
		{"string", chroma.LiteralStringDouble, renderedColor(th.SyntaxString)},
		{"number", chroma.LiteralNumberInteger, renderedColor(th.SyntaxNumber)},
		{"function", chroma.NameFunction, renderedColor(th.SyntaxFunction)},
		{"variable", chroma.NameOther, renderedColor(th.SyntaxVariable)},
		{"operator", chroma.Operator, renderedColor(th.SyntaxOperator)},
		{"punctuation", chroma.Punctuation, renderedColor(th.SyntaxPunctuation)},
	}
	for _, tc := range cases {
		if got := renderedColor(styleForToken(th, tc.token)); got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func renderedColor(style lipgloss.Style) string {
	if color, ok := style.GetForeground().(lipgloss.Color); ok {
		return string(color)
	}
	return ""
}
