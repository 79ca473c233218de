// Package preview renders a fixed code sample in a candidate theme so
// the user sees syntax colours before applying anything.
package preview

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/lexers"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/unkn0wn-root/tinct/internal/theme"
)

const sampleSource = `package main

import "fmt"

// Palette holds the accent colours a terminal cycles through.
type Palette struct {
    Name    string
    Accents []uint32
}

const maxAccents = 5

func (p Palette) Describe() string {
    if len(p.Accents) == 0 {
        return p.Name + " (empty)"
    }
    return fmt.Sprintf("%s: %d accents", p.Name, len(p.Accents))
}
`

// previewCursorRow is the 1-based sample line drawn with the cursor
// line background.
const previewCursorRow = 13

var (
	tokenizeOnce sync.Once
	sampleLines  [][]chroma.Token
	tokenizeErr  error
)

func tokenizedSample() ([][]chroma.Token, error) {
	tokenizeOnce.Do(func() {
		lexer := lexers.Get("go")
		if lexer == nil {
			lexer = lexers.Fallback
		}
		lexer = chroma.Coalesce(lexer)

		iterator, err := lexer.Tokenise(nil, sampleSource)
		if err != nil {
			tokenizeErr = err
			return
		}

		lines := [][]chroma.Token{nil}
		for token := iterator(); token != chroma.EOF; token = iterator() {
			parts := strings.Split(token.Value, "\n")
			for i, part := range parts {
				if i > 0 {
					lines = append(lines, nil)
				}
				if part == "" {
					continue
				}
				lines[len(lines)-1] = append(
					lines[len(lines)-1],
					chroma.Token{Type: token.Type, Value: part},
				)
			}
		}
		// drop the empty line the trailing newline leaves behind
		if len(lines) > 0 && len(lines[len(lines)-1]) == 0 {
			lines = lines[:len(lines)-1]
		}
		sampleLines = lines
	})
	return sampleLines, tokenizeErr
}

// Code renders the sample with line numbers. height caps the number of
// lines; zero or negative means all of them.
func Code(t theme.Theme, width, height int) string {
	if width <= 0 {
		return ""
	}
	lines, err := tokenizedSample()
	if err != nil {
		return t.Error.Render(fmt.Sprintf("preview unavailable: %v", err))
	}
	if height > 0 && height < len(lines) {
		lines = lines[:height]
	}

	numberWidth := len(strconv.Itoa(len(lines)))
	cursorBg := t.EditorCursorLine.GetBackground()

	var out strings.Builder
	for i, tokens := range lines {
		onCursorRow := i+1 == previewCursorRow

		numberStyle := t.EditorLineNumber
		if onCursorRow {
			numberStyle = numberStyle.Background(cursorBg)
		}

		var line strings.Builder
		line.WriteString(numberStyle.Render(fmt.Sprintf(" %*d  ", numberWidth, i+1)))
		for _, token := range tokens {
			style := styleForToken(t, token.Type)
			if onCursorRow {
				style = style.Background(cursorBg)
			}
			line.WriteString(style.Render(token.Value))
		}

		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(ansi.Truncate(line.String(), width, ""))
	}
	return out.String()
}

// Swatches renders the accent chips in a single row.
func Swatches(t theme.Theme, width int) string {
	if width <= 0 || len(t.Swatches) == 0 {
		return ""
	}
	chips := make([]string, 0, len(t.Swatches))
	for _, swatch := range t.Swatches {
		chip := lipgloss.NewStyle().
			Background(swatch.Fill).
			Foreground(swatch.Label).
			Render(" Aa ")
		chips = append(chips, chip)
	}
	return ansi.Truncate(strings.Join(chips, " "), width, "")
}

func styleForToken(t theme.Theme, tokenType chroma.TokenType) lipgloss.Style {
	switch {
	case tokenType.InCategory(chroma.Comment):
		return t.SyntaxComment
	case tokenType == chroma.KeywordType:
		return t.SyntaxType
	case tokenType == chroma.KeywordConstant:
		return t.SyntaxConstant
	case tokenType.InCategory(chroma.Keyword):
		return t.SyntaxKeyword
	case tokenType.InSubCategory(chroma.LiteralString):
		return t.SyntaxString
	case tokenType.InSubCategory(chroma.LiteralNumber):
		return t.SyntaxNumber
	case tokenType == chroma.NameFunction, tokenType == chroma.NameBuiltin:
		return t.SyntaxFunction
	case tokenType == chroma.NameClass, tokenType == chroma.NameNamespace:
		return t.SyntaxType
	case tokenType == chroma.NameConstant:
		return t.SyntaxConstant
	case tokenType.InCategory(chroma.Name):
		return t.SyntaxVariable
	case tokenType.InCategory(chroma.Operator):
		return t.SyntaxOperator
	case tokenType.InCategory(chroma.Punctuation):
		return t.SyntaxPunctuation
	default:
		return lipgloss.NewStyle().Foreground(t.EditorForeground)
	}
}
