package importer

import (
	"encoding/json"
	"strings"

	"github.com/unkn0wn-root/tinct/internal/errdef"
	"github.com/unkn0wn-root/tinct/internal/theme"
)

// monacoTheme mirrors monaco.editor.IStandaloneThemeData. Rule colours
// come without a leading # while the colors map includes one.
type monacoTheme struct {
	Base    string            `json:"base"`
	Inherit bool              `json:"inherit"`
	Rules   []monacoRule      `json:"rules"`
	Colors  map[string]string `json:"colors"`
}

type monacoRule struct {
	Token      string `json:"token"`
	Foreground string `json:"foreground"`
	Background string `json:"background"`
	FontStyle  string `json:"fontStyle"`
}

func decodeMonaco(data []byte) (monacoTheme, error) {
	var monaco monacoTheme
	if err := json.Unmarshal(data, &monaco); err != nil {
		return monacoTheme{}, errdef.Wrap(errdef.CodeImport, err, "parse monaco theme")
	}
	if monaco.Base == "" && len(monaco.Rules) == 0 && len(monaco.Colors) == 0 {
		return monacoTheme{}, errdef.New(errdef.CodeImport, "source does not look like a monaco theme")
	}
	return monaco, nil
}

func specFromMonaco(monaco monacoTheme, name string) (theme.ThemeSpec, error) {
	spec := theme.ThemeSpec{
		Inherit:  inheritForBase(monaco.Base),
		Metadata: &theme.Metadata{Name: name, Description: "Imported from Monaco"},
	}

	editor := &theme.EditorSpec{}
	editorUsed := false
	colorTargets := []struct {
		key    string
		target **string
	}{
		{"editor.background", &editor.Background},
		{"editor.foreground", &editor.Foreground},
	}
	for _, entry := range colorTargets {
		value, ok := monaco.Colors[entry.key]
		if !ok {
			continue
		}
		ptr, err := hexPtr(entry.key, value)
		if err != nil {
			return theme.ThemeSpec{}, err
		}
		if ptr != nil {
			*entry.target = ptr
			editorUsed = true
		}
	}
	styleColorTargets := []struct {
		key        string
		target     **theme.StyleSpec
		foreground bool
	}{
		{"editorLineNumber.foreground", &editor.LineNumber, true},
		{"editor.lineHighlightBackground", &editor.CursorLine, false},
		{"editor.selectionBackground", &editor.Selection, false},
	}
	for _, entry := range styleColorTargets {
		value, ok := monaco.Colors[entry.key]
		if !ok {
			continue
		}
		ptr, err := hexPtr(entry.key, value)
		if err != nil {
			return theme.ThemeSpec{}, err
		}
		if ptr == nil {
			continue
		}
		style := &theme.StyleSpec{}
		if entry.foreground {
			style.Foreground = ptr
		} else {
			style.Background = ptr
		}
		*entry.target = style
		editorUsed = true
	}

	syntax := &theme.SyntaxSpec{}
	syntaxUsed := false
	exactSlots := make(map[**theme.StyleSpec]bool)
	for _, rule := range monaco.Rules {
		token := strings.ToLower(strings.TrimSpace(rule.Token))
		if token == "" {
			// the empty token is monaco's default foreground
			ptr, err := hexPtr("rules", rule.Foreground)
			if err != nil {
				return theme.ThemeSpec{}, err
			}
			if ptr != nil && editor.Foreground == nil {
				editor.Foreground = ptr
				editorUsed = true
			}
			continue
		}
		slot := syntaxSlot(syntax, token)
		if slot == nil {
			continue
		}
		exact := !strings.Contains(token, ".")
		if *slot != nil && exactSlots[slot] && !exact {
			continue
		}
		style, err := styleFromRule(rule)
		if err != nil {
			return theme.ThemeSpec{}, err
		}
		if style == nil {
			continue
		}
		*slot = style
		exactSlots[slot] = exact
		syntaxUsed = true
	}

	if editorUsed {
		spec.Editor = editor
	}
	if syntaxUsed {
		spec.Syntax = syntax
	}
	return spec, nil
}

func inheritForBase(base string) string {
	switch strings.ToLower(strings.TrimSpace(base)) {
	case "vs", "hc-light":
		return "light"
	default:
		return "dark"
	}
}

func syntaxSlot(syntax *theme.SyntaxSpec, token string) **theme.StyleSpec {
	segment := token
	if idx := strings.IndexByte(segment, '.'); idx >= 0 {
		segment = segment[:idx]
	}
	switch segment {
	case "comment":
		return &syntax.Comment
	case "keyword":
		return &syntax.Keyword
	case "string", "regexp":
		return &syntax.String
	case "number":
		return &syntax.Number
	case "function", "member", "method":
		return &syntax.Function
	case "type", "class", "interface", "struct", "enum", "namespace":
		return &syntax.Type
	case "constant", "label":
		return &syntax.Constant
	case "variable", "parameter", "property", "identifier":
		return &syntax.Variable
	case "operator":
		return &syntax.Operator
	case "delimiter", "punctuation", "bracket", "tag":
		return &syntax.Punctuation
	default:
		return nil
	}
}

func styleFromRule(rule monacoRule) (*theme.StyleSpec, error) {
	style := &theme.StyleSpec{}
	used := false

	foreground, err := hexPtr(rule.Token, rule.Foreground)
	if err != nil {
		return nil, err
	}
	if foreground != nil {
		style.Foreground = foreground
		used = true
	}
	background, err := hexPtr(rule.Token, rule.Background)
	if err != nil {
		return nil, err
	}
	if background != nil {
		style.Background = background
		used = true
	}

	for _, token := range strings.Fields(strings.ToLower(rule.FontStyle)) {
		flag := true
		switch token {
		case "bold":
			style.Bold = &flag
		case "italic":
			style.Italic = &flag
		case "underline":
			style.Underline = &flag
		case "strikethrough":
			style.Strikethrough = &flag
		default:
			continue
		}
		used = true
	}

	if !used {
		return nil, nil
	}
	return style, nil
}

// hexPtr normalises a colour to #rrggbb form. Empty input yields nil so
// absent monaco fields stay absent in the spec.
func hexPtr(field string, value string) (*string, error) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(value), "#"))
	if trimmed == "" {
		return nil, nil
	}
	if len(trimmed) == 3 {
		expanded := make([]byte, 0, 6)
		for i := 0; i < 3; i++ {
			expanded = append(expanded, trimmed[i], trimmed[i])
		}
		trimmed = string(expanded)
	}
	if len(trimmed) != 6 && len(trimmed) != 8 {
		return nil, errdef.New(errdef.CodeImport, "%s: invalid colour %q", field, value)
	}
	for _, r := range trimmed {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') && (r < 'A' || r > 'F') {
			return nil, errdef.New(errdef.CodeImport, "%s: invalid colour %q", field, value)
		}
	}
	normalized := "#" + strings.ToLower(trimmed)
	return &normalized, nil
}
