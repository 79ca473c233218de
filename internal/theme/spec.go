package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Metadata struct {
	Name        string   `json:"name"        toml:"name"        yaml:"name"`
	Description string   `json:"description" toml:"description" yaml:"description"`
	Author      string   `json:"author"      toml:"author"      yaml:"author"`
	Version     string   `json:"version"     toml:"version"     yaml:"version"`
	Variant     string   `json:"variant"     toml:"variant"     yaml:"variant"`
	Tags        []string `json:"tags"        toml:"tags"        yaml:"tags"`
}

// ThemeSpec is the on-disk theme format: overrides applied over a builtin base.
// Inherit chooses the base ("dark" when empty).
type ThemeSpec struct {
	Inherit  string       `json:"inherit"  toml:"inherit"  yaml:"inherit"`
	Metadata *Metadata    `json:"metadata" toml:"metadata" yaml:"metadata"`
	Styles   StylesSpec   `json:"styles"   toml:"styles"   yaml:"styles"`
	Colors   ColorsSpec   `json:"colors"   toml:"colors"   yaml:"colors"`
	Editor   *EditorSpec  `json:"editor"   toml:"editor"   yaml:"editor"`
	Syntax   *SyntaxSpec  `json:"syntax"   toml:"syntax"   yaml:"syntax"`
	Swatches []SwatchSpec `json:"swatches" toml:"swatches" yaml:"swatches"`
}

type StylesSpec struct {
	AppFrame                    *StyleSpec `json:"app_frame"                      toml:"app_frame"                      yaml:"app_frame"`
	Header                      *StyleSpec `json:"header"                         toml:"header"                         yaml:"header"`
	HeaderBrand                 *StyleSpec `json:"header_brand"                   toml:"header_brand"                   yaml:"header_brand"`
	HeaderTitle                 *StyleSpec `json:"header_title"                   toml:"header_title"                   yaml:"header_title"`
	HeaderValue                 *StyleSpec `json:"header_value"                   toml:"header_value"                   yaml:"header_value"`
	HeaderSeparator             *StyleSpec `json:"header_separator"               toml:"header_separator"               yaml:"header_separator"`
	StatusBar                   *StyleSpec `json:"status_bar"                     toml:"status_bar"                     yaml:"status_bar"`
	StatusBarKey                *StyleSpec `json:"status_bar_key"                 toml:"status_bar_key"                 yaml:"status_bar_key"`
	StatusBarValue              *StyleSpec `json:"status_bar_value"               toml:"status_bar_value"               yaml:"status_bar_value"`
	CommandBar                  *StyleSpec `json:"command_bar"                    toml:"command_bar"                    yaml:"command_bar"`
	CommandBarHint              *StyleSpec `json:"command_bar_hint"               toml:"command_bar_hint"               yaml:"command_bar_hint"`
	Notification                *StyleSpec `json:"notification"                   toml:"notification"                   yaml:"notification"`
	Error                       *StyleSpec `json:"error"                          toml:"error"                          yaml:"error"`
	Warning                     *StyleSpec `json:"warning"                        toml:"warning"                        yaml:"warning"`
	Success                     *StyleSpec `json:"success"                        toml:"success"                        yaml:"success"`
	ListBorder                  *StyleSpec `json:"list_border"                    toml:"list_border"                    yaml:"list_border"`
	DetailBorder                *StyleSpec `json:"detail_border"                  toml:"detail_border"                  yaml:"detail_border"`
	PreviewBorder               *StyleSpec `json:"preview_border"                 toml:"preview_border"                 yaml:"preview_border"`
	ModalBorder                 *StyleSpec `json:"modal_border"                   toml:"modal_border"                   yaml:"modal_border"`
	PaneTitle                   *StyleSpec `json:"pane_title"                     toml:"pane_title"                     yaml:"pane_title"`
	ListItemTitle               *StyleSpec `json:"list_item_title"                toml:"list_item_title"                yaml:"list_item_title"`
	ListItemDescription         *StyleSpec `json:"list_item_description"          toml:"list_item_description"          yaml:"list_item_description"`
	ListItemSelectedTitle       *StyleSpec `json:"list_item_selected_title"       toml:"list_item_selected_title"       yaml:"list_item_selected_title"`
	ListItemSelectedDescription *StyleSpec `json:"list_item_selected_description" toml:"list_item_selected_description" yaml:"list_item_selected_description"`
	ListItemDimmedTitle         *StyleSpec `json:"list_item_dimmed_title"         toml:"list_item_dimmed_title"         yaml:"list_item_dimmed_title"`
	ListItemDimmedDescription   *StyleSpec `json:"list_item_dimmed_description"   toml:"list_item_dimmed_description"   yaml:"list_item_dimmed_description"`
	ListItemFilterMatch         *StyleSpec `json:"list_item_filter_match"         toml:"list_item_filter_match"         yaml:"list_item_filter_match"`
	ListItemActiveBadge         *StyleSpec `json:"list_item_active_badge"         toml:"list_item_active_badge"         yaml:"list_item_active_badge"`
	FieldLabel                  *StyleSpec `json:"field_label"                    toml:"field_label"                    yaml:"field_label"`
	FieldValue                  *StyleSpec `json:"field_value"                    toml:"field_value"                    yaml:"field_value"`
	FieldDisabled               *StyleSpec `json:"field_disabled"                 toml:"field_disabled"                 yaml:"field_disabled"`
	CheckboxOn                  *StyleSpec `json:"checkbox_on"                    toml:"checkbox_on"                    yaml:"checkbox_on"`
	CheckboxOff                 *StyleSpec `json:"checkbox_off"                   toml:"checkbox_off"                   yaml:"checkbox_off"`
	ControlDisabled             *StyleSpec `json:"control_disabled"               toml:"control_disabled"               yaml:"control_disabled"`
}

type ColorsSpec struct {
	PaneBorderFocusList    *string `json:"pane_border_focus_list"    toml:"pane_border_focus_list"    yaml:"pane_border_focus_list"`
	PaneBorderFocusDetail  *string `json:"pane_border_focus_detail"  toml:"pane_border_focus_detail"  yaml:"pane_border_focus_detail"`
	PaneBorderFocusPreview *string `json:"pane_border_focus_preview" toml:"pane_border_focus_preview" yaml:"pane_border_focus_preview"`
	PaneActiveForeground   *string `json:"pane_active_foreground"    toml:"pane_active_foreground"    yaml:"pane_active_foreground"`
}

type EditorSpec struct {
	Background *string    `json:"background"  toml:"background"  yaml:"background"`
	Foreground *string    `json:"foreground"  toml:"foreground"  yaml:"foreground"`
	LineNumber *StyleSpec `json:"line_number" toml:"line_number" yaml:"line_number"`
	CursorLine *StyleSpec `json:"cursor_line" toml:"cursor_line" yaml:"cursor_line"`
	Selection  *StyleSpec `json:"selection"   toml:"selection"   yaml:"selection"`
}

type SyntaxSpec struct {
	Comment     *StyleSpec `json:"comment"     toml:"comment"     yaml:"comment"`
	Keyword     *StyleSpec `json:"keyword"     toml:"keyword"     yaml:"keyword"`
	String      *StyleSpec `json:"string"      toml:"string"      yaml:"string"`
	Number      *StyleSpec `json:"number"      toml:"number"      yaml:"number"`
	Function    *StyleSpec `json:"function"    toml:"function"    yaml:"function"`
	Type        *StyleSpec `json:"type"        toml:"type"        yaml:"type"`
	Constant    *StyleSpec `json:"constant"    toml:"constant"    yaml:"constant"`
	Variable    *StyleSpec `json:"variable"    toml:"variable"    yaml:"variable"`
	Operator    *StyleSpec `json:"operator"    toml:"operator"    yaml:"operator"`
	Punctuation *StyleSpec `json:"punctuation" toml:"punctuation" yaml:"punctuation"`
}

type SwatchSpec struct {
	Fill  *string `json:"fill"  toml:"fill"  yaml:"fill"`
	Label *string `json:"label" toml:"label" yaml:"label"`
}

type StyleSpec struct {
	Foreground       *string `json:"foreground"        toml:"foreground"        yaml:"foreground"`
	Background       *string `json:"background"        toml:"background"        yaml:"background"`
	BorderColor      *string `json:"border_color"      toml:"border_color"      yaml:"border_color"`
	BorderBackground *string `json:"border_background" toml:"border_background" yaml:"border_background"`
	BorderStyle      *string `json:"border_style"      toml:"border_style"      yaml:"border_style"`
	Bold             *bool   `json:"bold"              toml:"bold"              yaml:"bold"`
	Italic           *bool   `json:"italic"            toml:"italic"            yaml:"italic"`
	Underline        *bool   `json:"underline"         toml:"underline"         yaml:"underline"`
	Faint            *bool   `json:"faint"             toml:"faint"             yaml:"faint"`
	Strikethrough    *bool   `json:"strikethrough"     toml:"strikethrough"     yaml:"strikethrough"`
	Align            *string `json:"align"             toml:"align"             yaml:"align"`
}

func ApplySpec(base Theme, spec ThemeSpec) (Theme, error) {
	cloned := cloneTheme(base)

	apply := func(name string, target *lipgloss.Style, override *StyleSpec) error {
		if override == nil {
			return nil
		}
		next, err := override.apply(*target)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*target = next
		return nil
	}

	styleTargets := []struct {
		name     string
		target   *lipgloss.Style
		override *StyleSpec
	}{
		{"app_frame", &cloned.AppFrame, spec.Styles.AppFrame},
		{"header", &cloned.Header, spec.Styles.Header},
		{"header_brand", &cloned.HeaderBrand, spec.Styles.HeaderBrand},
		{"header_title", &cloned.HeaderTitle, spec.Styles.HeaderTitle},
		{"header_value", &cloned.HeaderValue, spec.Styles.HeaderValue},
		{"header_separator", &cloned.HeaderSeparator, spec.Styles.HeaderSeparator},
		{"status_bar", &cloned.StatusBar, spec.Styles.StatusBar},
		{"status_bar_key", &cloned.StatusBarKey, spec.Styles.StatusBarKey},
		{"status_bar_value", &cloned.StatusBarValue, spec.Styles.StatusBarValue},
		{"command_bar", &cloned.CommandBar, spec.Styles.CommandBar},
		{"command_bar_hint", &cloned.CommandBarHint, spec.Styles.CommandBarHint},
		{"notification", &cloned.Notification, spec.Styles.Notification},
		{"error", &cloned.Error, spec.Styles.Error},
		{"warning", &cloned.Warning, spec.Styles.Warning},
		{"success", &cloned.Success, spec.Styles.Success},
		{"list_border", &cloned.ListBorder, spec.Styles.ListBorder},
		{"detail_border", &cloned.DetailBorder, spec.Styles.DetailBorder},
		{"preview_border", &cloned.PreviewBorder, spec.Styles.PreviewBorder},
		{"modal_border", &cloned.ModalBorder, spec.Styles.ModalBorder},
		{"pane_title", &cloned.PaneTitle, spec.Styles.PaneTitle},
		{"list_item_title", &cloned.ListItemTitle, spec.Styles.ListItemTitle},
		{"list_item_description", &cloned.ListItemDescription, spec.Styles.ListItemDescription},
		{
			"list_item_selected_title",
			&cloned.ListItemSelectedTitle,
			spec.Styles.ListItemSelectedTitle,
		},
		{
			"list_item_selected_description",
			&cloned.ListItemSelectedDescription,
			spec.Styles.ListItemSelectedDescription,
		},
		{"list_item_dimmed_title", &cloned.ListItemDimmedTitle, spec.Styles.ListItemDimmedTitle},
		{
			"list_item_dimmed_description",
			&cloned.ListItemDimmedDescription,
			spec.Styles.ListItemDimmedDescription,
		},
		{"list_item_filter_match", &cloned.ListItemFilterMatch, spec.Styles.ListItemFilterMatch},
		{"list_item_active_badge", &cloned.ListItemActiveBadge, spec.Styles.ListItemActiveBadge},
		{"field_label", &cloned.FieldLabel, spec.Styles.FieldLabel},
		{"field_value", &cloned.FieldValue, spec.Styles.FieldValue},
		{"field_disabled", &cloned.FieldDisabled, spec.Styles.FieldDisabled},
		{"checkbox_on", &cloned.CheckboxOn, spec.Styles.CheckboxOn},
		{"checkbox_off", &cloned.CheckboxOff, spec.Styles.CheckboxOff},
		{"control_disabled", &cloned.ControlDisabled, spec.Styles.ControlDisabled},
	}
	for _, entry := range styleTargets {
		if err := apply(entry.name, entry.target, entry.override); err != nil {
			return Theme{}, err
		}
	}

	if spec.Colors.PaneBorderFocusList != nil {
		color, err := toColor("pane_border_focus_list", *spec.Colors.PaneBorderFocusList)
		if err != nil {
			return Theme{}, err
		}
		cloned.PaneBorderFocusList = color
	}
	if spec.Colors.PaneBorderFocusDetail != nil {
		color, err := toColor("pane_border_focus_detail", *spec.Colors.PaneBorderFocusDetail)
		if err != nil {
			return Theme{}, err
		}
		cloned.PaneBorderFocusDetail = color
	}
	if spec.Colors.PaneBorderFocusPreview != nil {
		color, err := toColor("pane_border_focus_preview", *spec.Colors.PaneBorderFocusPreview)
		if err != nil {
			return Theme{}, err
		}
		cloned.PaneBorderFocusPreview = color
	}
	if spec.Colors.PaneActiveForeground != nil {
		color, err := toColor("pane_active_foreground", *spec.Colors.PaneActiveForeground)
		if err != nil {
			return Theme{}, err
		}
		cloned.PaneActiveForeground = color
	}

	if spec.Editor != nil {
		if err := applyEditor(&cloned, *spec.Editor); err != nil {
			return Theme{}, err
		}
	}

	if spec.Syntax != nil {
		syntaxTargets := []struct {
			name     string
			target   *lipgloss.Style
			override *StyleSpec
		}{
			{"syntax.comment", &cloned.SyntaxComment, spec.Syntax.Comment},
			{"syntax.keyword", &cloned.SyntaxKeyword, spec.Syntax.Keyword},
			{"syntax.string", &cloned.SyntaxString, spec.Syntax.String},
			{"syntax.number", &cloned.SyntaxNumber, spec.Syntax.Number},
			{"syntax.function", &cloned.SyntaxFunction, spec.Syntax.Function},
			{"syntax.type", &cloned.SyntaxType, spec.Syntax.Type},
			{"syntax.constant", &cloned.SyntaxConstant, spec.Syntax.Constant},
			{"syntax.variable", &cloned.SyntaxVariable, spec.Syntax.Variable},
			{"syntax.operator", &cloned.SyntaxOperator, spec.Syntax.Operator},
			{"syntax.punctuation", &cloned.SyntaxPunctuation, spec.Syntax.Punctuation},
		}
		for _, entry := range syntaxTargets {
			if err := apply(entry.name, entry.target, entry.override); err != nil {
				return Theme{}, err
			}
		}
	}

	if len(spec.Swatches) > 0 {
		swatches, err := applySwatches(cloned.Swatches, spec.Swatches)
		if err != nil {
			return Theme{}, err
		}
		cloned.Swatches = swatches
	}

	return cloned, nil
}

func applyEditor(dst *Theme, spec EditorSpec) error {
	if spec.Background != nil {
		color, err := toColor("editor.background", *spec.Background)
		if err != nil {
			return err
		}
		dst.EditorBackground = color
	}
	if spec.Foreground != nil {
		color, err := toColor("editor.foreground", *spec.Foreground)
		if err != nil {
			return err
		}
		dst.EditorForeground = color
	}
	if spec.LineNumber != nil {
		next, err := spec.LineNumber.apply(dst.EditorLineNumber)
		if err != nil {
			return fmt.Errorf("editor.line_number: %w", err)
		}
		dst.EditorLineNumber = next
	}
	if spec.CursorLine != nil {
		next, err := spec.CursorLine.apply(dst.EditorCursorLine)
		if err != nil {
			return fmt.Errorf("editor.cursor_line: %w", err)
		}
		dst.EditorCursorLine = next
	}
	if spec.Selection != nil {
		next, err := spec.Selection.apply(dst.EditorSelection)
		if err != nil {
			return fmt.Errorf("editor.selection: %w", err)
		}
		dst.EditorSelection = next
	}
	return nil
}

func applySwatches(base []SwatchStyle, overrides []SwatchSpec) ([]SwatchStyle, error) {
	if len(overrides) == 0 {
		return base, nil
	}
	if len(base) == 0 {
		base = []SwatchStyle{{}}
	}
	result := make([]SwatchStyle, len(overrides))
	for i, spec := range overrides {
		template := base[i%len(base)]
		if spec.Fill != nil {
			color, err := toColor("swatches.fill", *spec.Fill)
			if err != nil {
				return nil, err
			}
			template.Fill = color
		}
		if spec.Label != nil {
			color, err := toColor("swatches.label", *spec.Label)
			if err != nil {
				return nil, err
			}
			template.Label = color
		}
		result[i] = template
	}
	return result, nil
}

func (s *StyleSpec) apply(base lipgloss.Style) (lipgloss.Style, error) {
	if s == nil {
		return base, nil
	}
	current := base
	if s.Foreground != nil {
		color, err := toColor("foreground", *s.Foreground)
		if err != nil {
			return lipgloss.Style{}, err
		}
		current = current.Foreground(color)
	}
	if s.Background != nil {
		color, err := toColor("background", *s.Background)
		if err != nil {
			return lipgloss.Style{}, err
		}
		current = current.Background(color)
	}
	if s.BorderColor != nil {
		color, err := toColor("border_color", *s.BorderColor)
		if err != nil {
			return lipgloss.Style{}, err
		}
		current = current.BorderForeground(color)
	}
	if s.BorderBackground != nil {
		color, err := toColor("border_background", *s.BorderBackground)
		if err != nil {
			return lipgloss.Style{}, err
		}
		current = current.BorderBackground(color)
	}
	if s.BorderStyle != nil {
		normalized := strings.ToLower(strings.TrimSpace(*s.BorderStyle))
		if normalized != "inherit" {
			border, err := parseBorderStyle(normalized)
			if err != nil {
				return lipgloss.Style{}, err
			}
			current = current.BorderStyle(border)
		}
	}
	if s.Bold != nil {
		current = current.Bold(*s.Bold)
	}
	if s.Italic != nil {
		current = current.Italic(*s.Italic)
	}
	if s.Underline != nil {
		current = current.Underline(*s.Underline)
	}
	if s.Faint != nil {
		current = current.Faint(*s.Faint)
	}
	if s.Strikethrough != nil {
		current = current.Strikethrough(*s.Strikethrough)
	}
	if s.Align != nil {
		align, err := parseAlign(*s.Align)
		if err != nil {
			return lipgloss.Style{}, err
		}
		current = current.Align(align)
	}
	return current, nil
}

func cloneTheme(src Theme) Theme {
	clone := src
	if len(src.Swatches) > 0 {
		clone.Swatches = append([]SwatchStyle(nil), src.Swatches...)
	}
	return clone
}

func toColor(field string, value string) (lipgloss.Color, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%s: colour value may not be empty", field)
	}
	return lipgloss.Color(trimmed), nil
}

func parseAlign(value string) (lipgloss.Position, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "left", "start", "default", "":
		return lipgloss.Left, nil
	case "center", "centre", "middle":
		return lipgloss.Center, nil
	case "right", "end":
		return lipgloss.Right, nil
	default:
		return lipgloss.Left, fmt.Errorf("align: unknown alignment %q", value)
	}
}

func parseBorderStyle(value string) (lipgloss.Border, error) {
	switch value {
	case "":
		return lipgloss.Border{}, fmt.Errorf("border_style: value may not be empty")
	case "none", "hidden", "off":
		return lipgloss.Border{}, nil
	case "normal", "single":
		return lipgloss.NormalBorder(), nil
	case "rounded":
		return lipgloss.RoundedBorder(), nil
	case "thick", "heavy":
		return lipgloss.ThickBorder(), nil
	case "double":
		return lipgloss.DoubleBorder(), nil
	case "ascii":
		return lipgloss.Border{
			Top:         "-",
			Bottom:      "-",
			Left:        "|",
			Right:       "|",
			TopLeft:     "+",
			TopRight:    "+",
			BottomLeft:  "+",
			BottomRight: "+",
		}, nil
	case "block":
		return lipgloss.BlockBorder(), nil
	default:
		return lipgloss.Border{}, fmt.Errorf("border_style: unknown border style %q", value)
	}
}
