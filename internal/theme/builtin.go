package theme

import "github.com/charmbracelet/lipgloss"

// LightTheme is the builtin light palette. Specs opt into it with
// inherit = "light".
func LightTheme() Theme {
	accent := lipgloss.Color("#6C3EF0")
	teal := lipgloss.Color("#0B7285")
	amber := lipgloss.Color("#A66400")
	base := lipgloss.NewStyle().Foreground(lipgloss.Color("#2E2A3A"))

	return Theme{
		AppFrame: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#C9C2E8")),
		Header: lipgloss.NewStyle().Foreground(lipgloss.Color("#2E2A3A")).Padding(0, 1),
		HeaderBrand: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF8E7")).
			Background(lipgloss.Color("#B8860B")).
			Bold(true).
			Padding(0, 1),
		HeaderTitle:     lipgloss.NewStyle().Foreground(accent).Bold(true),
		HeaderValue:     lipgloss.NewStyle().Foreground(lipgloss.Color("#443E5C")),
		HeaderSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("#8B7FC7")).Bold(true),
		StatusBar:       lipgloss.NewStyle().Foreground(lipgloss.Color("#5A5470")).Padding(0, 1),
		StatusBarKey:    lipgloss.NewStyle().Foreground(lipgloss.Color("#C2571A")).Bold(true),
		StatusBarValue:  lipgloss.NewStyle().Foreground(lipgloss.Color("#2E2A3A")),
		CommandBar:      lipgloss.NewStyle().Foreground(lipgloss.Color("#544E6E")).Padding(0, 1),
		CommandBarHint:  lipgloss.NewStyle().Foreground(accent).Bold(true),
		Notification: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2E2A3A")).
			Background(lipgloss.Color("#E4DDF8")).
			Padding(0, 1),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#C03535")),
		Warning: lipgloss.NewStyle().Foreground(amber),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#1E7E34")),

		ListBorder: base.BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#8B72E8")),
		DetailBorder: base.BorderStyle(lipgloss.RoundedBorder()).BorderForeground(accent),
		PreviewBorder: base.BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3E9E9E")),
		ModalBorder: base.BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#8B72E8")),
		PaneTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("#5A5470")).Bold(true),

		PaneBorderFocusList:    accent,
		PaneBorderFocusDetail:  teal,
		PaneBorderFocusPreview: lipgloss.Color("#1E7E34"),
		PaneActiveForeground:   lipgloss.Color("#1C1828"),

		ListItemTitle:               lipgloss.NewStyle().Foreground(lipgloss.Color("#2E2A3A")),
		ListItemDescription:         lipgloss.NewStyle().Foreground(lipgloss.Color("#847E9C")),
		ListItemSelectedTitle:       lipgloss.Style{},
		ListItemSelectedDescription: lipgloss.Style{},
		ListItemDimmedTitle:         lipgloss.NewStyle().Foreground(lipgloss.Color("#A49CC0")),
		ListItemDimmedDescription:   lipgloss.NewStyle().Foreground(lipgloss.Color("#B7B0D1")),
		ListItemFilterMatch: lipgloss.NewStyle().
			Underline(true).
			Foreground(lipgloss.Color("#5B2EE0")),
		ListItemActiveBadge: lipgloss.NewStyle().Foreground(lipgloss.Color("#1E7E34")).Bold(true),

		FieldLabel:    lipgloss.NewStyle().Foreground(amber),
		FieldValue:    lipgloss.NewStyle().Foreground(lipgloss.Color("#2E2A3A")),
		FieldDisabled: lipgloss.NewStyle().Foreground(lipgloss.Color("#A49CC0")),
		CheckboxOn:    lipgloss.NewStyle().Foreground(lipgloss.Color("#1E7E34")).Bold(true),
		CheckboxOff:   lipgloss.NewStyle().Foreground(lipgloss.Color("#5A5470")),
		ControlDisabled: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#B7B0D1")).
			Faint(true),

		EditorBackground: lipgloss.Color("#FDFBFF"),
		EditorForeground: lipgloss.Color("#2E2A3A"),
		EditorLineNumber: lipgloss.NewStyle().Foreground(lipgloss.Color("#A49CC0")),
		EditorCursorLine: lipgloss.NewStyle().Background(lipgloss.Color("#EFEAFB")),
		EditorSelection: lipgloss.NewStyle().
			Background(lipgloss.Color("#D7CCF5")).
			Foreground(lipgloss.Color("#1C1828")),

		SyntaxComment:     lipgloss.NewStyle().Foreground(lipgloss.Color("#9A92B5")).Italic(true),
		SyntaxKeyword:     lipgloss.NewStyle().Foreground(accent).Bold(true),
		SyntaxString:      lipgloss.NewStyle().Foreground(lipgloss.Color("#1E7E34")),
		SyntaxNumber:      lipgloss.NewStyle().Foreground(amber),
		SyntaxFunction:    lipgloss.NewStyle().Foreground(teal),
		SyntaxType:        lipgloss.NewStyle().Foreground(lipgloss.Color("#3E6E9E")),
		SyntaxConstant:    lipgloss.NewStyle().Foreground(lipgloss.Color("#B03A8C")),
		SyntaxVariable:    lipgloss.NewStyle().Foreground(lipgloss.Color("#2E2A3A")),
		SyntaxOperator:    lipgloss.NewStyle().Foreground(lipgloss.Color("#5A5470")),
		SyntaxPunctuation: lipgloss.NewStyle().Foreground(lipgloss.Color("#6E688A")),

		Swatches: []SwatchStyle{
			{Fill: lipgloss.Color("#6C3EF0"), Label: lipgloss.Color("#F4EFFF")},
			{Fill: lipgloss.Color("#0B7285"), Label: lipgloss.Color("#E3FAFC")},
			{Fill: lipgloss.Color("#1E7E34"), Label: lipgloss.Color("#E6F9EC")},
			{Fill: lipgloss.Color("#A66400"), Label: lipgloss.Color("#FFF3D8")},
			{Fill: lipgloss.Color("#C03535"), Label: lipgloss.Color("#FFE6E0")},
		},
	}
}
