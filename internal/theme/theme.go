package theme

import "github.com/charmbracelet/lipgloss"

type SwatchStyle struct {
	Fill  lipgloss.Color
	Label lipgloss.Color
}

// Variant tells system-theme sync which side of the OS preference a theme serves.
type Variant string

const (
	VariantDark  Variant = "dark"
	VariantLight Variant = "light"
)

type Theme struct {
	AppFrame        lipgloss.Style
	Header          lipgloss.Style
	HeaderBrand     lipgloss.Style
	HeaderTitle     lipgloss.Style
	HeaderValue     lipgloss.Style
	HeaderSeparator lipgloss.Style
	StatusBar       lipgloss.Style
	StatusBarKey    lipgloss.Style
	StatusBarValue  lipgloss.Style
	CommandBar      lipgloss.Style
	CommandBarHint  lipgloss.Style
	Notification    lipgloss.Style
	Error           lipgloss.Style
	Warning         lipgloss.Style
	Success         lipgloss.Style

	ListBorder    lipgloss.Style
	DetailBorder  lipgloss.Style
	PreviewBorder lipgloss.Style
	ModalBorder   lipgloss.Style
	PaneTitle     lipgloss.Style

	PaneBorderFocusList    lipgloss.Color
	PaneBorderFocusDetail  lipgloss.Color
	PaneBorderFocusPreview lipgloss.Color
	PaneActiveForeground   lipgloss.Color

	ListItemTitle               lipgloss.Style
	ListItemDescription         lipgloss.Style
	ListItemSelectedTitle       lipgloss.Style
	ListItemSelectedDescription lipgloss.Style
	ListItemDimmedTitle         lipgloss.Style
	ListItemDimmedDescription   lipgloss.Style
	ListItemFilterMatch         lipgloss.Style
	ListItemActiveBadge         lipgloss.Style

	FieldLabel      lipgloss.Style
	FieldValue      lipgloss.Style
	FieldDisabled   lipgloss.Style
	CheckboxOn      lipgloss.Style
	CheckboxOff     lipgloss.Style
	ControlDisabled lipgloss.Style

	EditorBackground lipgloss.Color
	EditorForeground lipgloss.Color
	EditorLineNumber lipgloss.Style
	EditorCursorLine lipgloss.Style
	EditorSelection  lipgloss.Style

	SyntaxComment     lipgloss.Style
	SyntaxKeyword     lipgloss.Style
	SyntaxString      lipgloss.Style
	SyntaxNumber      lipgloss.Style
	SyntaxFunction    lipgloss.Style
	SyntaxType        lipgloss.Style
	SyntaxConstant    lipgloss.Style
	SyntaxVariable    lipgloss.Style
	SyntaxOperator    lipgloss.Style
	SyntaxPunctuation lipgloss.Style

	Swatches []SwatchStyle
}

// DarkTheme is the base every spec resolves against.
func DarkTheme() Theme {
	accent := lipgloss.Color("#7D56F4")
	teal := lipgloss.Color("#15AABF")
	gold := lipgloss.Color("#FFD46A")
	base := lipgloss.NewStyle().Foreground(lipgloss.Color("#dcd7ff"))

	return Theme{
		AppFrame: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#403B59")),
		Header: lipgloss.NewStyle().Foreground(lipgloss.Color("#E5E1FF")).Padding(0, 1),
		HeaderBrand: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1A1020")).
			Background(lipgloss.Color("#FBC859")).
			Bold(true).
			Padding(0, 1),
		HeaderTitle:     lipgloss.NewStyle().Foreground(accent).Bold(true),
		HeaderValue:     lipgloss.NewStyle().Foreground(lipgloss.Color("#D1CFF6")),
		HeaderSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("#867CC1")).Bold(true),
		StatusBar:       lipgloss.NewStyle().Foreground(lipgloss.Color("#A6A1BB")).Padding(0, 1),
		StatusBarKey:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8B39")).Bold(true),
		StatusBarValue:  lipgloss.NewStyle().Foreground(lipgloss.Color("#EAEAEA")),
		CommandBar:      lipgloss.NewStyle().Foreground(lipgloss.Color("#C2C0D9")).Padding(0, 1),
		CommandBarHint:  lipgloss.NewStyle().Foreground(accent).Bold(true),
		Notification: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E0DEF4")).
			Background(lipgloss.Color("#433C59")).
			Padding(0, 1),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6E6E")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB61E")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#6EF17E")),

		ListBorder: base.BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#A78BFA")),
		DetailBorder: base.BorderStyle(lipgloss.RoundedBorder()).BorderForeground(accent),
		PreviewBorder: base.BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5FB3B3")),
		ModalBorder: base.BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#A78BFA")),
		PaneTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("#A6A1BB")).Bold(true),

		PaneBorderFocusList:    accent,
		PaneBorderFocusDetail:  teal,
		PaneBorderFocusPreview: lipgloss.Color("#33C481"),
		PaneActiveForeground:   lipgloss.Color("#F5F2FF"),

		ListItemTitle:               lipgloss.NewStyle().Foreground(lipgloss.Color("#E6E1FF")),
		ListItemDescription:         lipgloss.NewStyle().Foreground(lipgloss.Color("#7d7b87")),
		ListItemSelectedTitle:       lipgloss.Style{},
		ListItemSelectedDescription: lipgloss.Style{},
		ListItemDimmedTitle:         lipgloss.NewStyle().Foreground(lipgloss.Color("#5E5A72")),
		ListItemDimmedDescription:   lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4760")),
		ListItemFilterMatch: lipgloss.NewStyle().
			Underline(true).
			Foreground(lipgloss.Color("#B9A5FF")),
		ListItemActiveBadge: lipgloss.NewStyle().Foreground(lipgloss.Color("#6EF17E")).Bold(true),

		FieldLabel:    lipgloss.NewStyle().Foreground(gold),
		FieldValue:    lipgloss.NewStyle().Foreground(lipgloss.Color("#EAEAEA")),
		FieldDisabled: lipgloss.NewStyle().Foreground(lipgloss.Color("#5E5A72")),
		CheckboxOn:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6EF17E")).Bold(true),
		CheckboxOff:   lipgloss.NewStyle().Foreground(lipgloss.Color("#A6A1BB")),
		ControlDisabled: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4A4760")).
			Faint(true),

		EditorBackground: lipgloss.Color("#161420"),
		EditorForeground: lipgloss.Color("#E6E1FF"),
		EditorLineNumber: lipgloss.NewStyle().Foreground(lipgloss.Color("#5E5A72")),
		EditorCursorLine: lipgloss.NewStyle().Background(lipgloss.Color("#25223A")),
		EditorSelection: lipgloss.NewStyle().
			Background(lipgloss.Color("#3B355D")).
			Foreground(lipgloss.Color("#F5F2FF")),

		SyntaxComment:     lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6A86")).Italic(true),
		SyntaxKeyword:     lipgloss.NewStyle().Foreground(accent).Bold(true),
		SyntaxString:      lipgloss.NewStyle().Foreground(lipgloss.Color("#6EF17E")),
		SyntaxNumber:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB61E")),
		SyntaxFunction:    lipgloss.NewStyle().Foreground(teal),
		SyntaxType:        lipgloss.NewStyle().Foreground(gold),
		SyntaxConstant:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8B39")),
		SyntaxVariable:    lipgloss.NewStyle().Foreground(lipgloss.Color("#E6E1FF")),
		SyntaxOperator:    lipgloss.NewStyle().Foreground(lipgloss.Color("#C2C0D9")),
		SyntaxPunctuation: lipgloss.NewStyle().Foreground(lipgloss.Color("#A6A1BB")),

		Swatches: []SwatchStyle{
			{Fill: lipgloss.Color("#7D56F4"), Label: lipgloss.Color("#F6E3FF")},
			{Fill: lipgloss.Color("#15AABF"), Label: lipgloss.Color("#D6F7FF")},
			{Fill: lipgloss.Color("#33C481"), Label: lipgloss.Color("#D6F9E8")},
			{Fill: lipgloss.Color("#FFB61E"), Label: lipgloss.Color("#FFF3D8")},
			{Fill: lipgloss.Color("#FF6E6E"), Label: lipgloss.Color("#FFE0D3")},
		},
	}
}

func (t Theme) Swatch(idx int) SwatchStyle {
	if len(t.Swatches) == 0 {
		return SwatchStyle{
			Fill:  lipgloss.Color("#3B355D"),
			Label: lipgloss.Color("#F5F2FF"),
		}
	}
	return t.Swatches[idx%len(t.Swatches)]
}
