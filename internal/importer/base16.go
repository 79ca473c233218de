package importer

import (
	"strconv"
	"strings"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/unkn0wn-root/tinct/internal/errdef"
	"github.com/unkn0wn-root/tinct/internal/theme"
)

// base16Scheme is the classic sixteen-colour scheme file. base00 is the
// background, base05 the default foreground, base08..base0F accents.
type base16Scheme struct {
	Scheme string `yaml:"scheme"`
	Author string `yaml:"author"`
	Base00 string `yaml:"base00"`
	Base01 string `yaml:"base01"`
	Base02 string `yaml:"base02"`
	Base03 string `yaml:"base03"`
	Base04 string `yaml:"base04"`
	Base05 string `yaml:"base05"`
	Base06 string `yaml:"base06"`
	Base07 string `yaml:"base07"`
	Base08 string `yaml:"base08"`
	Base09 string `yaml:"base09"`
	Base0A string `yaml:"base0A"`
	Base0B string `yaml:"base0B"`
	Base0C string `yaml:"base0C"`
	Base0D string `yaml:"base0D"`
	Base0E string `yaml:"base0E"`
	Base0F string `yaml:"base0F"`
}

func decodeBase16(data []byte) (base16Scheme, error) {
	var scheme base16Scheme
	if err := yamlv3.Unmarshal(data, &scheme); err != nil {
		return base16Scheme{}, errdef.Wrap(errdef.CodeImport, err, "parse base16 scheme")
	}
	if strings.TrimSpace(scheme.Base00) == "" || strings.TrimSpace(scheme.Base05) == "" {
		return base16Scheme{}, errdef.New(errdef.CodeImport, "source does not look like a base16 scheme")
	}
	return scheme, nil
}

func specFromBase16(scheme base16Scheme, name string) (theme.ThemeSpec, error) {
	background, err := hexPtr("base00", scheme.Base00)
	if err != nil {
		return theme.ThemeSpec{}, err
	}
	dark, err := isDarkHex(*background)
	if err != nil {
		return theme.ThemeSpec{}, err
	}
	inherit := "light"
	if dark {
		inherit = "dark"
	}

	spec := theme.ThemeSpec{
		Inherit: inherit,
		Metadata: &theme.Metadata{
			Name:        name,
			Author:      strings.TrimSpace(scheme.Author),
			Description: "Imported from base16",
		},
	}

	editor := &theme.EditorSpec{Background: background}
	if ptr, err := hexPtr("base05", scheme.Base05); err != nil {
		return theme.ThemeSpec{}, err
	} else if ptr != nil {
		editor.Foreground = ptr
	}
	if ptr, err := hexPtr("base04", scheme.Base04); err != nil {
		return theme.ThemeSpec{}, err
	} else if ptr != nil {
		editor.LineNumber = &theme.StyleSpec{Foreground: ptr}
	}
	if ptr, err := hexPtr("base01", scheme.Base01); err != nil {
		return theme.ThemeSpec{}, err
	} else if ptr != nil {
		editor.CursorLine = &theme.StyleSpec{Background: ptr}
	}
	if ptr, err := hexPtr("base02", scheme.Base02); err != nil {
		return theme.ThemeSpec{}, err
	} else if ptr != nil {
		editor.Selection = &theme.StyleSpec{Background: ptr}
	}
	spec.Editor = editor

	syntax := &theme.SyntaxSpec{}
	syntaxUsed := false
	accents := []struct {
		field string
		value string
		slot  **theme.StyleSpec
	}{
		{"base03", scheme.Base03, &syntax.Comment},
		{"base0E", scheme.Base0E, &syntax.Keyword},
		{"base0B", scheme.Base0B, &syntax.String},
		{"base09", scheme.Base09, &syntax.Number},
		{"base0D", scheme.Base0D, &syntax.Function},
		{"base0A", scheme.Base0A, &syntax.Type},
		{"base09", scheme.Base09, &syntax.Constant},
		{"base08", scheme.Base08, &syntax.Variable},
		{"base0C", scheme.Base0C, &syntax.Operator},
		{"base04", scheme.Base04, &syntax.Punctuation},
	}
	for _, accent := range accents {
		ptr, err := hexPtr(accent.field, accent.value)
		if err != nil {
			return theme.ThemeSpec{}, err
		}
		if ptr == nil {
			continue
		}
		*accent.slot = &theme.StyleSpec{Foreground: ptr}
		syntaxUsed = true
	}
	if syntaxUsed {
		spec.Syntax = syntax
	}

	swatchSources := []string{scheme.Base08, scheme.Base09, scheme.Base0B, scheme.Base0D, scheme.Base0E}
	var swatches []theme.SwatchSpec
	for _, source := range swatchSources {
		ptr, err := hexPtr("swatches", source)
		if err != nil {
			return theme.ThemeSpec{}, err
		}
		if ptr == nil {
			continue
		}
		swatches = append(swatches, theme.SwatchSpec{Fill: ptr, Label: background})
	}
	spec.Swatches = swatches

	return spec, nil
}

// isDarkHex reports whether a #rrggbb colour reads as dark using the
// rec. 709 luma weights.
func isDarkHex(hex string) (bool, error) {
	trimmed := strings.TrimPrefix(hex, "#")
	if len(trimmed) < 6 {
		return false, errdef.New(errdef.CodeImport, "invalid colour %q", hex)
	}
	r, err := strconv.ParseUint(trimmed[0:2], 16, 16)
	if err != nil {
		return false, errdef.Wrap(errdef.CodeImport, err, "invalid colour %q", hex)
	}
	g, err := strconv.ParseUint(trimmed[2:4], 16, 16)
	if err != nil {
		return false, errdef.Wrap(errdef.CodeImport, err, "invalid colour %q", hex)
	}
	b, err := strconv.ParseUint(trimmed[4:6], 16, 16)
	if err != nil {
		return false, errdef.Wrap(errdef.CodeImport, err, "invalid colour %q", hex)
	}
	luma := 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)
	return luma < 128, nil
}
