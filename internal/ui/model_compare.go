package ui

import (
	"fmt"
	"strings"

	udiff "github.com/aymanbagabas/go-udiff"
	"github.com/charmbracelet/bubbles/viewport"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/unkn0wn-root/tinct/internal/theme"
)

// openCompareOverlay diffs the highlighted theme's spec against the
// active one's, both rendered as TOML.
func (m *Model) openCompareOverlay() {
	active, okActive := m.activeDefinition()
	highlighted, okHighlighted := m.highlightedDefinition()
	if !okActive || !okHighlighted {
		m.setStatusMessage(statusMsg{text: "nothing to compare", level: statusWarn})
		return
	}
	if active.Key == highlighted.Key {
		m.setStatusMessage(statusMsg{
			text:  "highlighted theme is already active",
			level: statusInfo,
		})
		return
	}

	left, err := marshalSpecForCompare(active)
	if err != nil {
		m.setStatusMessage(statusMsg{
			text:  fmt.Sprintf("compare failed: %v", err),
			level: statusWarn,
		})
		return
	}
	right, err := marshalSpecForCompare(highlighted)
	if err != nil {
		m.setStatusMessage(statusMsg{
			text:  fmt.Sprintf("compare failed: %v", err),
			level: statusWarn,
		})
		return
	}

	diff := udiff.Unified(compareLabel(active), compareLabel(highlighted), left, right)
	if strings.TrimSpace(diff) == "" {
		m.setStatusMessage(statusMsg{text: "themes have identical specs", level: statusInfo})
		return
	}

	width, height := m.compareViewportSize()
	vp := viewport.New(width, height)
	vp.SetContent(m.renderDiff(diff))
	m.compareViewport = &vp
	m.compareTitle = fmt.Sprintf("%s → %s", compareLabel(active), compareLabel(highlighted))
	m.showCompare = true
}

func (m *Model) closeCompareOverlay() {
	m.showCompare = false
	m.compareViewport = nil
	m.compareTitle = ""
}

func marshalSpecForCompare(def theme.Definition) (string, error) {
	data, err := toml.Marshal(def.Spec)
	if err != nil {
		return "", fmt.Errorf("marshal %s spec: %w", def.Key, err)
	}
	return string(data), nil
}

func compareLabel(def theme.Definition) string {
	if strings.TrimSpace(def.DisplayName) != "" {
		return def.DisplayName
	}
	return humaniseKey(def.Key)
}

func (m *Model) compareViewportSize() (int, int) {
	width := m.width - 8
	if width < 20 {
		width = 20
	}
	height := m.height - 8
	if height < 5 {
		height = 5
	}
	return width, height
}

func (m *Model) renderDiff(diff string) string {
	lines := strings.Split(diff, "\n")
	rendered := make([]string, len(lines))
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+"):
			rendered[i] = m.theme.Success.Render(line)
		case strings.HasPrefix(line, "-"):
			rendered[i] = m.theme.Error.Render(line)
		case strings.HasPrefix(line, "@@"):
			rendered[i] = m.theme.Warning.Render(line)
		default:
			rendered[i] = line
		}
	}
	return strings.Join(rendered, "\n")
}
