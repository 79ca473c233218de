package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/unkn0wn-root/tinct/internal/bindings"
	"github.com/unkn0wn-root/tinct/internal/config"
	"github.com/unkn0wn-root/tinct/internal/preview"
)

const statusBarLeftMaxRatio = 0.7

// applyLayout distributes the frame between the theme list, the detail
// panel and the preview pane per the persisted layout ratios.
func (m *Model) applyLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	contentHeight := m.paneContentHeight()
	listWidth := m.listWidthCells()
	m.themeList.SetSize(maxInt(listWidth-4, 10), maxInt(contentHeight-2, 3))
	m.historyList.SetSize(maxInt(m.width-10, 20), maxInt(m.height-10, 5))
	m.importInput.Width = maxInt(m.width-14, 20)
	if m.compareViewport != nil {
		w, h := m.compareViewportSize()
		m.compareViewport.Width = w
		m.compareViewport.Height = h
	}
}

// paneContentHeight leaves room for the header and the status bar.
func (m *Model) paneContentHeight() int {
	return maxInt(m.height-4, 6)
}

func (m *Model) listWidthCells() int {
	ratio := m.settings.Layout.ListWidth
	if ratio <= 0 {
		ratio = config.LayoutListWidthDefault
	}
	width := int(float64(m.width) * ratio)
	return maxInt(width, minListWidthCells)
}

func (m Model) View() string {
	if !m.ready {
		return m.renderWithinAppFrame("Initialising...")
	}
	if m.showErrorModal {
		return m.renderWithinAppFrame(m.renderErrorModal())
	}
	if m.showImportModal {
		return m.renderWithinAppFrame(m.renderImportModal())
	}
	if m.showHistory {
		return m.renderWithinAppFrame(m.renderHistoryOverlay())
	}
	if m.showCompare {
		return m.renderWithinAppFrame(m.renderCompareOverlay())
	}
	if m.showHelp {
		return m.renderWithinAppFrame(m.renderHelpOverlay())
	}

	contentHeight := m.paneContentHeight()
	listPane := m.renderListPane(contentHeight)
	listWidth := lipgloss.Width(listPane)

	rightWidth := maxInt(m.width-listWidth, 24)
	var rightColumn string
	if m.settings.Layout.PreviewHidden {
		rightColumn = m.renderDetailPane(rightWidth, contentHeight)
	} else {
		detailHeight := int(float64(contentHeight) * m.settings.Layout.DetailSplit)
		detailHeight = maxInt(detailHeight, minDetailRows)
		previewHeight := maxInt(contentHeight-detailHeight, 4)
		rightColumn = lipgloss.JoinVertical(
			lipgloss.Left,
			m.renderDetailPane(rightWidth, detailHeight),
			m.renderPreviewPane(rightWidth, previewHeight),
		)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, listPane, rightColumn)
	base := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderStatusBar(),
	)
	return m.renderWithinAppFrame(base)
}

func (m Model) renderWithinAppFrame(content string) string {
	innerWidth := maxInt(m.width, lipgloss.Width(content))
	innerHeight := maxInt(m.height, lipgloss.Height(content))

	if innerWidth > 0 && (innerWidth > lipgloss.Width(content) || innerHeight > lipgloss.Height(content)) {
		content = lipgloss.Place(
			innerWidth,
			innerHeight,
			lipgloss.Top,
			lipgloss.Left,
			content,
			lipgloss.WithWhitespaceChars(" "),
		)
	}

	framed := m.theme.AppFrame.Render(content)
	frameWidth := maxInt(m.frameWidth, lipgloss.Width(framed))
	frameHeight := maxInt(m.frameHeight, lipgloss.Height(framed))
	if frameWidth > lipgloss.Width(framed) || frameHeight > lipgloss.Height(framed) {
		framed = lipgloss.Place(
			frameWidth,
			frameHeight,
			lipgloss.Top,
			lipgloss.Left,
			framed,
			lipgloss.WithWhitespaceChars(" "),
		)
	}
	return framed
}

func (m Model) renderHeader() string {
	syncLabel := "off"
	if m.systemSyncEnabled() {
		syncLabel = fmt.Sprintf("on (%s)", m.currentScheme())
	}
	active := "∅"
	if def, ok := m.activeDefinition(); ok {
		active = compareLabel(def)
	}

	type segment struct {
		label string
		value string
	}
	segmentsData := []segment{
		{label: "Active", value: active},
		{label: "Themes", value: fmt.Sprintf("%d", m.catalog.Len())},
		{label: "System sync", value: syncLabel},
	}

	segments := make([]string, 0, len(segmentsData)+1)
	segments = append(segments, m.theme.HeaderBrand.Render("TINCT"))
	for _, seg := range segmentsData {
		segments = append(segments, lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.theme.HeaderTitle.Render(seg.label+" "),
			m.theme.HeaderValue.Render(seg.value),
		))
	}

	separator := m.theme.HeaderSeparator.Render(" │ ")
	joined := segments[0]
	for i := 1; i < len(segments); i++ {
		joined = lipgloss.JoinHorizontal(lipgloss.Top, joined, separator, segments[i])
	}
	width := maxInt(m.width, lipgloss.Width(joined))
	return m.theme.Header.Width(width).Render(joined)
}

func (m Model) renderListPane(height int) string {
	style := m.theme.ListBorder
	width := m.listWidthCells()
	if m.systemSyncEnabled() {
		style = style.Faint(true)
	} else {
		style = style.BorderForeground(m.theme.PaneBorderFocusList)
	}
	content := m.themeList.View()
	if !m.catalogLoaded {
		content = centerBox(maxInt(width-4, 10), maxInt(height-2, 3), m.theme.HeaderValue.Render("Loading themes..."))
	}
	content = clampPane(content, maxInt(width-4, 10), maxInt(height-2, 3))
	return style.Width(width).Height(height).Render(content)
}

// renderDetailPane is the informational panel: file path, folder and
// the actions that operate on the highlighted theme.
func (m Model) renderDetailPane(width, height int) string {
	style := m.theme.DetailBorder
	disabled := m.systemSyncEnabled()
	if disabled {
		style = style.Faint(true)
	}

	label := m.theme.FieldLabel
	value := m.theme.FieldValue
	if disabled {
		label = m.theme.FieldDisabled
		value = m.theme.FieldDisabled
	}

	checkbox := m.theme.CheckboxOff.Render("[ ]")
	if disabled {
		checkbox = m.theme.CheckboxOn.Render("[x]")
	}
	lines := []string{
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			checkbox,
			m.theme.FieldValue.Render(" Sync with system theme "),
			m.theme.CommandBarHint.Render("(s)"),
		),
		"",
	}

	if def, ok := m.highlightedDefinition(); ok {
		path := def.Path
		if path == "" {
			path = "builtin"
		}
		fields := []struct {
			name string
			val  string
		}{
			{"Name", compareLabel(def)},
			{"Key", def.Key},
			{"Variant", string(def.Variant)},
			{"Source", string(def.Source)},
			{"File", path},
			{"Folder", m.primaryThemeDir()},
		}
		if author := strings.TrimSpace(def.Metadata.Author); author != "" {
			fields = append(fields, struct {
				name string
				val  string
			}{"Author", author})
		}
		for _, f := range fields {
			lines = append(lines, lipgloss.JoinHorizontal(
				lipgloss.Top,
				label.Render(fmt.Sprintf("%-8s", f.name)),
				value.Render(truncateToWidth(f.val, maxInt(width-14, 8))),
			))
		}
	} else {
		lines = append(lines, value.Render("No theme selected"))
	}

	lines = append(lines, "")
	actions := "d duplicate  o open folder  i import"
	if disabled {
		lines = append(lines, m.theme.ControlDisabled.Render(actions))
	} else {
		lines = append(lines, m.theme.CommandBarHint.Render(actions))
	}

	content := clampPane(
		lipgloss.JoinVertical(lipgloss.Left, lines...),
		maxInt(width-4, 10),
		maxInt(height-2, 3),
	)
	return style.Width(width).Height(height).Render(content)
}

// renderPreviewPane previews the highlighted theme, not the active one,
// so browsing shows what Enter would apply.
func (m Model) renderPreviewPane(width, height int) string {
	style := m.theme.PreviewBorder.BorderForeground(m.theme.PaneBorderFocusPreview)
	if m.systemSyncEnabled() {
		style = m.theme.PreviewBorder.Faint(true)
	}
	innerWidth := maxInt(width-4, 10)
	innerHeight := maxInt(height-2, 3)

	var content string
	if def, ok := m.highlightedDefinition(); ok {
		swatches := preview.Swatches(def.Theme, innerWidth)
		codeHeight := innerHeight - lipgloss.Height(swatches) - 1
		code := preview.Code(def.Theme, innerWidth, codeHeight)
		content = lipgloss.JoinVertical(lipgloss.Left, swatches, "", code)
	} else {
		content = centerBox(innerWidth, innerHeight, m.theme.HeaderValue.Render("No preview"))
	}
	content = clampPane(content, innerWidth, innerHeight)
	return style.Width(width).Height(height).Render(content)
}

func (m Model) renderStatusBar() string {
	hint := "enter apply  / filter  s sync  d duplicate  o folder  i import  h history  c compare  ? help"
	statusText := strings.TrimSpace(m.statusMessage.text)

	var statusStyled string
	switch m.statusMessage.level {
	case statusWarn:
		statusStyled = m.theme.Warning.Render(statusText)
	case statusError:
		statusStyled = m.theme.Error.Render(statusText)
	case statusSuccess:
		statusStyled = m.theme.Success.Render(statusText)
	default:
		statusStyled = m.theme.StatusBarValue.Render(statusText)
	}

	lineWidth := maxInt(m.width-2, 1)
	maxStatus := int(float64(lineWidth) * statusBarLeftMaxRatio)
	if lipgloss.Width(statusStyled) > maxStatus {
		statusStyled = truncateToWidth(statusStyled, maxStatus)
	}
	gap := lineWidth - lipgloss.Width(statusStyled) - lipgloss.Width(hint)
	if gap < 1 {
		hint = truncateToWidth(hint, maxInt(lineWidth-lipgloss.Width(statusStyled)-1, 0))
		gap = 1
	}
	line := statusStyled + strings.Repeat(" ", gap) + m.theme.CommandBarHint.Render(hint)
	return m.theme.StatusBar.Width(m.width).Render(truncateToWidth(line, lineWidth))
}

func (m Model) renderErrorModal() string {
	body := lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.PaneTitle.Render("Error"),
		"",
		m.theme.Error.Render(wrapToWidth(m.errorModalMessage, maxInt(m.width-12, 20))),
		"",
		m.theme.CommandBarHint.Render("esc/enter close"),
	)
	return centerBox(m.width, m.height, m.theme.ModalBorder.Padding(1, 2).Render(body))
}

func (m Model) renderImportModal() string {
	title := "Import theme"
	status := "enter import  esc cancel"
	if m.importBusy {
		status = "importing..."
	}
	body := lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.PaneTitle.Render(title),
		"",
		m.theme.FieldValue.Render("Monaco .json/.js or base16 .yaml, local path or URL:"),
		m.importInput.View(),
		"",
		m.theme.CommandBarHint.Render(status),
	)
	return centerBox(m.width, m.height, m.theme.ModalBorder.Padding(1, 2).Render(body))
}

func (m Model) renderHistoryOverlay() string {
	body := lipgloss.JoinVertical(
		lipgloss.Left,
		m.historyList.View(),
		"",
		m.theme.CommandBarHint.Render("enter re-apply  ctrl+x clear  esc close"),
	)
	return centerBox(m.width, m.height, m.theme.ModalBorder.Padding(1, 2).Render(body))
}

func (m Model) renderCompareOverlay() string {
	content := ""
	if m.compareViewport != nil {
		content = m.compareViewport.View()
	}
	body := lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.PaneTitle.Render("Compare "+m.compareTitle),
		"",
		content,
		"",
		m.theme.CommandBarHint.Render("j/k scroll  esc close"),
	)
	return centerBox(m.width, m.height, m.theme.ModalBorder.Padding(1, 2).Render(body))
}

func (m Model) renderHelpOverlay() string {
	rows := []struct {
		action bindings.ActionID
		desc   string
	}{
		{bindings.ActionApplyTheme, "apply highlighted theme"},
		{bindings.ActionToggleSystemSync, "toggle system theme sync"},
		{bindings.ActionDuplicateTheme, "duplicate the active theme"},
		{bindings.ActionOpenThemeFolder, "open the themes folder"},
		{bindings.ActionImportTheme, "import a Monaco/base16 theme"},
		{bindings.ActionRefreshThemes, "reload the theme list"},
		{bindings.ActionToggleHistory, "activation history"},
		{bindings.ActionToggleCompare, "compare highlighted vs active"},
		{bindings.ActionCopyThemePath, "copy theme path"},
		{bindings.ActionCheckUpdate, "check for updates"},
		{bindings.ActionQuit, "quit"},
	}
	lines := []string{m.theme.PaneTitle.Render("Key bindings"), ""}
	for _, row := range rows {
		keys := make([]string, 0, 2)
		for _, b := range m.bindingsMap.Bindings(row.action) {
			keys = append(keys, strings.Join(b.Steps, " "))
		}
		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.theme.StatusBarKey.Render(fmt.Sprintf("%-14s", strings.Join(keys, ", "))),
			m.theme.StatusBarValue.Render(row.desc),
		))
	}
	lines = append(lines, "", m.theme.CommandBarHint.Render("any key closes"))
	body := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return centerBox(m.width, m.height, m.theme.ModalBorder.Padding(1, 2).Render(body))
}

func centerBox(width, height int, content string) string {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
