package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unkn0wn-root/tinct/internal/importer"
	"github.com/unkn0wn-root/tinct/internal/telemetry"
)

const importTimeout = 30 * time.Second

func (m *Model) openImportModal() {
	m.showImportModal = true
	m.importJustOpened = true
	m.importBusy = false
	m.importInput.SetValue("")
	m.importInput.Focus()
	m.state.SetImportDialogVisible(true)
}

// closeImportModalCmd posts the dialog's completion signal. The theme
// list refreshes when it lands, whether or not anything was imported.
func (m *Model) closeImportModalCmd(imported bool, result importer.Result, err error) tea.Cmd {
	m.showImportModal = false
	m.importBusy = false
	m.importInput.Blur()
	return func() tea.Msg {
		return importDialogClosedMsg{imported: imported, result: result, err: err}
	}
}

func (m *Model) submitImport() tea.Cmd {
	source := strings.TrimSpace(m.importInput.Value())
	if source == "" {
		return m.closeImportModalCmd(false, importer.Result{}, nil)
	}
	m.importBusy = true
	dir := m.primaryThemeDir()
	instrumenter := m.telemetry
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()
		ctx, span := instrumenter.Start(ctx, telemetry.OpStart{
			Op:     telemetry.OpImport,
			Source: source,
		})
		result, err := importer.Import(ctx, source, dir)
		span.End(telemetry.OpResult{Err: err})
		return importDialogClosedMsg{imported: err == nil, result: result, err: err}
	}
}

func (m *Model) handleImportDialogClosed(msg importDialogClosedMsg) tea.Cmd {
	m.showImportModal = false
	m.importBusy = false
	m.importInput.Blur()
	m.state.SetImportDialogVisible(false)

	if msg.err != nil {
		m.setStatusMessage(statusMsg{
			text:  fmt.Sprintf("import failed: %v", msg.err),
			level: statusWarn,
		})
		return m.refreshThemesCmd("")
	}
	announce := ""
	if msg.imported {
		announce = fmt.Sprintf("Imported %s", msg.result.DisplayName)
	}
	return m.refreshThemesCmd(announce)
}
