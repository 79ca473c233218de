package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unkn0wn-root/tinct/internal/bindings"
	"github.com/unkn0wn-root/tinct/internal/importer"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadThemesCmd(), m.nextEventCmd()}
	if m.updateEnabled {
		cmds = append(cmds, newUpdateTickCmd(0))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.frameWidth = typed.Width
		m.frameHeight = typed.Height
		m.width = maxInt(typed.Width-2, 0)
		m.height = maxInt(typed.Height-2, 0)
		if !m.ready {
			m.ready = true
		}
		m.applyLayout()
	case statusMsg:
		m.setStatusMessage(typed)
	case themesLoadedMsg:
		if cmd := m.handleThemesLoaded(typed); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case themesRefreshedMsg:
		if cmd := m.handleThemesRefreshed(typed); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case themeSavedMsg:
		if cmd := m.handleThemeSaved(typed); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case stateChangedMsg:
		if cmd := m.handleStateChange(typed.change); cmd != nil {
			cmds = append(cmds, cmd)
		}
		cmds = append(cmds, m.nextEventCmd())
	case schemeChangedMsg:
		if cmd := m.handleSchemeChange(typed.scheme); cmd != nil {
			cmds = append(cmds, cmd)
		}
		cmds = append(cmds, m.nextEventCmd())
	case themesDirChangedMsg:
		if cmd := m.handleThemesDirChanged(typed); cmd != nil {
			cmds = append(cmds, cmd)
		}
		cmds = append(cmds, m.nextEventCmd())
	case importDialogClosedMsg:
		if cmd := m.handleImportDialogClosed(typed); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case historyLoadedMsg:
		m.handleHistoryLoaded(typed)
	case updateTickMsg:
		if cmd := m.enqueueUpdateCheck(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case updateCheckMsg:
		if cmd := m.handleUpdateCheck(typed); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	if m.showErrorModal {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc", "enter":
				m.closeErrorModal()
				return m, tea.Batch(cmds...)
			case "ctrl+c":
				m.teardown()
				return m, tea.Quit
			}
		}
		return m, tea.Batch(cmds...)
	}

	if m.showImportModal {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			if m.importJustOpened {
				m.importJustOpened = false
				if keyMsg.String() == "i" {
					return m, tea.Batch(cmds...)
				}
			}
			switch keyMsg.String() {
			case "esc":
				cmds = append(cmds, m.closeImportModalCmd(false, importer.Result{}, nil))
				return m, tea.Batch(cmds...)
			case "ctrl+c":
				m.teardown()
				return m, tea.Quit
			case "enter":
				if !m.importBusy {
					cmds = append(cmds, m.submitImport())
				}
				return m, tea.Batch(cmds...)
			}
		}
		var inputCmd tea.Cmd
		m.importInput, inputCmd = m.importInput.Update(msg)
		cmds = append(cmds, inputCmd)
		return m, tea.Batch(cmds...)
	}

	if m.showHistory {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc", "h":
				m.showHistory = false
				return m, tea.Batch(cmds...)
			case "ctrl+c":
				m.teardown()
				return m, tea.Quit
			case "enter":
				if cmd := m.applyHistorySelection(); cmd != nil {
					cmds = append(cmds, cmd)
				}
				return m, tea.Batch(cmds...)
			case "ctrl+x":
				if cmd := m.clearHistory(); cmd != nil {
					cmds = append(cmds, cmd)
				}
				return m, tea.Batch(cmds...)
			}
		}
		var histCmd tea.Cmd
		m.historyList, histCmd = m.historyList.Update(msg)
		cmds = append(cmds, histCmd)
		return m, tea.Batch(cmds...)
	}

	if m.showCompare {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			vp := m.compareViewport
			switch keyMsg.String() {
			case "esc", "c", "enter":
				m.closeCompareOverlay()
				return m, tea.Batch(cmds...)
			case "ctrl+c":
				m.teardown()
				return m, tea.Quit
			case "down", "j":
				if vp != nil {
					vp.ScrollDown(1)
				}
				return m, tea.Batch(cmds...)
			case "up", "k":
				if vp != nil {
					vp.ScrollUp(1)
				}
				return m, tea.Batch(cmds...)
			case "pgdown", "ctrl+f":
				if vp != nil {
					vp.ScrollDown(vp.Height)
				}
				return m, tea.Batch(cmds...)
			case "pgup", "ctrl+b":
				if vp != nil {
					vp.ScrollUp(vp.Height)
				}
				return m, tea.Batch(cmds...)
			}
		}
		return m, tea.Batch(cmds...)
	}

	if m.showHelp {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "ctrl+c":
				m.teardown()
				return m, tea.Quit
			default:
				m.showHelp = false
			}
		}
		return m, tea.Batch(cmds...)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.themeList.FilterState() == list.Filtering {
			// The filter input swallows everything else.
			if keyMsg.String() == "ctrl+c" {
				m.teardown()
				return m, tea.Quit
			}
			var listCmd tea.Cmd
			m.themeList, listCmd = m.themeList.Update(msg)
			cmds = append(cmds, listCmd)
			return m, tea.Batch(cmds...)
		}
		handled, cmd, quit := m.handleKey(keyMsg)
		if quit {
			m.teardown()
			return m, tea.Quit
		}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if handled {
			return m, tea.Batch(cmds...)
		}
	}

	if _, isKey := msg.(tea.KeyMsg); isKey || isWindowSize(msg) {
		if !isKey || !m.systemSyncEnabled() {
			var listCmd tea.Cmd
			m.themeList, listCmd = m.themeList.Update(msg)
			cmds = append(cmds, listCmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func isWindowSize(msg tea.Msg) bool {
	_, ok := msg.(tea.WindowSizeMsg)
	return ok
}

// handleKey resolves a key through the bindings map, chords included.
// The boolean trio reports: consumed, follow-up command, quit.
func (m *Model) handleKey(msg tea.KeyMsg) (bool, tea.Cmd, bool) {
	key := bindings.NormalizeKeyString(msg.String())

	if m.hasPendingChord {
		prefix := m.pendingChord
		m.hasPendingChord = false
		m.pendingChord = ""
		if binding, ok := m.bindingsMap.ResolveChord(prefix, key); ok {
			return m.dispatchAction(binding.Action)
		}
		return true, nil, false
	}

	if binding, ok := m.bindingsMap.MatchSingle(key); ok {
		return m.dispatchAction(binding.Action)
	}
	if m.bindingsMap.HasChordPrefix(key) {
		m.hasPendingChord = true
		m.pendingChord = key
		return true, nil, false
	}
	return false, nil, false
}

// dispatchAction runs a bound action. The dropdown and the info panel
// are inert while system sync drives the theme.
func (m *Model) dispatchAction(action bindings.ActionID) (bool, tea.Cmd, bool) {
	switch action {
	case bindings.ActionQuit:
		return true, nil, true
	case bindings.ActionToggleSystemSync:
		return true, m.toggleSystemSync(), false
	case bindings.ActionToggleHelp:
		m.showHelp = true
		return true, nil, false
	case bindings.ActionCheckUpdate:
		return true, m.enqueueUpdateCheck(), false
	case bindings.ActionToggleHistory:
		return true, m.toggleHistoryOverlay(), false
	}

	if m.systemSyncEnabled() {
		m.setStatusMessage(statusMsg{
			text:  "system theme sync is on; press s to choose themes manually",
			level: statusInfo,
		})
		return true, nil, false
	}

	switch action {
	case bindings.ActionApplyTheme:
		return true, m.applyThemeSelection(), false
	case bindings.ActionDuplicateTheme:
		cmd, _ := m.duplicateCurrentTheme()
		return true, cmd, false
	case bindings.ActionOpenThemeFolder:
		m.openThemesFolder()
		return true, nil, false
	case bindings.ActionImportTheme:
		m.openImportModal()
		return true, nil, false
	case bindings.ActionRefreshThemes:
		return true, m.refreshThemesCmd("Themes reloaded"), false
	case bindings.ActionToggleCompare:
		m.openCompareOverlay()
		return true, nil, false
	case bindings.ActionCopyThemePath:
		m.copyThemePath()
		return true, nil, false
	}
	return false, nil, false
}

func (m *Model) handleUpdateCheck(msg updateCheckMsg) tea.Cmd {
	m.updateBusy = false
	var next tea.Cmd
	if m.updateEnabled {
		next = newUpdateTickCmd(updateInterval)
	}
	if msg.err != nil {
		errText := msg.err.Error()
		if errText != "" {
			m.setStatusMessage(statusMsg{
				text:  fmt.Sprintf("update check failed: %s", errText),
				level: statusWarn,
			})
		}
		return next
	}
	if msg.res != nil {
		ver := strings.TrimSpace(msg.res.Info.Version)
		if ver != "" && ver != m.updateAnnounce {
			res := *msg.res
			m.updateInfo = &res
			m.updateAnnounce = ver
			m.setStatusMessage(statusMsg{
				text:  fmt.Sprintf("Update available: %s (run `tinct --update`)", ver),
				level: statusInfo,
			})
		}
	}
	return next
}

type updateTickMsg struct{}

const updateInterval = 6 * time.Hour

func newUpdateTickCmd(after time.Duration) tea.Cmd {
	if after <= 0 {
		return func() tea.Msg { return updateTickMsg{} }
	}
	return tea.Tick(after, func(time.Time) tea.Msg { return updateTickMsg{} })
}
