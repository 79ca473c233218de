package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unkn0wn-root/tinct/internal/history"
)

const historyPageSize = 50

type historyItem struct {
	entry history.Entry
}

func (h historyItem) Title() string {
	name := strings.TrimSpace(h.entry.DisplayName)
	if name == "" {
		name = humaniseKey(h.entry.ThemeKey)
	}
	return name
}

func (h historyItem) Description() string {
	return fmt.Sprintf(
		"%s  |  %s",
		h.entry.ActivatedAt.Local().Format("2006-01-02 15:04"),
		h.entry.Source,
	)
}

func (h historyItem) FilterValue() string {
	return h.entry.DisplayName
}

func (m *Model) toggleHistoryOverlay() tea.Cmd {
	if m.showHistory {
		m.showHistory = false
		return nil
	}
	if m.historyStore == nil {
		m.setStatusMessage(statusMsg{text: "history is unavailable", level: statusWarn})
		return nil
	}
	m.showHistory = true
	return m.loadHistoryCmd()
}

func (m *Model) loadHistoryCmd() tea.Cmd {
	store := m.historyStore
	return func() tea.Msg {
		entries, err := store.Recent(historyPageSize)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

func (m *Model) handleHistoryLoaded(msg historyLoadedMsg) {
	if msg.err != nil {
		m.showHistory = false
		m.setStatusMessage(statusMsg{
			text:  fmt.Sprintf("history load error: %v", msg.err),
			level: statusWarn,
		})
		return
	}
	m.historyEntries = msg.entries
	items := make([]list.Item, 0, len(msg.entries))
	for _, entry := range msg.entries {
		items = append(items, historyItem{entry: entry})
	}
	m.historyList.SetItems(items)
	if len(items) > 0 {
		m.historyList.Select(0)
	}
}

// applyHistorySelection re-activates the highlighted entry when its
// theme still exists in the catalog.
func (m *Model) applyHistorySelection() tea.Cmd {
	item, ok := m.historyList.SelectedItem().(historyItem)
	if !ok {
		m.showHistory = false
		return nil
	}
	m.showHistory = false
	def, ok := m.catalog.Get(item.entry.ThemeKey)
	if !ok {
		m.setStatusMessage(statusMsg{
			text:  fmt.Sprintf("theme %q is no longer available", item.entry.ThemeKey),
			level: statusWarn,
		})
		return nil
	}
	prevKey := m.state.Snapshot().ThemeKey
	if strings.EqualFold(def.Key, prevKey) {
		return nil
	}
	m.selected = &def
	m.activeThemeKey = def.Key
	m.applyActiveTheme()
	m.refreshThemeItems()
	m.state.SetTheme(def.Key)
	return m.saveThemeCmd(def.Key, prevKey, history.SourceHistory)
}

func (m *Model) clearHistory() tea.Cmd {
	if m.historyStore == nil {
		return nil
	}
	store := m.historyStore
	return func() tea.Msg {
		if err := store.Clear(); err != nil {
			return statusMsg{
				text:  fmt.Sprintf("history clear error: %v", err),
				level: statusWarn,
			}
		}
		return historyLoadedMsg{}
	}
}
