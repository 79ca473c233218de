package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unkn0wn-root/tinct/internal/config"
	"github.com/unkn0wn-root/tinct/internal/history"
	"github.com/unkn0wn-root/tinct/internal/platform"
	"github.com/unkn0wn-root/tinct/internal/telemetry"
	"github.com/unkn0wn-root/tinct/internal/theme"
)

const fallbackThemeKey = "dark"

// loadThemesCmd is the initial asynchronous catalog fetch.
func (m *Model) loadThemesCmd() tea.Cmd {
	dirs := m.themeDirs
	instrumenter := m.telemetry
	return func() tea.Msg {
		_, span := instrumenter.Start(context.Background(), telemetry.OpStart{Op: telemetry.OpCatalogLoad})
		catalog, err := theme.LoadCatalog(dirs)
		span.End(telemetry.OpResult{Err: err, Count: catalog.Len()})
		return themesLoadedMsg{catalog: catalog, err: err}
	}
}

func (m *Model) refreshThemesCmd(announce string) tea.Cmd {
	dirs := m.themeDirs
	return func() tea.Msg {
		catalog, err := theme.LoadCatalog(dirs)
		return themesRefreshedMsg{catalog: catalog, announce: announce, err: err}
	}
}

func (m *Model) handleThemesLoaded(msg themesLoadedMsg) tea.Cmd {
	m.catalog = msg.catalog
	m.catalogLoaded = true
	m.resolveSelection()
	m.applyActiveTheme()
	if msg.err != nil {
		// Surfaced once; the catalog keeps whatever loaded cleanly.
		m.setStatusMessage(statusMsg{
			text:  fmt.Sprintf("theme load error: %v", msg.err),
			level: statusError,
		})
		return nil
	}
	if m.state.Snapshot().UseSystemTheme {
		return m.syncToScheme(m.currentScheme())
	}
	return nil
}

func (m *Model) handleThemesRefreshed(msg themesRefreshedMsg) tea.Cmd {
	m.catalog = msg.catalog
	if msg.err != nil {
		m.setStatusMessage(statusMsg{
			text:  fmt.Sprintf("theme refresh error: %v", msg.err),
			level: statusError,
		})
	}

	var cmd tea.Cmd
	if _, ok := m.catalog.Get(m.activeThemeKey); !ok && m.activeThemeKey != "" {
		// The active theme's file disappeared from the folder.
		m.setStatusMessage(statusMsg{
			text:  fmt.Sprintf("theme %q removed; reverting to %s", m.activeThemeKey, humaniseKey(fallbackThemeKey)),
			level: statusWarn,
		})
		m.state.SetTheme(fallbackThemeKey)
		cmd = m.saveThemeCmd(fallbackThemeKey, m.activeThemeKey, history.SourceSystem)
	}

	m.resolveSelection()
	m.applyActiveTheme()
	if msg.err == nil && msg.announce != "" {
		m.setStatusMessage(statusMsg{text: msg.announce, level: statusInfo})
	}
	return cmd
}

// resolveSelection re-derives the selected descriptor from the catalog
// and the shared theme identifier: the matching entry, or the first one
// when nothing matches or no identifier is set.
func (m *Model) resolveSelection() {
	m.refreshThemeItems()

	key := strings.TrimSpace(m.state.Snapshot().ThemeKey)
	if key == "" {
		key = strings.TrimSpace(m.activeThemeKey)
	}
	defs := m.catalog.All()
	if len(defs) == 0 {
		m.selected = nil
		m.themeList.Select(-1)
		return
	}
	pick := defs[0]
	if key != "" {
		if def, ok := m.catalog.Get(key); ok {
			pick = def
		}
	}
	m.selected = &pick
	m.activeThemeKey = pick.Key
	for idx, item := range m.themeList.Items() {
		if entry, ok := item.(themeItem); ok && strings.EqualFold(entry.key, pick.Key) {
			m.themeList.Select(idx)
			return
		}
	}
	m.themeList.Select(0)
}

func (m *Model) refreshThemeItems() {
	items := makeThemeItems(m.catalog, m.activeThemeKey)
	m.themeList.SetItems(items)
}

// applyActiveTheme restyles the UI with the selected definition.
func (m *Model) applyActiveTheme() {
	if m.selected == nil {
		return
	}
	m.theme = m.selected.Theme
	m.applyThemeToLists()
}

func (m *Model) activeDefinition() (theme.Definition, bool) {
	return m.catalog.Get(m.activeThemeKey)
}

// highlightedDefinition resolves the list cursor, which may differ from
// the applied theme while the user browses.
func (m *Model) highlightedDefinition() (theme.Definition, bool) {
	item, ok := m.themeList.SelectedItem().(themeItem)
	if !ok {
		return theme.Definition{}, false
	}
	return m.catalog.Get(item.key)
}

// applyThemeSelection applies the list cursor: the local selection
// updates immediately and the persisted identifier follows. The write
// result reconciles through themeSavedMsg.
func (m *Model) applyThemeSelection() tea.Cmd {
	item, ok := m.themeList.SelectedItem().(themeItem)
	if !ok || item.key == "" {
		return nil
	}
	def, ok := m.catalog.Get(item.key)
	if !ok {
		m.setStatusMessage(statusMsg{
			text:  fmt.Sprintf("theme %q unavailable", item.key),
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
	return m.saveThemeCmd(def.Key, prevKey, history.SourceUser)
}

// saveThemeCmd persists the theme identifier and records the
// activation. Failure reverts the optimistic selection via the message.
func (m *Model) saveThemeCmd(key, prevKey string, source history.ActivationSource) tea.Cmd {
	settings := m.settings
	settings.Theme = key
	handle := m.settingsHandle
	store := m.historyStore
	instrumenter := m.telemetry
	def, _ := m.catalog.Get(key)
	return func() tea.Msg {
		_, span := instrumenter.Start(context.Background(), telemetry.OpStart{
			Op:       telemetry.OpApplyTheme,
			ThemeKey: key,
			Source:   string(source),
		})
		err := config.SaveSettings(settings, handle)
		span.End(telemetry.OpResult{Err: err})
		if err != nil {
			return themeSavedMsg{key: key, prevKey: prevKey, err: err}
		}
		if store != nil {
			_, _ = store.Record(history.Entry{
				ThemeKey:    key,
				DisplayName: def.DisplayName,
				Source:      source,
				ActivatedAt: time.Now(),
			})
		}
		return themeSavedMsg{key: key, prevKey: prevKey}
	}
}

func (m *Model) handleThemeSaved(msg themeSavedMsg) tea.Cmd {
	if msg.err == nil {
		m.settings.Theme = msg.key
		if def, ok := m.catalog.Get(msg.key); ok {
			label := def.DisplayName
			if strings.TrimSpace(label) == "" {
				label = humaniseKey(def.Key)
			}
			m.setStatusMessage(statusMsg{
				text:  fmt.Sprintf("Theme set to %s", label),
				level: statusSuccess,
			})
		}
		return nil
	}
	// Reconcile: the write failed, so the optimistic selection rolls
	// back to the persisted key.
	m.setStatusMessage(statusMsg{
		text:  fmt.Sprintf("theme save error: %v", msg.err),
		level: statusWarn,
	})
	m.state.SetTheme(msg.prevKey)
	m.activeThemeKey = msg.prevKey
	m.resolveSelection()
	m.applyActiveTheme()
	return nil
}

// recordActivationCmd logs an activation without touching settings;
// system-sync switches use it since the configured keys stay put.
func (m *Model) recordActivationCmd(def theme.Definition, source history.ActivationSource) tea.Cmd {
	store := m.historyStore
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		_, _ = store.Record(history.Entry{
			ThemeKey:    def.Key,
			DisplayName: def.DisplayName,
			Source:      source,
			ActivatedAt: time.Now(),
		})
		return nil
	}
}

// duplicateCurrentTheme writes a copy of the active theme into the
// themes folder. It reports failure instead of propagating it.
func (m *Model) duplicateCurrentTheme() (tea.Cmd, bool) {
	def, ok := m.activeDefinition()
	if !ok {
		m.setStatusMessage(statusMsg{text: "no active theme to duplicate", level: statusWarn})
		return nil, false
	}
	_, span := m.telemetry.Start(context.Background(), telemetry.OpStart{
		Op:       telemetry.OpDuplicate,
		ThemeKey: def.Key,
	})
	path, err := theme.Duplicate(def, m.primaryThemeDir())
	span.End(telemetry.OpResult{Err: err})
	if err != nil {
		m.setStatusMessage(statusMsg{
			text:  fmt.Sprintf("duplicate theme failed: %v", err),
			level: statusWarn,
		})
		return nil, false
	}
	announce := fmt.Sprintf("Duplicated %s to %s", def.DisplayName, filepath.Base(path))
	return m.refreshThemesCmd(announce), true
}

// openThemesFolder creates the folder if needed and reveals it in the
// OS file manager. Same failure contract as duplication.
func (m *Model) openThemesFolder() bool {
	if err := platform.OpenFolder(m.primaryThemeDir()); err != nil {
		m.setStatusMessage(statusMsg{
			text:  fmt.Sprintf("open themes folder failed: %v", err),
			level: statusWarn,
		})
		return false
	}
	m.setStatusMessage(statusMsg{text: "Opened themes folder", level: statusInfo})
	return true
}

func (m *Model) primaryThemeDir() string {
	if len(m.themeDirs) > 0 {
		return m.themeDirs[0]
	}
	return config.ThemeDir()
}

// toggleSystemSync flips the shared flag; the subscription reacts by
// syncing to the current OS scheme when it turns on.
func (m *Model) toggleSystemSync() tea.Cmd {
	enabled := !m.state.Snapshot().UseSystemTheme
	m.state.SetSystemSync(enabled)
	m.settings.UseSystemTheme = enabled
	settings := m.settings
	handle := m.settingsHandle
	return func() tea.Msg {
		if err := config.SaveSettings(settings, handle); err != nil {
			return statusMsg{
				text:  fmt.Sprintf("settings save error: %v", err),
				level: statusWarn,
			}
		}
		return nil
	}
}

func (m *Model) systemSyncEnabled() bool {
	return m.state.Snapshot().UseSystemTheme
}

func (m *Model) copyThemePath() {
	def, ok := m.highlightedDefinition()
	if !ok {
		m.setStatusMessage(statusMsg{text: "no theme selected", level: statusWarn})
		return
	}
	payload := def.Path
	if payload == "" {
		payload = def.Key
	}
	if err := clipboard.WriteAll(payload); err != nil {
		m.setStatusMessage(statusMsg{
			text:  fmt.Sprintf("clipboard error: %v", err),
			level: statusWarn,
		})
		return
	}
	m.setStatusMessage(statusMsg{
		text:  fmt.Sprintf("Copied %s", payload),
		level: statusInfo,
	})
}
