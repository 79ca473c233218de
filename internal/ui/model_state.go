package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unkn0wn-root/tinct/internal/appstate"
	"github.com/unkn0wn-root/tinct/internal/history"
	"github.com/unkn0wn-root/tinct/internal/system"
	"github.com/unkn0wn-root/tinct/internal/theme"
	"github.com/unkn0wn-root/tinct/internal/watcher"
)

func (m *Model) startThemeWatcher() {
	accept := func(name string) bool {
		_, ok := theme.FormatForPath(name)
		return ok
	}
	m.dirWatcher = watcher.New(m.themeDirs, watcher.Options{Accept: accept})
	if err := m.dirWatcher.Start(); err != nil {
		m.dirWatcher = nil
		return
	}
	m.watchStarted = true
	events := m.dirWatcher.Events()
	go func() {
		for evt := range events {
			m.emitEvent(themesDirChangedMsg{path: evt.Path})
		}
	}()
}

func (m *Model) startSchemeMonitor() {
	m.monitor = system.NewMonitor(func(scheme system.Scheme) {
		m.emitEvent(schemeChangedMsg{scheme: scheme})
	})
	if err := m.monitor.Start(); err != nil {
		m.monitor = nil
	}
}

// handleStateChange reacts to shared-state mutations regardless of who
// made them: this model, the scheme monitor, or a headless CLI path.
func (m *Model) handleStateChange(change appstate.Change) tea.Cmd {
	switch change.Field {
	case appstate.FieldTheme:
		m.activeThemeKey = change.Snapshot.ThemeKey
		m.resolveSelection()
		m.applyActiveTheme()
		return nil
	case appstate.FieldSystemSync:
		m.settings.UseSystemTheme = change.Snapshot.UseSystemTheme
		if change.Snapshot.UseSystemTheme {
			return m.syncToScheme(m.currentScheme())
		}
		return nil
	default:
		// Import-dialog visibility is published for external readers;
		// the modal itself drives the local UI.
		return nil
	}
}

func (m *Model) handleSchemeChange(scheme system.Scheme) tea.Cmd {
	if scheme == system.SchemeUnknown || scheme == m.scheme {
		return nil
	}
	m.scheme = scheme
	if !m.state.Snapshot().UseSystemTheme {
		return nil
	}
	return m.syncToScheme(scheme)
}

func (m *Model) currentScheme() system.Scheme {
	if m.scheme != system.SchemeUnknown {
		return m.scheme
	}
	return system.SchemeDark
}

// syncToScheme switches the active theme to the configured candidate
// for the OS preference.
func (m *Model) syncToScheme(scheme system.Scheme) tea.Cmd {
	def, ok := m.schemeCandidate(scheme)
	if !ok {
		m.setStatusMessage(statusMsg{
			text:  fmt.Sprintf("no %s theme available for system sync", scheme),
			level: statusWarn,
		})
		return nil
	}
	if def.Key == m.state.Snapshot().ThemeKey {
		return nil
	}
	m.state.SetTheme(def.Key)
	return m.recordActivationCmd(def, history.SourceSystem)
}

// schemeCandidate picks the theme serving the OS preference: the
// configured key when it resolves, otherwise the first catalog entry
// with the matching variant.
func (m *Model) schemeCandidate(scheme system.Scheme) (theme.Definition, bool) {
	variant := theme.VariantDark
	configured := m.settings.SystemDarkTheme
	if scheme == system.SchemeLight {
		variant = theme.VariantLight
		configured = m.settings.SystemLightTheme
	}
	if configured != "" {
		if def, ok := m.catalog.Get(configured); ok {
			return def, true
		}
	}
	for _, def := range m.catalog.All() {
		if def.Variant == variant {
			return def, true
		}
	}
	return theme.Definition{}, false
}

func (m *Model) handleThemesDirChanged(msg themesDirChangedMsg) tea.Cmd {
	if msg.path == "" {
		return nil
	}
	return m.refreshThemesCmd("Themes folder changed")
}
