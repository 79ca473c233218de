package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unkn0wn-root/tinct/internal/appstate"
	"github.com/unkn0wn-root/tinct/internal/bindings"
	"github.com/unkn0wn-root/tinct/internal/config"
	"github.com/unkn0wn-root/tinct/internal/history"
	"github.com/unkn0wn-root/tinct/internal/system"
	"github.com/unkn0wn-root/tinct/internal/telemetry"
	"github.com/unkn0wn-root/tinct/internal/theme"
	"github.com/unkn0wn-root/tinct/internal/update"
	"github.com/unkn0wn-root/tinct/internal/watcher"
)

var _ tea.Model = (*Model)(nil)

const (
	minListWidthCells  = 24
	minDetailRows      = 8
	eventChannelBuffer = 16
)

type Config struct {
	Theme          *theme.Theme
	ActiveThemeKey string
	ThemeDirs      []string
	Settings       config.Settings
	SettingsHandle config.SettingsHandle
	State          *appstate.Store
	History        *history.Store
	Bindings       *bindings.Map
	Telemetry      telemetry.Instrumenter
	Version        string
	UpdateClient   update.Client
	EnableUpdate   bool
	// DisableWatch skips the themes-dir watcher and the OS scheme
	// monitor; tests and one-shot CLI paths set it.
	DisableWatch bool
}

type Model struct {
	cfg         Config
	bindingsMap *bindings.Map
	theme       theme.Theme
	catalog     theme.Catalog
	state       *appstate.Store
	telemetry   telemetry.Instrumenter
	themeDirs   []string

	settings       config.Settings
	settingsHandle config.SettingsHandle

	themeList      list.Model
	selected       *theme.Definition
	activeThemeKey string
	catalogLoaded  bool

	// events carries shared-state changes, scheme changes and watcher
	// hits from their goroutines into the update loop.
	events       chan tea.Msg
	unsubscribe  func()
	scheme       system.Scheme
	monitor      *system.Monitor
	dirWatcher   *watcher.Watcher
	watchStarted bool

	historyStore   *history.Store
	historyList    list.Model
	historyEntries []history.Entry
	showHistory    bool

	showImportModal  bool
	importInput      textinput.Model
	importJustOpened bool
	importBusy       bool

	showCompare     bool
	compareTitle    string
	compareViewport *viewport.Model

	showHelp          bool
	showErrorModal    bool
	errorModalMessage string

	statusMessage statusMsg

	updateClient   update.Client
	updateVersion  string
	updateEnabled  bool
	updateBusy     bool
	updateInfo     *update.Result
	updateAnnounce string

	pendingChord    string
	hasPendingChord bool

	width       int
	height      int
	frameWidth  int
	frameHeight int
	ready       bool
}

func New(cfg Config) Model {
	th := theme.DarkTheme()
	if cfg.Theme != nil {
		th = *cfg.Theme
	}
	activeKey := strings.TrimSpace(cfg.ActiveThemeKey)
	if activeKey == "" {
		activeKey = cfg.Settings.Theme
	}

	state := cfg.State
	if state == nil {
		state = appstate.NewStore(appstate.Snapshot{
			ThemeKey:       activeKey,
			UseSystemTheme: cfg.Settings.UseSystemTheme,
		})
	}
	bindingMap := cfg.Bindings
	if bindingMap == nil {
		bindingMap = bindings.DefaultMap()
	}
	instrumenter := cfg.Telemetry
	if instrumenter == nil {
		instrumenter = telemetry.Noop()
	}
	dirs := cfg.ThemeDirs
	if len(dirs) == 0 {
		dirs = []string{config.ThemeDir()}
	}

	m := Model{
		cfg:            cfg,
		bindingsMap:    bindingMap,
		theme:          th,
		state:          state,
		telemetry:      instrumenter,
		themeDirs:      dirs,
		settings:       cfg.Settings,
		settingsHandle: cfg.SettingsHandle,
		activeThemeKey: activeKey,
		events:         make(chan tea.Msg, eventChannelBuffer),
		historyStore:   cfg.History,
		scheme:         system.SchemeUnknown,
		updateClient:   cfg.UpdateClient,
		updateVersion:  strings.TrimSpace(cfg.Version),
		updateEnabled:  cfg.EnableUpdate,
	}

	m.themeList = newThemeList(th)
	m.historyList = newHistoryList(th)
	m.importInput = newImportInput()

	m.unsubscribe = state.Subscribe(m.forwardStateChange)
	if !cfg.DisableWatch {
		m.startThemeWatcher()
		m.startSchemeMonitor()
	}
	return m
}

func newThemeList(th theme.Theme) list.Model {
	delegate := listDelegateForTheme(th, true, 3)
	l := list.New(nil, delegate, 0, 0)
	l.Title = "Themes"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Filter = substringFilter
	l.DisableQuitKeybindings()
	return l
}

func newHistoryList(th theme.Theme) list.Model {
	delegate := listDelegateForTheme(th, true, 2)
	l := list.New(nil, delegate, 0, 0)
	l.Title = "Recent activations"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}

func newImportInput() textinput.Model {
	input := textinput.New()
	input.Placeholder = "path or URL of a Monaco/base16 theme"
	input.CharLimit = 512
	input.Prompt = "> "
	return input
}

// forwardStateChange runs on the mutator's goroutine; it never touches
// the model directly.
func (m *Model) forwardStateChange(change appstate.Change) {
	select {
	case m.events <- stateChangedMsg{change: change}:
	default:
	}
}

func (m *Model) emitEvent(msg tea.Msg) {
	if msg == nil || m.events == nil {
		return
	}
	select {
	case m.events <- msg:
	default:
	}
}

func (m *Model) nextEventCmd() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

// SetInitialScheme seeds the OS preference probed before the program
// took over the terminal.
func (m *Model) SetInitialScheme(scheme system.Scheme) {
	if scheme != system.SchemeUnknown {
		m.scheme = scheme
	}
}

// teardown detaches the state subscription and stops the background
// watchers; safe to call more than once.
func (m *Model) teardown() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	if m.monitor != nil {
		m.monitor.Stop()
		m.monitor = nil
	}
	if m.dirWatcher != nil {
		m.dirWatcher.Stop()
		m.dirWatcher = nil
	}
}
