package ui

import (
	"github.com/unkn0wn-root/tinct/internal/appstate"
	"github.com/unkn0wn-root/tinct/internal/history"
	"github.com/unkn0wn-root/tinct/internal/importer"
	"github.com/unkn0wn-root/tinct/internal/system"
	"github.com/unkn0wn-root/tinct/internal/theme"
	"github.com/unkn0wn-root/tinct/internal/update"
)

type statusLevel int

const (
	statusInfo statusLevel = iota
	statusWarn
	statusError
	statusSuccess
)

type statusMsg struct {
	text  string
	level statusLevel
}

// themesLoadedMsg carries the initial catalog fetch. A failed load
// surfaces once as an error status; there is no retry.
type themesLoadedMsg struct {
	catalog theme.Catalog
	err     error
}

// themesRefreshedMsg replaces the catalog after import, duplicate or
// an external edit.
type themesRefreshedMsg struct {
	catalog  theme.Catalog
	announce string
	err      error
}

// stateChangedMsg forwards a shared-state change into the update loop.
type stateChangedMsg struct {
	change appstate.Change
}

// themeSavedMsg reconciles an optimistic selection with the persisted
// write; on err the selection reverts to prevKey.
type themeSavedMsg struct {
	key     string
	prevKey string
	err     error
}

type schemeChangedMsg struct {
	scheme system.Scheme
}

// themesDirChangedMsg marks an external change in a theme directory.
type themesDirChangedMsg struct {
	path string
}

// importDialogClosedMsg is the dialog's single-fire completion signal;
// the theme list refreshes when it arrives.
type importDialogClosedMsg struct {
	imported bool
	result   importer.Result
	err      error
}

type historyLoadedMsg struct {
	entries []history.Entry
	err     error
}

type updateCheckMsg struct {
	res *update.Result
	err error
}
