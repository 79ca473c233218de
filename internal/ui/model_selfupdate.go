package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unkn0wn-root/tinct/internal/update"
)

const updateCheckTimeout = 20 * time.Second

func (m *Model) enqueueUpdateCheck() tea.Cmd {
	if m.updateBusy || !m.updateClient.Ready() {
		return nil
	}
	if m.updateVersion == "" || m.updateVersion == "dev" {
		return nil
	}
	m.updateBusy = true
	client := m.updateClient
	version := m.updateVersion
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), updateCheckTimeout)
		defer cancel()
		plat, err := update.Detect()
		if err != nil {
			return updateCheckMsg{err: err}
		}
		res, err := client.Check(ctx, version, plat)
		if err != nil {
			if errors.Is(err, update.ErrNoUpdate) {
				return updateCheckMsg{}
			}
			return updateCheckMsg{err: err}
		}
		return updateCheckMsg{res: &res}
	}
}
