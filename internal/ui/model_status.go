package ui

import "strings"

func (m *Model) setStatusMessage(msg statusMsg) {
	m.statusMessage = msg
	if msg.level == statusError && strings.TrimSpace(msg.text) != "" {
		m.openErrorModal(msg.text)
	}
}

func (m *Model) openErrorModal(message string) {
	m.errorModalMessage = message
	m.showErrorModal = true
}

func (m *Model) closeErrorModal() {
	m.showErrorModal = false
	m.errorModalMessage = ""
}
