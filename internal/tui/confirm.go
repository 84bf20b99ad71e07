package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// confirmModel is a y/n question shown over a page. onYes runs when the
// user agrees; any other answer just closes it.
type confirmModel struct {
	message string
	onYes   func() tea.Cmd
}

func (m confirmModel) active() bool {
	return m.message != ""
}

// update returns the closed dialog and, on "y", the confirmed command.
func (m confirmModel) update(msg tea.KeyMsg) (confirmModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		onYes := m.onYes
		if onYes == nil {
			return confirmModel{}, nil
		}
		return confirmModel{}, onYes()
	case key.Matches(msg, keys.no), key.Matches(msg, keys.esc):
		return confirmModel{}, nil
	}
	return m, nil
}

func (m confirmModel) View() string {
	content := m.message + "\n\n"
	content += "y yes    n no"
	return overlayBoxStyle.Render(content)
}
