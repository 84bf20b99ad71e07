package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/mylife-client/internal/gate"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type homeItem struct {
	title string
	run   func(m *HomeModel) tea.Cmd
}

// HomeModel is the menu shown once every gate is open.
type HomeModel struct {
	ctx  context.Context
	ctrl *gate.Controller

	items  []homeItem
	idx    int
	busy   bool
	errMsg string
}

func NewHomeModel(ctx context.Context, ctrl *gate.Controller) *HomeModel {
	return &HomeModel{
		ctx:  ctx,
		ctrl: ctrl,
		items: []homeItem{
			{title: "Sync", run: navigate(pageSync)},
			{title: "App lock", run: navigate(pageAppLockSettings)},
			{title: "Lock vault", run: (*HomeModel).cmdLockVault},
			{title: "Quit", run: func(*HomeModel) tea.Cmd { return tea.Quit }},
		},
	}
}

func navigate(page string) func(*HomeModel) tea.Cmd {
	return func(*HomeModel) tea.Cmd {
		return func() tea.Msg { return NavigateTo{Page: page} }
	}
}

func (m *HomeModel) Init() tea.Cmd {
	return nil
}

func (m *HomeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(gateResultMsg); ok {
		m.busy = false
		m.errMsg = humanizeServerUnavailableError(result.err)
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.busy {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	case key.Matches(keyMsg, keys.enter):
		m.errMsg = ""
		return m, m.items[m.idx].run(m)
	}

	return m, nil
}

func (m *HomeModel) View() string {
	var b strings.Builder

	idColWidth := lipgloss.Width(fmt.Sprintf("%d", len(m.items))) + 2
	for i, item := range m.items {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		line := fmt.Sprintf("%-*s │ %s", idColWidth, fmt.Sprintf("%s %d", cursor, i+1), item.title)
		if i == m.idx {
			line = cursorStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.busy {
		b.WriteString("\nLocking vault...")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}

	return renderPage("MYLIFE", strings.TrimRight(b.String(), "\n"), "enter: select │ ↑/↓: navigate │ v: version │ q: quit")
}

// cmdLockVault locks the vault and asks for a full reload, so every gate
// is evaluated again from a fresh status.
func (m *HomeModel) cmdLockVault() tea.Cmd {
	m.busy = true
	ctx := m.ctx
	ctrl := m.ctrl

	return func() tea.Msg {
		if err := ctrl.Vault.Lock(ctx); err != nil {
			return gateResultMsg{err: err}
		}
		return reloadMsg{}
	}
}
