package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/MKhiriev/mylife-client/internal/gate"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TerminalModel asks for the terminal passphrase. Nothing touches the
// network until it is accepted; on success the readiness probe starts.
type TerminalModel struct {
	ctx  context.Context
	ctrl *gate.Controller

	form       pinForm
	submitting bool
	errMsg     string
}

func NewTerminalModel(ctx context.Context, ctrl *gate.Controller) *TerminalModel {
	return &TerminalModel{
		ctx:  ctx,
		ctrl: ctrl,
		form: newPINForm(gate.MaxTerminalPassphraseLength, "Passphrase"),
	}
}

func (m *TerminalModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *TerminalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(gateResultMsg); ok {
		m.submitting = false
		m.form.reset()
		m.errMsg = terminalErrorMessage(result.err)
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, keys.enter) {
		if m.submitting {
			return m, nil
		}
		m.errMsg = ""
		m.submitting = true
		return m, m.cmdSubmit(m.form.value(0))
	}

	return m, m.form.update(msg)
}

func (m *TerminalModel) View() string {
	var b strings.Builder
	b.WriteString("This terminal is protected.\n\n")
	b.WriteString(m.form.View())

	if m.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}

	return renderPage("MYLIFE", b.String(), "enter: unlock")
}

func (m *TerminalModel) cmdSubmit(passphrase string) tea.Cmd {
	ctx := m.ctx
	ctrl := m.ctrl

	return func() tea.Msg {
		if err := ctrl.Session.Submit(passphrase); err != nil {
			return gateResultMsg{err: err}
		}
		ctrl.Probe.Start(ctx)
		return gateResultMsg{}
	}
}

// terminalErrorMessage keeps a wrong passphrase silent; only input that can
// never be right is explained.
func terminalErrorMessage(err error) string {
	switch {
	case err == nil, errors.Is(err, gate.ErrWrongPassphrase):
		return ""
	case errors.Is(err, gate.ErrPassphraseRequired):
		return "Enter the passphrase"
	case errors.Is(err, gate.ErrPassphraseTooLong):
		return "Passphrase is too long"
	default:
		return err.Error()
	}
}
