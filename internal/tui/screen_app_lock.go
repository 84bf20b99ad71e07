package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/MKhiriev/mylife-client/internal/gate"
	"github.com/MKhiriev/mylife-client/internal/validators"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// AppLockModel asks for the local app-lock PIN. A wrong PIN keeps the gate
// closed with no attempt limit.
type AppLockModel struct {
	ctx  context.Context
	ctrl *gate.Controller

	form   pinForm
	errMsg string
}

func NewAppLockModel(ctx context.Context, ctrl *gate.Controller) *AppLockModel {
	return &AppLockModel{
		ctx:  ctx,
		ctrl: ctrl,
		form: newPINForm(validators.MaxAppLockPINLength, "PIN"),
	}
}

func (m *AppLockModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *AppLockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, keys.enter) {
		err := m.ctrl.AppLock.SubmitPIN(m.form.value(0))
		m.form.reset()
		if err != nil {
			m.errMsg = appLockErrorMessage(err)
			return m, nil
		}
		m.errMsg = ""
		return m, cmdAdvance(m.ctx, m.ctrl)
	}

	return m, m.form.update(msg)
}

func (m *AppLockModel) View() string {
	var b strings.Builder
	b.WriteString("MyLife is locked.\n\n")
	b.WriteString(m.form.View())
	if m.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}
	return renderPage("APP LOCK", b.String(), "enter: unlock")
}

func appLockErrorMessage(err error) string {
	if errors.Is(err, gate.ErrWrongPIN) {
		return "Incorrect PIN"
	}
	return err.Error()
}
