package tui

import (
	"context"
	"strings"

	"github.com/MKhiriev/mylife-client/internal/gate"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// VaultUnlockModel sends the vault PIN to the backend.
type VaultUnlockModel struct {
	ctx  context.Context
	ctrl *gate.Controller

	form       pinForm
	submitting bool
	errMsg     string
}

func NewVaultUnlockModel(ctx context.Context, ctrl *gate.Controller) *VaultUnlockModel {
	return &VaultUnlockModel{
		ctx:  ctx,
		ctrl: ctrl,
		form: newPINForm(vaultPINCharLimit, "PIN"),
	}
}

func (m *VaultUnlockModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *VaultUnlockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(gateResultMsg); ok {
		m.submitting = false
		m.form.reset()
		if result.err != nil {
			m.errMsg = vaultErrorMessage(result.err)
		}
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, keys.enter) {
		if m.submitting {
			return m, nil
		}
		m.errMsg = ""
		m.submitting = true
		return m, m.cmdUnlock(m.form.value(0))
	}

	return m, m.form.update(msg)
}

func (m *VaultUnlockModel) View() string {
	var b strings.Builder
	b.WriteString("Your vault is locked.\n\n")
	b.WriteString(m.form.View())

	if m.submitting {
		b.WriteString("\n\n[Unlocking...]")
	}
	if m.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}

	return renderPage("UNLOCK VAULT", b.String(), "enter: unlock")
}

func (m *VaultUnlockModel) cmdUnlock(pin string) tea.Cmd {
	ctx := m.ctx
	ctrl := m.ctrl

	return func() tea.Msg {
		_, err := ctrl.Vault.Unlock(ctx, pin)
		return gateResultMsg{err: err}
	}
}
