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

const vaultPINCharLimit = 128

// VaultSetupModel creates the vault. The PIN pair is validated locally
// before anything is sent; the controller then unlocks the new vault with
// the same PIN.
type VaultSetupModel struct {
	ctx  context.Context
	ctrl *gate.Controller

	form       pinForm
	submitting bool
	errMsg     string
}

func NewVaultSetupModel(ctx context.Context, ctrl *gate.Controller) *VaultSetupModel {
	return &VaultSetupModel{
		ctx:  ctx,
		ctrl: ctrl,
		form: newPINForm(vaultPINCharLimit, "PIN", "Confirm PIN"),
	}
}

func (m *VaultSetupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *VaultSetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(gateResultMsg); ok {
		m.submitting = false
		if result.err != nil {
			m.errMsg = vaultErrorMessage(result.err)
		}
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.tab):
			m.form.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.form.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if !m.form.onLast() {
				m.form.focusNext()
				return m, nil
			}
			if m.submitting {
				return m, nil
			}
			m.errMsg = ""
			m.submitting = true
			return m, m.cmdSetup(m.form.value(0), m.form.value(1))
		}
	}

	return m, m.form.update(msg)
}

func (m *VaultSetupModel) View() string {
	var b strings.Builder
	b.WriteString("Create a PIN for your journal vault.\n")
	b.WriteString("The PIN cannot be recovered. Keep it safe.\n\n")
	b.WriteString(m.form.View())

	if m.submitting {
		b.WriteString("\n\n[Creating...]")
	} else {
		b.WriteString("\n\n[Create vault]")
	}
	if m.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}

	return renderPage("VAULT SETUP", b.String(), "tab: next field │ enter: confirm")
}

func (m *VaultSetupModel) cmdSetup(pin, confirm string) tea.Cmd {
	ctx := m.ctx
	ctrl := m.ctrl

	return func() tea.Msg {
		_, err := ctrl.Vault.Setup(ctx, pin, confirm)
		return gateResultMsg{err: err}
	}
}

// vaultErrorMessage turns validation and backend refusals into one line.
func vaultErrorMessage(err error) string {
	switch {
	case errors.Is(err, validators.ErrPINRequired):
		return "Enter a PIN"
	case errors.Is(err, validators.ErrPINTooShort):
		return "PIN must be at least 4 characters"
	case errors.Is(err, validators.ErrPINMismatch):
		return "PINs do not match"
	case errors.Is(err, gate.ErrVaultUnlockRejected):
		return "Vault rejected the PIN"
	default:
		return humanizeServerUnavailableError(err)
	}
}
