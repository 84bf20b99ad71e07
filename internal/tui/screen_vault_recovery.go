package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MKhiriev/mylife-client/internal/gate"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// VaultRecoveryModel is the only screen reachable while the vault is
// UNAVAILABLE. The user can save an emergency export of the raw encrypted
// files and then, after confirming, archive the broken vault.
type VaultRecoveryModel struct {
	ctx       context.Context
	ctrl      *gate.Controller
	exportDir string

	busy    bool
	status  string
	errMsg  string
	confirm confirmModel
}

func NewVaultRecoveryModel(ctx context.Context, ctrl *gate.Controller, exportDir string) *VaultRecoveryModel {
	return &VaultRecoveryModel{ctx: ctx, ctrl: ctrl, exportDir: exportDir}
}

func (m *VaultRecoveryModel) Init() tea.Cmd {
	return nil
}

func (m *VaultRecoveryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case gateResultMsg:
		m.busy = false
		m.errMsg = humanizeServerUnavailableError(msg.err)
		return m, nil
	case exportDoneMsg:
		m.busy = false
		switch {
		case errors.Is(msg.err, gate.ErrNoVaultFiles):
			m.errMsg = "No vault files found to export"
		case msg.err != nil:
			m.errMsg = humanizeServerUnavailableError(msg.err)
		default:
			m.errMsg = ""
			m.status = fmt.Sprintf("Saved %d bytes to %s", msg.bytes, msg.path)
		}
		return m, nil
	case tea.KeyMsg:
		if m.confirm.active() {
			var cmd tea.Cmd
			m.confirm, cmd = m.confirm.update(msg)
			return m, cmd
		}
		if m.busy {
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.export):
			m.busy = true
			m.status = ""
			return m, m.cmdExport()
		case key.Matches(msg, keys.recover):
			m.confirm = confirmModel{
				message: "Archive the corrupted vault and set up a new one?\nUnexported data will not be readable by MyLife.",
				onYes: func() tea.Cmd {
					m.busy = true
					return m.cmdRecover()
				},
			}
			return m, nil
		case key.Matches(msg, keys.retry):
			m.busy = true
			return m, m.cmdEvaluate()
		}
	}
	return m, nil
}

func (m *VaultRecoveryModel) View() string {
	if m.confirm.active() {
		return renderPage("VAULT RECOVERY", m.confirm.View(), "")
	}

	var b strings.Builder
	b.WriteString("The vault cannot be opened.\n")
	b.WriteString("It may be corrupted, or the backend cannot read it.\n\n")
	b.WriteString("1. Save an emergency export of the encrypted files.\n")
	b.WriteString("2. Archive the broken vault and create a new one.")

	if m.busy {
		b.WriteString("\n\nWorking...")
	}
	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(okStyle.Render(m.status))
	}
	if m.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}

	return renderPage("VAULT RECOVERY", b.String(), "e: emergency export │ x: recover │ r: check again")
}

func (m *VaultRecoveryModel) cmdExport() tea.Cmd {
	ctx := m.ctx
	ctrl := m.ctrl
	path := filepath.Join(m.exportDir, emergencyExportName(time.Now()))

	return func() tea.Msg {
		f, err := os.Create(path)
		if err != nil {
			return exportDoneMsg{err: fmt.Errorf("create export file: %w", err)}
		}

		n, err := ctrl.Vault.EmergencyExport(ctx, f)
		closeErr := f.Close()
		if err == nil {
			err = closeErr
		}
		if err != nil {
			_ = os.Remove(path)
			return exportDoneMsg{err: err}
		}

		return exportDoneMsg{path: path, bytes: n}
	}
}

func (m *VaultRecoveryModel) cmdRecover() tea.Cmd {
	ctx := m.ctx
	ctrl := m.ctrl

	return func() tea.Msg {
		_, err := ctrl.Vault.Recover(ctx)
		return gateResultMsg{err: err}
	}
}

func (m *VaultRecoveryModel) cmdEvaluate() tea.Cmd {
	ctx := m.ctx
	ctrl := m.ctrl

	return func() tea.Msg {
		_, err := ctrl.Vault.Evaluate(ctx)
		return gateResultMsg{err: err}
	}
}

func emergencyExportName(now time.Time) string {
	return "mylife-emergency-export-" + now.Format("20060102_150405") + ".zip"
}
