package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/MKhiriev/mylife-client/internal/gate"
	"github.com/MKhiriev/mylife-client/internal/service"
	"github.com/MKhiriev/mylife-client/internal/validators"
	"github.com/MKhiriev/mylife-client/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type appLockAction int

const (
	appLockActionNone appLockAction = iota
	appLockActionSet
	appLockActionChange
	appLockActionDisable
)

// AppLockSettingsModel enables, changes and disables the local PIN.
type AppLockSettingsModel struct {
	ctx     context.Context
	appLock service.AppLockSettingsService

	cfg        models.AppLockConfig
	loaded     bool
	action     appLockAction
	form       pinForm
	submitting bool
	status     string
	errMsg     string
}

func NewAppLockSettingsModel(ctx context.Context, appLock service.AppLockSettingsService) *AppLockSettingsModel {
	return &AppLockSettingsModel{ctx: ctx, appLock: appLock}
}

func (m *AppLockSettingsModel) Init() tea.Cmd {
	m.action = appLockActionNone
	m.status = ""
	m.errMsg = ""
	return m.cmdLoad()
}

func (m *AppLockSettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case appLockLoadedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.cfg = msg.cfg
		m.loaded = true
		return m, nil
	case appLockSavedMsg:
		m.submitting = false
		if msg.err != nil {
			m.form.reset()
			m.errMsg = appLockSettingsErrorMessage(msg.err)
			return m, nil
		}
		m.action = appLockActionNone
		m.errMsg = ""
		m.status = msg.notice
		return m, m.cmdLoad()
	case tea.KeyMsg:
		if m.action == appLockActionNone {
			return m.updateMenu(msg)
		}
		return m.updateForm(msg)
	}

	if m.action != appLockActionNone {
		return m, m.form.update(msg)
	}
	return m, nil
}

func (m *AppLockSettingsModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		return m, func() tea.Msg { return NavigateTo{Page: pageHome} }
	case !m.loaded:
		return m, nil
	case key.Matches(msg, keys.setPIN) && !m.cfg.Enabled:
		m.open(appLockActionSet)
		return m, textinput.Blink
	case key.Matches(msg, keys.change) && m.cfg.Enabled:
		m.open(appLockActionChange)
		return m, textinput.Blink
	case key.Matches(msg, keys.disable) && m.cfg.Enabled:
		m.open(appLockActionDisable)
		return m, textinput.Blink
	}
	return m, nil
}

func (m *AppLockSettingsModel) open(action appLockAction) {
	m.action = action
	m.status = ""
	m.errMsg = ""

	limit := validators.MaxAppLockPINLength
	switch action {
	case appLockActionSet:
		m.form = newPINForm(limit, "New PIN", "Confirm PIN")
	case appLockActionChange:
		m.form = newPINForm(limit, "Current PIN", "New PIN", "Confirm PIN")
	case appLockActionDisable:
		m.form = newPINForm(limit, "Current PIN")
	}
}

func (m *AppLockSettingsModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.action = appLockActionNone
		m.errMsg = ""
		return m, nil
	case key.Matches(msg, keys.tab):
		m.form.focusNext()
		return m, nil
	case key.Matches(msg, keys.backtab):
		m.form.focusPrev()
		return m, nil
	case key.Matches(msg, keys.enter):
		if !m.form.onLast() {
			m.form.focusNext()
			return m, nil
		}
		if m.submitting {
			return m, nil
		}
		m.submitting = true
		m.errMsg = ""
		return m, m.cmdSave()
	}
	return m, m.form.update(msg)
}

func (m *AppLockSettingsModel) View() string {
	var b strings.Builder

	switch {
	case !m.loaded && m.errMsg == "":
		b.WriteString("Loading...")
	case m.loaded:
		state := "Disabled"
		if m.cfg.Enabled {
			state = "Enabled"
		}
		b.WriteString("App lock │ ")
		b.WriteString(state)
	}

	hotKeys := "esc: back"
	if m.loaded && m.action == appLockActionNone {
		if m.cfg.Enabled {
			hotKeys = "c: change PIN │ d: disable │ esc: back"
		} else {
			hotKeys = "s: set PIN │ esc: back"
		}
	}

	if m.action != appLockActionNone {
		b.WriteString("\n\n")
		b.WriteString(m.form.View())
		hotKeys = "tab: next field │ enter: confirm │ esc: cancel"
	}
	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(okStyle.Render(m.status))
	}
	if m.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}

	return renderPage("APP LOCK", b.String(), hotKeys)
}

func (m *AppLockSettingsModel) cmdLoad() tea.Cmd {
	ctx := m.ctx
	appLock := m.appLock

	return func() tea.Msg {
		cfg, err := appLock.Config(ctx)
		return appLockLoadedMsg{cfg: cfg, err: err}
	}
}

func (m *AppLockSettingsModel) cmdSave() tea.Cmd {
	ctx := m.ctx
	appLock := m.appLock
	action := m.action
	values := make([]string, len(m.form.inputs))
	for i := range values {
		values[i] = m.form.value(i)
	}

	return func() tea.Msg {
		switch action {
		case appLockActionSet:
			return appLockSavedMsg{notice: "App lock enabled", err: appLock.SetPIN(ctx, values[0], values[1])}
		case appLockActionChange:
			return appLockSavedMsg{notice: "PIN changed", err: appLock.ChangePIN(ctx, values[0], values[1], values[2])}
		default:
			return appLockSavedMsg{notice: "App lock disabled", err: appLock.Disable(ctx, values[0])}
		}
	}
}

func appLockSettingsErrorMessage(err error) string {
	switch {
	case errors.Is(err, gate.ErrWrongPIN):
		return "Current PIN is incorrect"
	case errors.Is(err, validators.ErrPINRequired):
		return "Enter a PIN"
	case errors.Is(err, validators.ErrPINTooShort), errors.Is(err, validators.ErrPINTooLong):
		return "PIN must be 4 to 6 characters"
	case errors.Is(err, validators.ErrPINMismatch):
		return "PINs do not match"
	default:
		return err.Error()
	}
}
