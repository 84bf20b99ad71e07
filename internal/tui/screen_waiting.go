package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/mylife-client/internal/gate"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// WaitingModel is shown while the readiness probe retries. It only
// reflects the attempts; the probe itself runs in the background.
type WaitingModel struct {
	spinner spinner.Model
	attempt int
	lastErr string
}

func NewWaitingModel() *WaitingModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return &WaitingModel{spinner: s}
}

func (m *WaitingModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *WaitingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case probeAttemptMsg:
		m.attempt = msg.Attempt
		m.lastErr = humanizeServerUnavailableError(msg.Err)
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *WaitingModel) View() string {
	var b strings.Builder
	b.WriteString(m.spinner.View())
	b.WriteString(" Waiting for the backend...")
	if m.attempt > 0 {
		b.WriteString(fmt.Sprintf("\n\nAttempt: %d", m.attempt))
	}
	if m.lastErr != "" {
		b.WriteString("\nLast error: ")
		b.WriteString(m.lastErr)
	}

	return renderPage("STARTING", b.String(), "")
}

// LoadingModel is shown while the app lock and the vault status are read.
// A failed step can be retried with "r".
type LoadingModel struct {
	ctx  context.Context
	ctrl *gate.Controller

	spinner spinner.Model
	errMsg  string
}

func NewLoadingModel(ctx context.Context, ctrl *gate.Controller) *LoadingModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return &LoadingModel{ctx: ctx, ctrl: ctrl, spinner: s}
}

func (m *LoadingModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *LoadingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case gateResultMsg:
		m.errMsg = humanizeServerUnavailableError(msg.err)
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if m.errMsg != "" && key.Matches(msg, keys.retry) {
			m.errMsg = ""
			return m, cmdAdvance(m.ctx, m.ctrl)
		}
	}
	return m, nil
}

func (m *LoadingModel) View() string {
	if m.errMsg != "" {
		return renderPage("LOADING", errorStyle.Render(m.errMsg), "r: retry")
	}
	return renderPage("LOADING", m.spinner.View()+" Loading...", "")
}

// cmdAdvance performs the next automatic gate step.
func cmdAdvance(ctx context.Context, ctrl *gate.Controller) tea.Cmd {
	return func() tea.Msg {
		_, err := ctrl.Advance(ctx)
		return gateResultMsg{err: err}
	}
}
