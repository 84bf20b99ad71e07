package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/mylife-client/internal/service"
	"github.com/MKhiriev/mylife-client/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// SyncModel is the manual sync page: status, push, pull and conflict
// resolution. Every resolution is confirmed first.
type SyncModel struct {
	ctx  context.Context
	sync service.SyncOrchestrator

	spinner spinner.Model
	running bool
	status  string
	errMsg  string
	confirm confirmModel

	copyToClipboard func(string) error
}

func NewSyncModel(ctx context.Context, sync service.SyncOrchestrator) *SyncModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return &SyncModel{
		ctx:             ctx,
		sync:            sync,
		spinner:         s,
		copyToClipboard: clipboard.WriteAll,
	}
}

// Init refreshes status and conflicts every time the page opens.
func (m *SyncModel) Init() tea.Cmd {
	m.running = true
	m.status = ""
	m.errMsg = ""
	return tea.Batch(m.spinner.Tick, m.cmdRun("", false, m.sync.Refresh))
}

func (m *SyncModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case syncDoneMsg:
		m.running = false
		m.errMsg = ""
		switch {
		case msg.err == nil:
			m.status = msg.notice
		case !msg.recorded || rejectedLocally(msg.err):
			m.errMsg = humanizeServerUnavailableError(msg.err)
		}
		return m, nil
	case copiedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.status = "Device ID copied"
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *SyncModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm.active() {
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.update(msg)
		return m, cmd
	}

	if key.Matches(msg, keys.esc) {
		return m, func() tea.Msg { return NavigateTo{Page: pageHome} }
	}
	if m.running {
		return m, nil
	}

	snap := m.sync.Snapshot()
	switch {
	case key.Matches(msg, keys.push):
		return m, m.start("Push complete", true, m.sync.Push)
	case key.Matches(msg, keys.pull):
		return m, m.start("Pull complete", true, m.sync.Pull)
	case key.Matches(msg, keys.refresh):
		return m, m.start("", false, m.sync.Refresh)
	case key.Matches(msg, keys.copy):
		if snap.HasStatus && snap.Status.DeviceID != "" {
			return m, m.cmdCopy(snap.Status.DeviceID)
		}
	case key.Matches(msg, keys.keep) && len(snap.Conflicts) > 0:
		m.askResolve(models.StrategyKeepLocal)
	case key.Matches(msg, keys.remote) && len(snap.Conflicts) > 0:
		m.askResolve(models.StrategyUseRemote)
	case key.Matches(msg, keys.merge) && len(snap.Conflicts) > 0:
		m.askResolve(models.StrategyMerge)
	}

	return m, nil
}

func (m *SyncModel) askResolve(strategy models.ResolveStrategy) {
	m.confirm = confirmModel{
		message: resolveQuestion(strategy),
		onYes: func() tea.Cmd {
			return m.start("Conflicts resolved", true, func(ctx context.Context) error {
				return m.sync.ResolveConflict(ctx, strategy, true)
			})
		},
	}
}

func resolveQuestion(strategy models.ResolveStrategy) string {
	switch strategy {
	case models.StrategyKeepLocal:
		return "Keep the local journal and mark it as the new sync base?"
	case models.StrategyUseRemote:
		return "Replace the local journal with the remote snapshot?\nLocal changes since the last sync will be lost."
	default:
		return "Merge local and remote snapshots?"
	}
}

func (m *SyncModel) start(notice string, recorded bool, op func(context.Context) error) tea.Cmd {
	m.running = true
	m.status = ""
	m.errMsg = ""
	return tea.Batch(m.spinner.Tick, m.cmdRun(notice, recorded, op))
}

// cmdRun executes op. recorded marks operations whose backend failures the
// orchestrator keeps as its last error; those are rendered from the
// snapshot only.
func (m *SyncModel) cmdRun(notice string, recorded bool, op func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return syncDoneMsg{notice: notice, recorded: recorded, err: op(ctx)}
	}
}

// rejectedLocally reports errors the orchestrator returns without calling
// the backend.
func rejectedLocally(err error) bool {
	return errors.Is(err, service.ErrSyncInProgress) ||
		errors.Is(err, service.ErrConflictsPending) ||
		errors.Is(err, service.ErrConfirmationRequired) ||
		errors.Is(err, service.ErrInvalidStrategy)
}

func (m *SyncModel) cmdCopy(deviceID string) tea.Cmd {
	copyFn := m.copyToClipboard
	return func() tea.Msg {
		if err := copyFn(deviceID); err != nil {
			return copiedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func (m *SyncModel) View() string {
	if m.confirm.active() {
		return renderPage("SYNC", m.confirm.View(), "")
	}

	body := renderSyncBody(m.sync.Snapshot())
	if m.running {
		body += "\n\n" + m.spinner.View() + " Syncing..."
	}
	if m.status != "" {
		body += "\n\n" + okStyle.Render(m.status)
	}
	if m.errMsg != "" {
		body += "\n\n" + errorStyle.Render(m.errMsg)
	}

	return renderPage("SYNC", body, syncHotKeys(m.sync.Snapshot()))
}

func syncHotKeys(snap service.SyncSnapshot) string {
	hot := "p: push │ l: pull │ r: refresh │ c: copy device id │ esc: back"
	if len(snap.Conflicts) > 0 {
		hot = "1: keep local │ 2: use remote │ 3: merge\n  " + hot
	}
	return hot
}

// renderSyncBody is the page without the transient parts.
func renderSyncBody(snap service.SyncSnapshot) string {
	var b strings.Builder

	if snap.HasStatus {
		st := snap.Status
		b.WriteString(fmt.Sprintf("Device ID   │ %s\n", valueOrDash(truncateDeviceID(st.DeviceID))))
		drive := "Not connected"
		if st.DriveConnected {
			drive = "Connected"
		}
		b.WriteString(fmt.Sprintf("Drive       │ %s\n", drive))
		b.WriteString(fmt.Sprintf("Last push   │ %s\n", formatTimestamp(st.LastPushAt)))
		b.WriteString(fmt.Sprintf("Last pull   │ %s\n", formatTimestamp(st.LastPullAt)))
		if st.DriveLastBackup != "" {
			b.WriteString(fmt.Sprintf("Last backup │ %s\n", st.DriveLastBackup))
		}
	} else {
		b.WriteString("Sync status is not known yet.\n")
	}

	if len(snap.Conflicts) > 0 {
		b.WriteString(fmt.Sprintf("\nConflicts (%d):\n", len(snap.Conflicts)))
		for _, c := range snap.Conflicts {
			b.WriteString(fmt.Sprintf("- [%s] %s\n", c.Type, fitText(c.Message, conflictMessageWidth)))
		}
	}
	if snap.PullBlocked {
		b.WriteString("\nPull is blocked until the conflicts are resolved.\n")
	}

	if snap.LastError != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + snap.LastError))
	}

	return strings.TrimRight(b.String(), "\n")
}
