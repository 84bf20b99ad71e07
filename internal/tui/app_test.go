package tui

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/mylife-client/internal/adapter"
	"github.com/MKhiriev/mylife-client/internal/gate"
	"github.com/MKhiriev/mylife-client/internal/logger"
	"github.com/MKhiriev/mylife-client/internal/mock"
	"github.com/MKhiriev/mylife-client/internal/service"
	"github.com/MKhiriev/mylife-client/internal/store"
	"github.com/MKhiriev/mylife-client/internal/validators"
	"github.com/MKhiriev/mylife-client/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

type testGates struct {
	ctrl    *gate.Controller
	backend *mock.MockBackendAdapter
	repo    *mock.MockAppLockRepository
	session *store.MemorySessionStore
}

func newTestGates(t *testing.T, terminalHash string) testGates {
	t.Helper()

	mc := gomock.NewController(t)
	backend := mock.NewMockBackendAdapter(mc)
	repo := mock.NewMockAppLockRepository(mc)
	session := store.NewMemorySessionStore()
	log := logger.Nop()

	probe := gate.NewReadinessProbe(backend, time.Millisecond, nil, log)
	t.Cleanup(probe.Stop)

	return testGates{
		ctrl: gate.NewController(
			gate.NewSessionGate(session, gate.NewTerminalVerifier(terminalHash), log),
			probe,
			gate.NewAppLockGate(repo, session, log),
			gate.NewVaultAccessController(backend, validators.NewPINValidator(), log),
		),
		backend: backend,
		repo:    repo,
		session: session,
	}
}

// openOuterGates accepts the terminal passphrase and makes the backend
// ready, leaving the app lock unchecked.
func (g testGates) openOuterGates(t *testing.T) {
	t.Helper()
	g.ctrl.Session.MarkTerminalUnlocked()
	g.backend.EXPECT().Health(gomock.Any()).Return(nil)
	require.Equal(t, gate.Ready, g.ctrl.Probe.Probe(context.Background()))
}

func (g testGates) services() *service.ClientServices {
	return &service.ClientServices{
		Sync:    service.NewSyncOrchestrator(g.backend, logger.Nop()),
		AppLock: service.NewAppLockSettingsService(g.repo, g.session, validators.NewPINValidator(), logger.Nop()),
	}
}

func newTestRoot(t *testing.T, g testGates) RootModel {
	t.Helper()
	info := models.NewAppBuildInfo("1.4.0", "2026-10-16", "9f3c2ab")
	return NewRootModel(context.Background(), g.ctrl, g.services(), NewProbeFeed(), info, t.TempDir())
}

func update(t *testing.T, r RootModel, msg tea.Msg) (RootModel, tea.Cmd) {
	t.Helper()
	next, cmd := r.Update(msg)
	root, ok := next.(RootModel)
	require.True(t, ok)
	return root, cmd
}

// runCmd executes cmd and every command of a batch, returning the non-nil
// messages in order.
func runCmd(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(t, c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// feed runs cmd and delivers its gate results back to the root model.
func feed(t *testing.T, r RootModel, cmd tea.Cmd) RootModel {
	t.Helper()
	for _, msg := range runCmd(t, cmd) {
		if _, ok := msg.(gateResultMsg); ok {
			r, _ = update(t, r, msg)
		}
	}
	return r
}

func press(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func unlockedVault() models.VaultStatus {
	return models.VaultStatus{State: models.VaultStateUnlocked, VaultExists: true, IsUnlocked: true}
}

// ─────────────────────────────────────────────
// Terminal and readiness
// ─────────────────────────────────────────────

func TestRootModel_StartsOnTerminalScreenWithoutNetwork(t *testing.T) {
	g := newTestGates(t, "")
	// no EXPECT: nothing may reach the backend before the passphrase

	r := newTestRoot(t, g)

	assert.Equal(t, gate.ScreenTerminal, r.Screen())
	assert.Contains(t, r.View(), "Passphrase")
}

func TestRootModel_TerminalPassphraseStartsProbe(t *testing.T) {
	g := newTestGates(t, "")
	g.backend.EXPECT().Health(gomock.Any()).
		Return(fmt.Errorf("%w: dial tcp: connection refused", adapter.ErrUnreachable)).
		AnyTimes()

	r := newTestRoot(t, g)
	r.current.(*TerminalModel).form.inputs[0].SetValue("open sesame")

	r, cmd := update(t, r, press("enter"))
	r = feed(t, r, cmd)

	assert.Equal(t, gate.ScreenWaiting, r.Screen())
	assert.True(t, store.GetFlag(g.session, store.KeyTerminalUnlocked))
}

func TestRootModel_TerminalPassphraseErrors(t *testing.T) {
	hash, err := gate.HashTerminalPassphrase("open sesame")
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		wantView string
	}{
		{name: "wrong passphrase is silent", input: "guess", wantView: ""},
		{name: "empty passphrase", input: "", wantView: "Enter the passphrase"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGates(t, hash)
			r := newTestRoot(t, g)
			r.current.(*TerminalModel).form.inputs[0].SetValue(tt.input)

			r, cmd := update(t, r, press("enter"))
			r = feed(t, r, cmd)

			assert.Equal(t, gate.ScreenTerminal, r.Screen())
			assert.False(t, g.ctrl.Session.IsTerminalUnlocked())
			assert.Empty(t, r.current.(*TerminalModel).form.value(0))
			assert.NotContains(t, r.View(), "wrong")
			if tt.wantView != "" {
				assert.Contains(t, r.View(), tt.wantView)
			}
		})
	}
}

func TestRootModel_ProbeAttemptsUpdateWaitingScreen(t *testing.T) {
	g := newTestGates(t, "")
	g.ctrl.Session.MarkTerminalUnlocked()
	r := newTestRoot(t, g)
	require.Equal(t, gate.ScreenWaiting, r.Screen())

	r, cmd := update(t, r, probeAttemptMsg{
		Attempt: 3,
		Result:  gate.NotReady,
		Err:     fmt.Errorf("%w: i/o timeout", adapter.ErrUnreachable),
	})

	assert.NotNil(t, cmd, "must keep listening for attempts")
	assert.Equal(t, gate.ScreenWaiting, r.Screen())
	assert.Contains(t, r.View(), "Attempt: 3")
	assert.Contains(t, r.View(), msgBackendUnreachable)
}

func TestRootModel_ReadyBackendAdvancesToHome(t *testing.T) {
	g := newTestGates(t, "")
	g.openOuterGates(t)
	g.repo.EXPECT().Load(gomock.Any()).Return(models.AppLockConfig{}, nil)
	g.backend.EXPECT().VaultStatus(gomock.Any()).Return(unlockedVault(), nil)

	r := newTestRoot(t, g)
	require.Equal(t, gate.ScreenLoading, r.Screen())

	r, cmd := update(t, r, probeAttemptMsg{Attempt: 1, Result: gate.Ready})
	r = feed(t, r, cmd)

	assert.Equal(t, gate.ScreenHome, r.Screen())
	assert.Contains(t, r.View(), "Lock vault")
}

func TestRootModel_LoadingErrorCanBeRetried(t *testing.T) {
	g := newTestGates(t, "")
	g.openOuterGates(t)
	gomock.InOrder(
		g.repo.EXPECT().Load(gomock.Any()).Return(models.AppLockConfig{}, assert.AnError),
		g.repo.EXPECT().Load(gomock.Any()).Return(models.AppLockConfig{}, nil),
		g.backend.EXPECT().VaultStatus(gomock.Any()).Return(unlockedVault(), nil),
	)

	r := newTestRoot(t, g)
	r = feed(t, r, cmdAdvance(context.Background(), g.ctrl))
	require.Equal(t, gate.ScreenLoading, r.Screen())
	assert.Contains(t, r.View(), "r: retry")

	r, cmd := update(t, r, press("r"))
	r = feed(t, r, cmd)

	assert.Equal(t, gate.ScreenHome, r.Screen())
}

// ─────────────────────────────────────────────
// App lock
// ─────────────────────────────────────────────

func TestRootModel_AppLockPIN(t *testing.T) {
	g := newTestGates(t, "")
	g.openOuterGates(t)
	hash := gate.HashPIN("1234")
	g.repo.EXPECT().Load(gomock.Any()).Return(models.AppLockConfig{Enabled: true, PINHash: &hash}, nil)

	r := newTestRoot(t, g)
	r = feed(t, r, cmdAdvance(context.Background(), g.ctrl))
	require.Equal(t, gate.ScreenAppLock, r.Screen())

	// wrong PIN: no call, gate stays closed
	r.current.(*AppLockModel).form.inputs[0].SetValue("9999")
	r, cmd := update(t, r, press("enter"))
	assert.Nil(t, cmd)
	assert.Equal(t, gate.ScreenAppLock, r.Screen())
	assert.Contains(t, r.View(), "Incorrect PIN")

	g.backend.EXPECT().VaultStatus(gomock.Any()).Return(unlockedVault(), nil)
	r.current.(*AppLockModel).form.inputs[0].SetValue("1234")
	r, cmd = update(t, r, press("enter"))
	r = feed(t, r, cmd)

	assert.Equal(t, gate.ScreenHome, r.Screen())
	assert.True(t, store.GetFlag(g.session, store.KeySessionUnlocked))
}

// ─────────────────────────────────────────────
// Vault
// ─────────────────────────────────────────────

// vaultRoot returns a root model past the app lock with the given status.
func vaultRoot(t *testing.T, g testGates, status models.VaultStatus, statusErr error) RootModel {
	t.Helper()
	g.openOuterGates(t)
	g.repo.EXPECT().Load(gomock.Any()).Return(models.AppLockConfig{}, nil)
	g.backend.EXPECT().VaultStatus(gomock.Any()).Return(status, statusErr)

	r := newTestRoot(t, g)
	return feed(t, r, cmdAdvance(context.Background(), g.ctrl))
}

func TestRootModel_VaultSetupValidatesLocally(t *testing.T) {
	g := newTestGates(t, "")
	r := vaultRoot(t, g, models.VaultStatus{State: models.VaultStateNotExists}, nil)
	require.Equal(t, gate.ScreenVaultSetup, r.Screen())

	setup := r.current.(*VaultSetupModel)
	setup.form.inputs[0].SetValue("12")
	setup.form.inputs[1].SetValue("12")

	// enter on the first field only moves focus
	r, cmd := update(t, r, press("enter"))
	assert.Nil(t, cmd)

	// no EXPECT for SetupVault: validation must stop the call
	r, cmd = update(t, r, press("enter"))
	r = feed(t, r, cmd)

	assert.Equal(t, gate.ScreenVaultSetup, r.Screen())
	assert.Contains(t, r.View(), "PIN must be at least 4 characters")
}

func TestRootModel_VaultSetupUnlocksAndOpensHome(t *testing.T) {
	g := newTestGates(t, "")
	r := vaultRoot(t, g, models.VaultStatus{State: models.VaultStateNotExists}, nil)

	gomock.InOrder(
		g.backend.EXPECT().SetupVault(gomock.Any(), "2468").Return(nil),
		g.backend.EXPECT().UnlockVault(gomock.Any(), "2468").Return(nil),
		g.backend.EXPECT().VaultStatus(gomock.Any()).Return(unlockedVault(), nil),
	)

	setup := r.current.(*VaultSetupModel)
	setup.form.inputs[0].SetValue("2468")
	setup.form.inputs[1].SetValue("2468")
	setup.form.focusNext()

	r, cmd := update(t, r, press("enter"))
	r = feed(t, r, cmd)

	assert.Equal(t, gate.ScreenHome, r.Screen())
}

func TestRootModel_VaultUnlockRejected(t *testing.T) {
	g := newTestGates(t, "")
	r := vaultRoot(t, g, models.VaultStatus{State: models.VaultStateLocked, VaultExists: true}, nil)
	require.Equal(t, gate.ScreenVaultUnlock, r.Screen())

	g.backend.EXPECT().UnlockVault(gomock.Any(), "0000").
		Return(&adapter.ResponseError{Kind: adapter.ErrRequestFailed, Status: 200, Body: models.ErrorBody{Message: "Invalid PIN"}})

	r.current.(*VaultUnlockModel).form.inputs[0].SetValue("0000")
	r, cmd := update(t, r, press("enter"))
	r = feed(t, r, cmd)

	assert.Equal(t, gate.ScreenVaultUnlock, r.Screen())
	assert.Contains(t, r.View(), "Vault rejected the PIN")
	assert.Empty(t, r.current.(*VaultUnlockModel).form.value(0))
}

func TestRootModel_UnreachableVaultShowsRecovery(t *testing.T) {
	g := newTestGates(t, "")
	r := vaultRoot(t, g, models.VaultStatus{}, fmt.Errorf("%w: connection refused", adapter.ErrUnreachable))

	assert.Equal(t, gate.ScreenVaultRecovery, r.Screen())
	assert.Contains(t, r.View(), msgBackendUnreachable)
}

func TestRootModel_RecoveryRequiresConfirmation(t *testing.T) {
	g := newTestGates(t, "")
	r := vaultRoot(t, g, models.UnavailableVaultStatus(), nil)
	require.Equal(t, gate.ScreenVaultRecovery, r.Screen())

	r, cmd := update(t, r, press("x"))
	assert.Nil(t, cmd)
	assert.Contains(t, r.View(), "Archive the corrupted vault")

	// "n" closes the dialog without a call
	r, cmd = update(t, r, press("n"))
	assert.Nil(t, cmd)
	assert.NotContains(t, r.View(), "Archive the corrupted vault")

	gomock.InOrder(
		g.backend.EXPECT().RecoverVault(gomock.Any()).Return(nil),
		g.backend.EXPECT().VaultStatus(gomock.Any()).Return(models.VaultStatus{State: models.VaultStateNotExists}, nil),
	)

	r, _ = update(t, r, press("x"))
	r, cmd = update(t, r, press("y"))
	r = feed(t, r, cmd)

	assert.Equal(t, gate.ScreenVaultSetup, r.Screen())
}

func TestVaultRecoveryModel_EmergencyExport(t *testing.T) {
	t.Run("archive is saved", func(t *testing.T) {
		g := newTestGates(t, "")
		dir := t.TempDir()
		m := NewVaultRecoveryModel(context.Background(), g.ctrl, dir)

		g.backend.EXPECT().EmergencyExport(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, w io.Writer) (int64, error) {
				n, err := w.Write([]byte("PK\x03\x04archive"))
				return int64(n), err
			})

		_, cmd := m.Update(press("e"))
		msgs := runCmd(t, cmd)
		require.Len(t, msgs, 1)
		done, ok := msgs[0].(exportDoneMsg)
		require.True(t, ok)
		require.NoError(t, done.err)

		data, err := os.ReadFile(done.path)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("PK")))
		assert.Equal(t, dir, filepath.Dir(done.path))

		m.Update(done)
		assert.Contains(t, m.View(), "Saved 11 bytes")
	})

	t.Run("no files removes the empty export", func(t *testing.T) {
		g := newTestGates(t, "")
		dir := t.TempDir()
		m := NewVaultRecoveryModel(context.Background(), g.ctrl, dir)

		g.backend.EXPECT().EmergencyExport(gomock.Any(), gomock.Any()).
			Return(int64(0), &adapter.ResponseError{Kind: adapter.ErrNotFound, Status: 404})

		_, cmd := m.Update(press("e"))
		msgs := runCmd(t, cmd)
		require.Len(t, msgs, 1)
		m.Update(msgs[0])

		assert.Contains(t, m.View(), "No vault files found to export")
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestEmergencyExportName(t *testing.T) {
	now := time.Date(2026, 10, 16, 9, 30, 5, 0, time.UTC)
	assert.Equal(t, "mylife-emergency-export-20261016_093005.zip", emergencyExportName(now))
}

// ─────────────────────────────────────────────
// Home area
// ─────────────────────────────────────────────

func homeRoot(t *testing.T, g testGates) RootModel {
	t.Helper()
	r := vaultRoot(t, g, unlockedVault(), nil)
	require.Equal(t, gate.ScreenHome, r.Screen())
	return r
}

func TestRootModel_LockVaultRequestsReload(t *testing.T) {
	g := newTestGates(t, "")
	r := homeRoot(t, g)
	g.backend.EXPECT().LockVault(gomock.Any()).Return(nil)

	r, _ = update(t, r, press("down"))
	r, _ = update(t, r, press("down"))
	r, cmd := update(t, r, press("enter"))

	msgs := runCmd(t, cmd)
	require.Len(t, msgs, 1)
	require.IsType(t, reloadMsg{}, msgs[0])

	r, cmd = update(t, r, msgs[0])
	assert.True(t, r.reload)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestRootModel_LockVaultFailureStaysHome(t *testing.T) {
	g := newTestGates(t, "")
	r := homeRoot(t, g)
	g.backend.EXPECT().LockVault(gomock.Any()).Return(fmt.Errorf("%w: refused", adapter.ErrUnreachable))

	r, _ = update(t, r, press("down"))
	r, _ = update(t, r, press("down"))
	r, cmd := update(t, r, press("enter"))
	r = feed(t, r, cmd)

	assert.Equal(t, gate.ScreenHome, r.Screen())
	assert.False(t, r.reload)
	assert.Contains(t, r.View(), msgBackendUnreachable)
}

func TestRootModel_NavigateInsideHome(t *testing.T) {
	g := newTestGates(t, "")
	r := homeRoot(t, g)

	r, cmd := update(t, r, NavigateTo{Page: pageSync})
	assert.NotNil(t, cmd)
	assert.IsType(t, &SyncModel{}, r.current)

	r, cmd = update(t, r, press("esc"))
	msgs := runCmd(t, cmd)
	require.Len(t, msgs, 1)
	r, _ = update(t, r, msgs[0])
	assert.IsType(t, &HomeModel{}, r.current)
}

func TestRootModel_NavigateIgnoredBehindGates(t *testing.T) {
	g := newTestGates(t, "")
	r := newTestRoot(t, g)

	r, cmd := update(t, r, NavigateTo{Page: pageSync})

	assert.Nil(t, cmd)
	assert.Equal(t, gate.ScreenTerminal, r.Screen())
	assert.IsType(t, &TerminalModel{}, r.current)
}

func TestRootModel_BuildInfoWindow(t *testing.T) {
	g := newTestGates(t, "")
	r := homeRoot(t, g)

	r, _ = update(t, r, press("v"))
	view := r.View()
	assert.Contains(t, view, "ABOUT")
	assert.Contains(t, view, "1.4.0")
	assert.Contains(t, view, "9f3c2ab")

	// other keys are swallowed while the window is open
	r, _ = update(t, r, press("down"))
	assert.Equal(t, 0, r.current.(*HomeModel).idx)

	r, _ = update(t, r, press("esc"))
	assert.False(t, strings.Contains(r.View(), "ABOUT"))
}

func TestRootModel_CtrlCQuits(t *testing.T) {
	g := newTestGates(t, "")
	r := newTestRoot(t, g)

	r, cmd := update(t, r, press("ctrl+c"))

	assert.True(t, r.quitByUser)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
