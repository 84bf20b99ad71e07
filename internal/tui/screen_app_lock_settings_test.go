package tui

import (
	"context"
	"testing"

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

func newTestAppLockSettings(t *testing.T, cfg models.AppLockConfig) (*AppLockSettingsModel, *mock.MockAppLockRepository, *store.MemorySessionStore) {
	t.Helper()
	repo := mock.NewMockAppLockRepository(gomock.NewController(t))
	session := store.NewMemorySessionStore()
	svc := service.NewAppLockSettingsService(repo, session, validators.NewPINValidator(), logger.Nop())
	m := NewAppLockSettingsModel(context.Background(), svc)

	repo.EXPECT().Load(gomock.Any()).Return(cfg, nil)
	for _, msg := range runCmd(t, m.Init()) {
		m.Update(msg)
	}
	require.True(t, m.loaded)
	return m, repo, session
}

// submit fills the open form and presses enter on its last field.
func submit(t *testing.T, m *AppLockSettingsModel, values ...string) {
	t.Helper()
	require.Len(t, values, len(m.form.inputs))
	for i, v := range values {
		m.form.inputs[i].SetValue(v)
	}
	for !m.form.onLast() {
		m.form.focusNext()
	}

	_, cmd := m.Update(press("enter"))
	drain(t, m, cmd)
}

// drain delivers every message cmd produces, then the messages of the
// commands those updates return, until nothing is left.
func drain(t *testing.T, m *AppLockSettingsModel, cmd tea.Cmd) {
	t.Helper()
	pending := []tea.Cmd{cmd}
	for len(pending) > 0 {
		next := pending[0]
		pending = pending[1:]
		for _, msg := range runCmd(t, next) {
			_, more := m.Update(msg)
			if more != nil {
				pending = append(pending, more)
			}
		}
	}
}

func TestAppLockSettingsModel_SetPIN(t *testing.T) {
	m, repo, session := newTestAppLockSettings(t, models.AppLockConfig{})
	assert.Contains(t, m.View(), "s: set PIN")

	// change and disable need an enabled lock
	m.Update(press("d"))
	assert.Equal(t, appLockActionNone, m.action)

	m.Update(press("s"))
	require.Equal(t, appLockActionSet, m.action)

	hash := gate.HashPIN("1234")
	enabled := models.AppLockConfig{Enabled: true, PINHash: &hash}
	gomock.InOrder(
		repo.EXPECT().Load(gomock.Any()).Return(models.AppLockConfig{}, nil),
		repo.EXPECT().Save(gomock.Any(), enabled).Return(nil),
		repo.EXPECT().Load(gomock.Any()).Return(enabled, nil),
	)

	submit(t, m, "1234", "1234")

	assert.Equal(t, appLockActionNone, m.action)
	assert.True(t, m.cfg.Enabled)
	assert.True(t, store.GetFlag(session, store.KeySessionUnlocked))
	view := m.View()
	assert.Contains(t, view, "App lock enabled")
	assert.Contains(t, view, "c: change PIN │ d: disable")
}

func TestAppLockSettingsModel_Errors(t *testing.T) {
	hash := gate.HashPIN("1234")
	enabled := models.AppLockConfig{Enabled: true, PINHash: &hash}

	tests := []struct {
		name   string
		cfg    models.AppLockConfig
		open   string
		values []string
		want   string
	}{
		{name: "mismatch", cfg: models.AppLockConfig{}, open: "s", values: []string{"1234", "4321"}, want: "PINs do not match"},
		{name: "too short", cfg: models.AppLockConfig{}, open: "s", values: []string{"12", "12"}, want: "PIN must be 4 to 6 characters"},
		{name: "wrong current on change", cfg: enabled, open: "c", values: []string{"0000", "5678", "5678"}, want: "Current PIN is incorrect"},
		{name: "wrong current on disable", cfg: enabled, open: "d", values: []string{"0000"}, want: "Current PIN is incorrect"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, repo, _ := newTestAppLockSettings(t, tt.cfg)
			repo.EXPECT().Load(gomock.Any()).Return(tt.cfg, nil)

			m.Update(press(tt.open))
			require.NotEqual(t, appLockActionNone, m.action)
			submit(t, m, tt.values...)

			assert.NotEqual(t, appLockActionNone, m.action, "the form stays open")
			assert.Contains(t, m.View(), tt.want)
		})
	}
}

func TestAppLockSettingsModel_DisableKeepsHash(t *testing.T) {
	hash := gate.HashPIN("1234")
	enabled := models.AppLockConfig{Enabled: true, PINHash: &hash}
	disabled := models.AppLockConfig{Enabled: false, PINHash: &hash}

	m, repo, _ := newTestAppLockSettings(t, enabled)
	gomock.InOrder(
		repo.EXPECT().Load(gomock.Any()).Return(enabled, nil),
		repo.EXPECT().Save(gomock.Any(), disabled).Return(nil),
		repo.EXPECT().Load(gomock.Any()).Return(disabled, nil),
	)

	m.Update(press("d"))
	submit(t, m, "1234")

	assert.False(t, m.cfg.Enabled)
	assert.Contains(t, m.View(), "App lock disabled")
}

func TestAppLockSettingsModel_EscCancelsThenLeaves(t *testing.T) {
	m, _, _ := newTestAppLockSettings(t, models.AppLockConfig{})

	m.Update(press("s"))
	_, cmd := m.Update(press("esc"))
	assert.Nil(t, cmd)
	assert.Equal(t, appLockActionNone, m.action)

	_, cmd = m.Update(press("esc"))
	msgs := runCmd(t, cmd)
	require.Len(t, msgs, 1)
	assert.Equal(t, NavigateTo{Page: pageHome}, msgs[0])
}
