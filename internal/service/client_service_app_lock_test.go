package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/mylife-client/internal/gate"
	"github.com/MKhiriev/mylife-client/internal/logger"
	"github.com/MKhiriev/mylife-client/internal/mock"
	"github.com/MKhiriev/mylife-client/internal/store"
	"github.com/MKhiriev/mylife-client/internal/validators"
	"github.com/MKhiriev/mylife-client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func strPtr(s string) *string { return &s }

func newTestAppLockSvc(t *testing.T) (AppLockSettingsService, *mock.MockAppLockRepository, *store.MemorySessionStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock.NewMockAppLockRepository(ctrl)
	session := store.NewMemorySessionStore()
	return NewAppLockSettingsService(repo, session, validators.NewPINValidator(), logger.Nop()), repo, session
}

// ── SetPIN ───────────────────────────────────────────────────────────────────

func TestAppLockSettings_SetPIN(t *testing.T) {
	svc, repo, session := newTestAppLockSvc(t)
	repo.EXPECT().Load(gomock.Any()).Return(models.AppLockConfig{}, nil)
	repo.EXPECT().Save(gomock.Any(), models.AppLockConfig{Enabled: true, PINHash: strPtr("1509442")}).Return(nil)

	require.NoError(t, svc.SetPIN(context.Background(), "1234", "1234"))
	assert.True(t, store.GetFlag(session, store.KeySessionUnlocked))
}

func TestAppLockSettings_SetPIN_Validation(t *testing.T) {
	tests := []struct {
		name    string
		pin     string
		confirm string
		wantErr error
	}{
		{name: "too short", pin: "123", confirm: "123", wantErr: validators.ErrPINTooShort},
		{name: "too long", pin: "1234567", confirm: "1234567", wantErr: validators.ErrPINTooLong},
		{name: "mismatch", pin: "1234", confirm: "4321", wantErr: validators.ErrPINMismatch},
		{name: "empty", wantErr: validators.ErrPINRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, session := newTestAppLockSvc(t)
			repo.EXPECT().Load(gomock.Any()).Return(models.AppLockConfig{}, nil)

			err := svc.SetPIN(context.Background(), tt.pin, tt.confirm)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, store.GetFlag(session, store.KeySessionUnlocked))
		})
	}
}

func TestAppLockSettings_SetPIN_AlreadyEnabled(t *testing.T) {
	svc, repo, _ := newTestAppLockSvc(t)
	repo.EXPECT().Load(gomock.Any()).Return(models.AppLockConfig{Enabled: true, PINHash: strPtr("1")}, nil)

	assert.ErrorIs(t, svc.SetPIN(context.Background(), "1234", "1234"), ErrPINAlreadySet)
}

func TestAppLockSettings_SetPIN_SaveError(t *testing.T) {
	svc, repo, session := newTestAppLockSvc(t)
	repo.EXPECT().Load(gomock.Any()).Return(models.AppLockConfig{}, nil)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(assert.AnError)

	assert.ErrorIs(t, svc.SetPIN(context.Background(), "1234", "1234"), assert.AnError)
	assert.False(t, store.GetFlag(session, store.KeySessionUnlocked))
}

// ── ChangePIN ────────────────────────────────────────────────────────────────

func TestAppLockSettings_ChangePIN(t *testing.T) {
	svc, repo, _ := newTestAppLockSvc(t)
	repo.EXPECT().Load(gomock.Any()).Return(models.AppLockConfig{Enabled: true, PINHash: strPtr(gate.HashPIN("1234"))}, nil)
	repo.EXPECT().Save(gomock.Any(), models.AppLockConfig{Enabled: true, PINHash: strPtr(gate.HashPIN("98765"))}).Return(nil)

	require.NoError(t, svc.ChangePIN(context.Background(), "1234", "98765", "98765"))
}

func TestAppLockSettings_ChangePIN_WrongCurrent(t *testing.T) {
	svc, repo, _ := newTestAppLockSvc(t)
	repo.EXPECT().Load(gomock.Any()).Return(models.AppLockConfig{Enabled: true, PINHash: strPtr(gate.HashPIN("1234"))}, nil)

	assert.ErrorIs(t, svc.ChangePIN(context.Background(), "1235", "5555", "5555"), gate.ErrWrongPIN)
}

func TestAppLockSettings_ChangePIN_NoStoredPIN(t *testing.T) {
	svc, repo, _ := newTestAppLockSvc(t)
	repo.EXPECT().Load(gomock.Any()).Return(models.AppLockConfig{}, nil)

	assert.ErrorIs(t, svc.ChangePIN(context.Background(), "", "5555", "5555"), ErrNoStoredPIN)
}

// ── Disable ──────────────────────────────────────────────────────────────────

func TestAppLockSettings_DisableKeepsHash(t *testing.T) {
	svc, repo, _ := newTestAppLockSvc(t)
	hash := strPtr(gate.HashPIN("1234"))
	repo.EXPECT().Load(gomock.Any()).Return(models.AppLockConfig{Enabled: true, PINHash: hash}, nil)
	repo.EXPECT().Save(gomock.Any(), models.AppLockConfig{Enabled: false, PINHash: hash}).Return(nil)

	require.NoError(t, svc.Disable(context.Background(), "1234"))
}

func TestAppLockSettings_Disable_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     models.AppLockConfig
		current string
		wantErr error
	}{
		{name: "not enabled", cfg: models.AppLockConfig{PINHash: strPtr("1")}, current: "1234", wantErr: ErrAppLockNotEnabled},
		{name: "wrong pin", cfg: models.AppLockConfig{Enabled: true, PINHash: strPtr(gate.HashPIN("1234"))}, current: "0000", wantErr: gate.ErrWrongPIN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestAppLockSvc(t)
			repo.EXPECT().Load(gomock.Any()).Return(tt.cfg, nil)

			assert.ErrorIs(t, svc.Disable(context.Background(), tt.current), tt.wantErr)
		})
	}
}

func TestAppLockSettings_ConfigLoadError(t *testing.T) {
	svc, repo, _ := newTestAppLockSvc(t)
	repo.EXPECT().Load(gomock.Any()).Return(models.AppLockConfig{}, assert.AnError)

	_, err := svc.Config(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}
