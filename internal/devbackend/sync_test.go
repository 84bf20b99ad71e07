package devbackend

import (
	"testing"

	"github.com/MKhiriev/mylife-client/internal/app"
	"github.com/MKhiriev/mylife-client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackend_SyncStatus_Fresh(t *testing.T) {
	b := newTestBackend(t)

	s := b.SyncStatus()

	assert.Len(t, s.DeviceID, 36)
	assert.True(t, s.DriveConnected)
	assert.Nil(t, s.LastPushAt)
	assert.Nil(t, s.LastPullAt)
	assert.Empty(t, s.DriveLastBackup)
}

func TestBackend_PushRecordsBase(t *testing.T) {
	b := unlockedBackend(t)

	require.NoError(t, b.Push())

	s := b.SyncStatus()
	require.NotNil(t, s.LastPushAt)
	assert.Equal(t, b.now(), s.LastPushAt.Time)
	assert.Equal(t, hashOf(b.vault), s.LastSyncHash)
	assert.Equal(t, "MyLife-snapshot-20261016_093000.zip", s.DriveLastBackup)
	assert.Empty(t, b.Conflicts())
}

func TestBackend_PullWithoutRemote(t *testing.T) {
	b := unlockedBackend(t)

	assert.ErrorIs(t, b.Pull(), ErrNoRemoteSnapshot)
	assert.Equal(t, app.MsgNoRemoteSnapshot, b.SyncStatus().LastError)
}

func TestBackend_PullUnchangedVault(t *testing.T) {
	b := unlockedBackend(t)
	require.NoError(t, b.Push())

	require.NoError(t, b.Pull())
	assert.NotNil(t, b.SyncStatus().LastPullAt)
}

func TestBackend_ConflictThenKeepLocal(t *testing.T) {
	b := unlockedBackend(t)
	require.NoError(t, b.Push())
	require.NoError(t, b.Edit("new entry"))
	edited := string(b.vault)

	assert.ErrorIs(t, b.Pull(), ErrConflict)
	assert.Equal(t, edited, string(b.vault), "conflicting pull must not touch local data")
	assert.Nil(t, b.SyncStatus().LastPullAt)

	conflicts := b.Conflicts()
	require.Len(t, conflicts, 1)
	assert.Equal(t, models.ConflictTypeVaultModified, conflicts[0].Type)
	assert.Equal(t, app.MsgLocalVaultModified, conflicts[0].Message)
	assert.Equal(t, hashOf(b.vault), conflicts[0].LocalHash)

	msg, err := b.Resolve(models.StrategyKeepLocal)
	require.NoError(t, err)
	assert.Equal(t, app.MsgKeptLocal, msg)
	assert.Empty(t, b.Conflicts())

	require.NoError(t, b.Pull())
	assert.Equal(t, b.remote.hash, hashOf(b.vault))
}

func TestBackend_ConflictThenUseRemote(t *testing.T) {
	b := unlockedBackend(t)
	require.NoError(t, b.Push())
	pushed := string(b.vault)
	require.NoError(t, b.Edit("new entry"))
	require.ErrorIs(t, b.Pull(), ErrConflict)

	msg, err := b.Resolve(models.StrategyUseRemote)
	require.NoError(t, err)
	assert.Equal(t, app.MsgUsedRemote, msg)

	assert.Equal(t, pushed, string(b.vault))
	assert.Empty(t, b.Conflicts())
}

func TestBackend_ResolveErrors(t *testing.T) {
	tests := []struct {
		name     string
		strategy models.ResolveStrategy
		wantErr  error
	}{
		{name: "merge", strategy: models.StrategyMerge, wantErr: ErrMergeNotImplemented},
		{name: "unknown", strategy: "theirs", wantErr: ErrInvalidStrategy},
		{name: "use_remote without remote", strategy: models.StrategyUseRemote, wantErr: ErrNoRemoteSnapshot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := unlockedBackend(t)

			_, err := b.Resolve(tt.strategy)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
