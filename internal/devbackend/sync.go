package devbackend

import (
	"bytes"
	"fmt"
	"time"

	"github.com/MKhiriev/mylife-client/internal/app"
	"github.com/MKhiriev/mylife-client/models"
)

// SyncStatus reports the device synchronisation state. It needs no
// unlocked vault.
func (b *Backend) SyncStatus() models.SyncState {
	b.mu.Lock()
	defer b.mu.Unlock()

	state := models.SyncState{
		DeviceID:       b.sync.deviceID,
		DriveConnected: true,
		LastPushAt:     stamp(b.sync.lastPushAt),
		LastPullAt:     stamp(b.sync.lastPullAt),
		LastSyncHash:   b.sync.lastSyncHash,
		LastError:      b.sync.lastError,
	}
	if b.remote != nil {
		state.DriveLastBackup = b.remote.name
	}
	return state
}

func stamp(t *time.Time) *models.Timestamp {
	if t == nil {
		return nil
	}
	return models.NewTimestamp(*t)
}

// Push stores a copy of the vault as the remote snapshot and makes its hash
// the synchronisation base.
func (b *Backend) Push() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.exists || b.vault == nil {
		b.sync.lastError = ErrNoVaultFiles.Error()
		return ErrNoVaultFiles
	}

	now := b.now()
	hash := hashOf(b.vault)
	b.remote = &snapshot{
		data:     bytes.Clone(b.vault),
		hash:     hash,
		name:     fmt.Sprintf("MyLife-snapshot-%s.zip", now.UTC().Format("20060102_150405")),
		pushedAt: now,
	}
	b.sync.lastSyncHash = hash
	b.sync.lastPushAt = &now
	b.sync.lastError = ""

	b.logger.Info().Str("sync_hash", hash).Msg("snapshot pushed")
	return nil
}

// Pull applies the remote snapshot. It returns ErrConflict and changes
// nothing when the local vault was modified since the last sync and differs
// from the remote one.
func (b *Backend) Pull() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.remote == nil {
		b.sync.lastError = ErrNoRemoteSnapshot.Error()
		return ErrNoRemoteSnapshot
	}

	if err := b.importLocked(b.remote, true); err != nil {
		return err
	}

	now := b.now()
	b.sync.lastPullAt = &now
	b.sync.lastError = ""
	return nil
}

func (b *Backend) importLocked(snap *snapshot, detect bool) error {
	current := b.currentHashLocked()
	if detect && b.exists && current != snap.hash &&
		b.sync.lastSyncHash != "" && b.sync.lastSyncHash != current {
		b.logger.Warn().
			Str("local_hash", current).
			Str("remote_hash", snap.hash).
			Msg("pull conflict")
		return ErrConflict
	}

	if err := b.storeLocked(bytes.Clone(snap.data)); err != nil {
		return err
	}
	b.exists = true
	b.sync.lastSyncHash = snap.hash

	b.logger.Info().Str("sync_hash", snap.hash).Msg("snapshot imported")
	return nil
}

// Conflicts lists the detected conflicts: at most one vault_modified entry.
func (b *Backend) Conflicts() []models.Conflict {
	b.mu.Lock()
	defer b.mu.Unlock()

	current := b.currentHashLocked()
	if b.sync.lastSyncHash == "" || b.sync.lastSyncHash == current {
		return []models.Conflict{}
	}

	return []models.Conflict{{
		Type:         models.ConflictTypeVaultModified,
		Message:      app.MsgLocalVaultModified,
		LocalHash:    current,
		LastSyncHash: b.sync.lastSyncHash,
	}}
}

// Resolve settles pending conflicts with strategy and returns the success
// message.
func (b *Backend) Resolve(strategy models.ResolveStrategy) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch strategy {
	case models.StrategyKeepLocal:
		b.sync.lastSyncHash = b.currentHashLocked()
		return app.MsgKeptLocal, nil

	case models.StrategyUseRemote:
		if b.remote == nil {
			return "", ErrNoRemoteSnapshot
		}
		if err := b.importLocked(b.remote, false); err != nil {
			return "", err
		}
		return app.MsgUsedRemote, nil

	case models.StrategyMerge:
		return "", ErrMergeNotImplemented

	default:
		return "", ErrInvalidStrategy
	}
}
