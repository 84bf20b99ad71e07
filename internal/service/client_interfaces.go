// Package service holds the client's business logic above the gates: the
// manual sync orchestrator and the app-lock settings, plus the small app
// info service used by the development backend.
package service

import (
	"context"

	"github.com/MKhiriev/mylife-client/models"
)

// SyncSnapshot is what the sync page renders.
type SyncSnapshot struct {
	// Status is the last known sync state; HasStatus is false until the
	// first successful fetch or operation.
	Status    models.SyncState
	HasStatus bool
	// Conflicts lists the known conflicts. Never nil.
	Conflicts []models.Conflict
	// PullBlocked is true after a pull conflict until a resolution call
	// succeeds.
	PullBlocked bool
	// LastError is the message of the last failed operation, empty after a
	// success.
	LastError string
	// Busy is true while push, pull or resolve is in flight.
	Busy bool
}

// SyncOrchestrator drives manual push/pull and conflict resolution. Push,
// pull and resolve share one in-flight flag; a second call while one runs is
// rejected with [ErrSyncInProgress] without reaching the backend.
type SyncOrchestrator interface {
	// Push uploads the local snapshot and refreshes last_push_at. A locked
	// vault yields [ErrVaultLockedForSync].
	Push(ctx context.Context) error

	// Pull applies the remote snapshot. A conflict yields [ErrSyncConflict],
	// records at least one conflict and blocks further pulls with
	// [ErrConflictsPending] until resolved.
	Pull(ctx context.Context) error

	// ResolveConflict applies strategy. A destructive strategy without
	// confirmed yields [ErrConfirmationRequired] and no call. Conflicts and
	// status are re-fetched after every resolution call.
	ResolveConflict(ctx context.Context, strategy models.ResolveStrategy, confirmed bool) error

	// Refresh re-fetches status and conflicts.
	Refresh(ctx context.Context) error

	// Snapshot returns a copy of the current state.
	Snapshot() SyncSnapshot
}

// AppLockSettingsService manages the optional local PIN gate.
type AppLockSettingsService interface {
	// Config returns the stored configuration.
	Config(ctx context.Context) (models.AppLockConfig, error)

	// SetPIN enables the lock with a new PIN and marks the current session
	// unlocked. It refuses when the lock is already enabled.
	SetPIN(ctx context.Context, pin, confirm string) error

	// ChangePIN replaces the PIN after checking current.
	ChangePIN(ctx context.Context, current, pin, confirm string) error

	// Disable turns the lock off after checking current. The hash is kept.
	Disable(ctx context.Context, current string) error
}

// AppInfoService reports build information.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
