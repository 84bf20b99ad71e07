// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer between the client and the
// MyLife backend.
//
// The primary abstraction is [BackendAdapter], which decouples gates and
// services from HTTP. [NewHTTPBackendAdapter] is the resty implementation.
//
// Every failure wraps one of the sentinel errors in errors.go so callers can
// use [errors.Is] (e.g. [ErrUnauthorized] for a locked vault, [ErrConflict]
// for a pull that found divergent snapshots).
package adapter

import (
	"context"
	"io"

	"github.com/MKhiriev/mylife-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/backend_adapter_mock.go -package=mock

// BackendAdapter is the JSON-over-HTTP contract of the backend.
type BackendAdapter interface {
	// Health performs one bounded health check. Any transport failure or
	// non-2xx answer is an error.
	Health(ctx context.Context) error

	// VaultStatus fetches the vault lifecycle state. A payload with a
	// missing field or an unknown state wraps [ErrMalformedResponse].
	VaultStatus(ctx context.Context) (models.VaultStatus, error)

	// SetupVault creates a new vault protected by pin.
	SetupVault(ctx context.Context, pin string) error

	// UnlockVault decrypts the vault. A wrong pin wraps [ErrUnauthorized]
	// or [ErrRequestFailed] depending on the backend.
	UnlockVault(ctx context.Context, pin string) error

	// LockVault re-encrypts the vault and drops the key.
	LockVault(ctx context.Context) error

	// RecoverVault archives a corrupted vault so a new one can be set up.
	RecoverVault(ctx context.Context) error

	// EmergencyExport streams the zip archive of raw encrypted vault files
	// into w and returns the number of bytes written. No files wraps
	// [ErrNotFound].
	EmergencyExport(ctx context.Context, w io.Writer) (int64, error)

	// SyncStatus fetches the device synchronisation state.
	SyncStatus(ctx context.Context) (models.SyncState, error)

	// Push uploads the local snapshot. A locked vault wraps [ErrUnauthorized].
	Push(ctx context.Context) error

	// Pull downloads and applies the remote snapshot. Divergent snapshots
	// wrap [ErrConflict] and leave local data untouched.
	Pull(ctx context.Context) error

	// Conflicts lists the currently detected conflicts.
	Conflicts(ctx context.Context) ([]models.Conflict, error)

	// ResolveConflict applies strategy to the pending conflicts.
	ResolveConflict(ctx context.Context, strategy models.ResolveStrategy) error
}
