// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store holds the client's local state.
//
// Durable settings (the app-lock configuration) live behind
// [SettingsRepository], implemented over SQLite (default) or bbolt.
// Session-scoped flags live in [MemorySessionStore] and vanish with the
// process. [AppLockRepository] maps the fixed settings keys onto
// [models.AppLockConfig].
package store

import (
	"context"

	"github.com/MKhiriev/mylife-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// SettingsRepository is a durable string key/value store.
type SettingsRepository interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set creates or replaces the value for key.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the underlying database.
	Close() error
}

// SessionStore keeps flags for the lifetime of the process.
type SessionStore interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// AppLockRepository persists [models.AppLockConfig].
type AppLockRepository interface {
	// Load returns the stored config. Nothing stored yields a disabled
	// config without a hash.
	Load(ctx context.Context) (models.AppLockConfig, error)
	// Save persists cfg. It refuses configs that fail validation.
	Save(ctx context.Context, cfg models.AppLockConfig) error
}
