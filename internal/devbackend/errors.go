// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package devbackend

import (
	"errors"

	"github.com/MKhiriev/mylife-client/internal/app"
)

// Vault lifecycle errors. Their text is what the handlers send back to the
// client, so it matches the message constants in internal/app.
var (
	ErrPINTooShort         = errors.New(app.MsgPINTooShort)
	ErrVaultAlreadyExists  = errors.New(app.MsgVaultAlreadyExists)
	ErrVaultNotInitialized = errors.New(app.MsgVaultNotInitialized)
	ErrInvalidPIN          = errors.New(app.MsgInvalidPIN)
	ErrVaultNotUnlocked    = errors.New("Vault is not unlocked")
	ErrNoVaultFiles        = errors.New(app.MsgNoVaultFilesToExport)

	// ErrVaultUnavailable and ErrVaultLocked are returned by Guard.
	ErrVaultUnavailable = errors.New(app.MsgVaultUnavailable)
	ErrVaultLocked      = errors.New(app.MsgVaultLocked)
)

// Sync errors.
var (
	ErrNoRemoteSnapshot    = errors.New(app.MsgNoRemoteSnapshot)
	ErrConflict            = errors.New(app.MsgLocalChangesExist)
	ErrMergeNotImplemented = errors.New(app.MsgMergeNotImplemented)
	ErrInvalidStrategy     = errors.New(app.MsgInvalidStrategy)
)
