// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer message strings used by the
// development backend handlers and by the client when it interprets backend
// answers.
//
// Keeping them in one place ensures the client matches exactly what the
// backend writes into response bodies.
package app

// Vault guard and lifecycle messages.
const (
	// MsgVaultUnavailable is the guard message for an UNAVAILABLE vault (503).
	MsgVaultUnavailable = "Vault is unavailable"

	// MsgVaultLocked is the guard message for a locked vault (401).
	MsgVaultLocked = "Vault is locked"

	// MsgInvalidPIN is returned by unlock when the PIN does not open the vault.
	MsgInvalidPIN = "Invalid PIN"

	// MsgPINTooShort is returned by setup for a PIN below four characters.
	MsgPINTooShort = "PIN must be at least 4 characters"

	// MsgVaultAlreadyExists is returned by setup when a vault is present.
	MsgVaultAlreadyExists = "Vault already exists"

	// MsgVaultNotInitialized is returned by unlock before setup.
	MsgVaultNotInitialized = "Vault not initialized"

	// MsgNoVaultFilesToExport is the 404 detail of the emergency export.
	MsgNoVaultFilesToExport = "No vault files found to export"

	MsgVaultCreated   = "Vault created successfully"
	MsgVaultUnlocked  = "Vault unlocked successfully"
	MsgVaultLockedOK  = "Vault locked successfully"
	MsgVaultRecovered = "Corrupted vault archived, ready for setup"
)

// Sync messages.
const (
	// MsgConflictDetected is the error message of a pull that found
	// divergent snapshots; the envelope also carries conflict=true.
	MsgConflictDetected = "Conflict detected"

	// MsgLocalChangesExist is the details field of a pull conflict.
	MsgLocalChangesExist = "Conflict detected: local changes exist"

	// MsgLocalVaultModified describes a vault_modified conflict.
	MsgLocalVaultModified = "Local vault has been modified since last sync"

	// MsgNoRemoteSnapshot is returned by pull before anything was pushed.
	MsgNoRemoteSnapshot = "No remote snapshot found"

	// MsgMergeNotImplemented is returned for the merge strategy.
	MsgMergeNotImplemented = "Merge strategy not yet implemented"

	// MsgInvalidStrategy is returned for an unknown resolution strategy.
	MsgInvalidStrategy = "Invalid strategy"

	MsgPushed      = "Pushed snapshot successfully"
	MsgPulled      = "Pulled snapshot successfully"
	MsgKeptLocal   = "Kept local changes"
	MsgUsedRemote  = "Snapshot imported successfully"
	MsgVaultEdited = "Local vault modified"
)

// Generic messages.
const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError is returned for unexpected failures.
	MsgInternalServerError = "internal server error"
)
