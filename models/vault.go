// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// VaultState is the lifecycle state reported by the backend for the
// encrypted vault.
type VaultState string

const (
	// VaultStateUnavailable means the vault cannot be opened at all
	// (missing salt, corrupted database, unreachable backend).
	VaultStateUnavailable VaultState = "UNAVAILABLE"
	// VaultStateNotExists means no vault has been created yet.
	VaultStateNotExists VaultState = "NOT_EXISTS"
	// VaultStateLocked means the vault exists and is encrypted at rest.
	VaultStateLocked VaultState = "LOCKED"
	// VaultStateUnlocked means the vault is decrypted for this backend run.
	VaultStateUnlocked VaultState = "UNLOCKED"
)

// Valid reports whether s is one of the known vault states.
func (s VaultState) Valid() bool {
	switch s {
	case VaultStateUnavailable, VaultStateNotExists, VaultStateLocked, VaultStateUnlocked:
		return true
	default:
		return false
	}
}

// VaultStatus is the snapshot returned by GET /vault/status.
//
// The client never mutates it. A fresh copy is fetched once per application
// start and after every setup, unlock, lock or recover call.
type VaultStatus struct {
	State       VaultState `json:"state"`
	VaultExists bool       `json:"vault_exists"`
	IsUnlocked  bool       `json:"is_unlocked"`
}

// UnavailableVaultStatus is the status assumed when the backend cannot be
// reached or answers with something that cannot be interpreted.
func UnavailableVaultStatus() VaultStatus {
	return VaultStatus{State: VaultStateUnavailable}
}

// PINRequest is the body of POST /vault/setup and POST /vault/unlock.
type PINRequest struct {
	PIN string `json:"pin"`
}

// MessageData is the common data payload of mutating endpoints.
type MessageData struct {
	Message string `json:"message"`
}
