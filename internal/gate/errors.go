// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package gate

import "errors"

var (
	// ErrPassphraseRequired is returned for an empty terminal passphrase.
	ErrPassphraseRequired = errors.New("passphrase is required")
	// ErrPassphraseTooLong is returned when the passphrase exceeds
	// [MaxTerminalPassphraseLength] characters.
	ErrPassphraseTooLong = errors.New("passphrase is too long")
	// ErrWrongPassphrase is returned when a configured hash does not match.
	ErrWrongPassphrase = errors.New("wrong passphrase")

	// ErrWrongPIN is returned by [AppLockGate.SubmitPIN] for a PIN whose
	// hash differs from the stored one.
	ErrWrongPIN = errors.New("incorrect PIN")
	// ErrAppLockUnchecked is returned when a PIN is submitted before the
	// stored configuration was read.
	ErrAppLockUnchecked = errors.New("app lock not checked yet")

	// ErrVaultUnlockRejected wraps the backend refusal of a vault PIN.
	ErrVaultUnlockRejected = errors.New("vault unlock rejected")
	// ErrVaultSetupRejected wraps the backend refusal of a vault setup.
	ErrVaultSetupRejected = errors.New("vault setup rejected")
	// ErrNoVaultFiles is returned by the emergency export when the backend
	// has nothing to archive.
	ErrNoVaultFiles = errors.New("no vault files found")
)
