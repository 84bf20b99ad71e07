// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package gate

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// MaxTerminalPassphraseLength bounds the terminal passphrase in characters.
const MaxTerminalPassphraseLength = 30

// TerminalVerifier checks the terminal passphrase locally. Without a
// configured hash any non-empty passphrase is accepted.
type TerminalVerifier struct {
	hash []byte
}

// NewTerminalVerifier returns a verifier for the given bcrypt hash. An empty
// hash disables the comparison.
func NewTerminalVerifier(bcryptHash string) *TerminalVerifier {
	v := &TerminalVerifier{}
	if bcryptHash != "" {
		v.hash = []byte(bcryptHash)
	}
	return v
}

// Verify validates passphrase and, when a hash is configured, compares it.
func (v *TerminalVerifier) Verify(passphrase string) error {
	if passphrase == "" {
		return ErrPassphraseRequired
	}
	if utf8.RuneCountInString(passphrase) > MaxTerminalPassphraseLength {
		return ErrPassphraseTooLong
	}
	if v.hash == nil {
		return nil
	}

	err := bcrypt.CompareHashAndPassword(v.hash, []byte(passphrase))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrWrongPassphrase
	}
	if err != nil {
		return fmt.Errorf("compare terminal passphrase: %w", err)
	}
	return nil
}

// HashTerminalPassphrase returns the bcrypt hash to put into
// APP_TERMINAL_PASSWORD_HASH.
func HashTerminalPassphrase(passphrase string) (string, error) {
	if passphrase == "" {
		return "", ErrPassphraseRequired
	}
	if utf8.RuneCountInString(passphrase) > MaxTerminalPassphraseLength {
		return "", ErrPassphraseTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash terminal passphrase: %w", err)
	}
	return string(hash), nil
}
