package crypto

import "errors"

var (
	// ErrWrongKey is returned by Open when authentication fails.
	ErrWrongKey = errors.New("vault key does not open the vault")
	// ErrSealedTooShort is returned by Open for a blob shorter than a nonce.
	ErrSealedTooShort = errors.New("sealed vault is too short")
)
