// Package crypto seals the devserver vault file.
//
// A key is derived from the vault PIN and a random salt with Argon2id; the
// vault content is then encrypted with AES-256-GCM under that key. Only the
// salt and the sealed blob are ever kept at rest, which is what the
// emergency export hands out.
package crypto

// VaultSealer derives vault keys and seals vault content.
//
//	salt   = NewSalt()
//	key    = DeriveKey(pin, salt)
//	sealed = Seal(content, key)
//	content, err = Open(sealed, key)   // ErrWrongKey for a wrong PIN
type VaultSealer interface {
	// NewSalt returns 16 random bytes. The salt is not secret.
	NewSalt() ([]byte, error)

	// DeriveKey stretches pin into a 256-bit key. Same inputs give the
	// same key.
	DeriveKey(pin string, salt []byte) []byte

	// Seal encrypts plaintext with key. The blob is nonce || ciphertext.
	Seal(plaintext, key []byte) ([]byte, error)

	// Open reverses Seal. A wrong key or a tampered blob yields
	// [ErrWrongKey].
	Open(sealed, key []byte) ([]byte, error)
}
