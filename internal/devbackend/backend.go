package devbackend

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/mylife-client/internal/crypto"
	"github.com/MKhiriev/mylife-client/internal/logger"
	"github.com/MKhiriev/mylife-client/models"
	"github.com/google/uuid"
)

const (
	minPINLength = 4

	vaultFileName = "vault.enc"
	saltFileName  = "salt.bin"
)

// Backend holds the whole devserver state. All methods are safe for
// concurrent use.
type Backend struct {
	mu sync.Mutex

	sealer crypto.VaultSealer

	// salt and sealed are the files at rest. key and vault, the decrypted
	// content, are only held while the vault is unlocked.
	salt        []byte
	sealed      []byte
	key         []byte
	vault       []byte
	exists      bool
	unlocked    bool
	unavailable bool
	// archived keeps the files moved aside by Recover, keyed by file name.
	archived map[string][]byte

	remote *snapshot
	sync   syncState

	now    func() time.Time
	logger *logger.Logger
}

type snapshot struct {
	data     []byte
	hash     string
	name     string
	pushedAt time.Time
}

type syncState struct {
	deviceID     string
	lastPushAt   *time.Time
	lastPullAt   *time.Time
	lastSyncHash string
	lastError    string
}

// New returns an empty backend: no vault, nothing pushed, a fresh device id.
func New(logger *logger.Logger) *Backend {
	return &Backend{
		sealer:   crypto.NewVaultSealer(),
		archived: make(map[string][]byte),
		sync:     syncState{deviceID: uuid.NewString()},
		now:      time.Now,
		logger:   logger,
	}
}

// Status reports the vault lifecycle state.
func (b *Backend) Status() models.VaultStatus {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.statusLocked()
}

func (b *Backend) statusLocked() models.VaultStatus {
	status := models.VaultStatus{VaultExists: b.exists, IsUnlocked: b.unlocked}
	switch {
	case b.unavailable:
		status.State = models.VaultStateUnavailable
		status.IsUnlocked = false
	case !b.exists:
		status.State = models.VaultStateNotExists
	case b.unlocked:
		status.State = models.VaultStateUnlocked
	default:
		status.State = models.VaultStateLocked
	}
	return status
}

// Guard is what the sync routes check before doing anything.
func (b *Backend) Guard() (models.VaultState, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	state := b.statusLocked().State
	switch {
	case b.unavailable:
		return state, ErrVaultUnavailable
	case !b.unlocked:
		return state, ErrVaultLocked
	}
	return state, nil
}

// Setup creates a locked vault protected by pin.
func (b *Backend) Setup(pin string) error {
	if utf8.RuneCountInString(pin) < minPINLength {
		return ErrPINTooShort
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.exists {
		return ErrVaultAlreadyExists
	}

	salt, err := b.sealer.NewSalt()
	if err != nil {
		return err
	}
	content := []byte(fmt.Sprintf("mylife vault created %s\n", b.now().UTC().Format(time.RFC3339Nano)))
	sealed, err := b.sealer.Seal(content, b.sealer.DeriveKey(pin, salt))
	if err != nil {
		return fmt.Errorf("seal vault: %w", err)
	}

	b.salt = salt
	b.sealed = sealed
	b.exists = true
	b.unlocked = false
	b.unavailable = false

	b.logger.Info().Msg("vault setup completed")
	return nil
}

// Unlock opens the vault. Unlocking a vault that was never set up marks it
// UNAVAILABLE.
func (b *Backend) Unlock(pin string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.exists {
		b.unavailable = true
		return ErrVaultNotInitialized
	}
	if b.unavailable {
		return ErrVaultUnavailable
	}

	key := b.sealer.DeriveKey(pin, b.salt)
	content, err := b.sealer.Open(b.sealed, key)
	if errors.Is(err, crypto.ErrWrongKey) {
		b.logger.Warn().Msg("vault unlock rejected")
		return ErrInvalidPIN
	}
	if err != nil {
		b.unavailable = true
		b.logger.Err(err).Msg("vault cannot be opened")
		return ErrVaultUnavailable
	}

	b.key = key
	b.vault = content
	b.unlocked = true
	b.logger.Info().Msg("vault unlocked")
	return nil
}

// Lock closes an unlocked vault.
func (b *Backend) Lock() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.unlocked || b.unavailable {
		return ErrVaultNotUnlocked
	}

	b.closeLocked()
	b.logger.Info().Msg("vault locked")
	return nil
}

// Recover moves the vault and its salt aside under timestamped names and
// resets the state so a new vault can be set up.
func (b *Backend) Recover() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	stamp := b.now().UTC().Format("20060102_150405")
	if b.sealed != nil {
		b.archived[vaultFileName+".corrupt."+stamp] = b.sealed
	}
	if b.salt != nil {
		b.archived[saltFileName+".corrupt."+stamp] = b.salt
	}

	b.closeLocked()
	b.sealed = nil
	b.salt = nil
	b.exists = false
	b.unavailable = false

	b.logger.Info().Str("suffix", stamp).Msg("vault recovered, ready for setup")
	return nil
}

// Corrupt marks the vault UNAVAILABLE, as the real backend does when the
// vault file cannot be decrypted or read.
func (b *Backend) Corrupt() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.unavailable = true
	b.closeLocked()
	b.logger.Warn().Msg("vault marked unavailable")
}

// Edit appends note to the unlocked vault, changing its sync hash.
func (b *Backend) Edit(note string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.unlocked || b.unavailable {
		return ErrVaultLocked
	}

	return b.storeLocked(append(b.vault, []byte(note+"\n")...))
}

// storeLocked replaces the decrypted content and reseals it with the
// unlocked key.
func (b *Backend) storeLocked(content []byte) error {
	if b.key == nil {
		return ErrVaultLocked
	}

	sealed, err := b.sealer.Seal(content, b.key)
	if err != nil {
		return fmt.Errorf("seal vault: %w", err)
	}

	b.sealed = sealed
	b.vault = content
	return nil
}

// closeLocked drops the key and the decrypted content.
func (b *Backend) closeLocked() {
	clear(b.key)
	b.key = nil
	b.vault = nil
	b.unlocked = false
}

func hashOf(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// currentHashLocked is empty when there is no vault.
func (b *Backend) currentHashLocked() string {
	if !b.exists || b.vault == nil {
		return ""
	}
	return hashOf(b.vault)
}
