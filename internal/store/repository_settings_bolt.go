package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MKhiriev/mylife-client/internal/logger"
	bolt "go.etcd.io/bbolt"
)

var settingsBucket = []byte("settings")

// boltSettingsRepository is the bbolt-backed [SettingsRepository]. All
// settings live in a single bucket.
type boltSettingsRepository struct {
	db     *bolt.DB
	logger *logger.Logger
}

// NewBoltSettingsRepository opens (or creates) the bbolt file at path.
func NewBoltSettingsRepository(path string, logger *logger.Logger) (SettingsRepository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create settings dir: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		logger.Err(err).Str("func", "NewBoltSettingsRepository").Msg("error opening bbolt file")
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(settingsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create bucket %s: %w", settingsBucket, err)
	}

	logger.Debug().Str("path", path).Msg("bbolt settings repository opened")
	return &boltSettingsRepository{db: db, logger: logger}, nil
}

func (r *boltSettingsRepository) Get(_ context.Context, key string) (string, bool, error) {
	var (
		value string
		found bool
	)

	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(settingsBucket)
		if b == nil {
			return ErrBucketMissing
		}
		if v := b.Get([]byte(key)); v != nil {
			value, found = string(v), true
		}
		return nil
	})
	if err != nil {
		r.logger.Err(err).Str("func", "*boltSettingsRepository.Get").Str("key", key).Msg("error reading setting")
		return "", false, err
	}

	return value, found, nil
}

func (r *boltSettingsRepository) Set(_ context.Context, key, value string) error {
	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(settingsBucket)
		if b == nil {
			return ErrBucketMissing
		}
		return b.Put([]byte(key), []byte(value))
	})
	if err != nil {
		r.logger.Err(err).Str("func", "*boltSettingsRepository.Set").Str("key", key).Msg("error writing setting")
		return err
	}
	return nil
}

func (r *boltSettingsRepository) Delete(_ context.Context, key string) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(settingsBucket)
		if b == nil {
			return ErrBucketMissing
		}
		return b.Delete([]byte(key))
	})
}

func (r *boltSettingsRepository) Close() error {
	return r.db.Close()
}
