package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/mylife-client/internal/config"
	"github.com/MKhiriev/mylife-client/internal/logger"
)

const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bbolt"
)

// ClientStorages groups the client's local stores.
type ClientStorages struct {
	Settings SettingsRepository
	AppLock  AppLockRepository
	Session  SessionStore
}

// NewClientStorages opens the durable settings store selected by
// cfg.DB.Driver (sqlite runs the goose migrations first) and a fresh
// session store.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Str("driver", cfg.DB.Driver).Msg("creating new storages...")

	var settings SettingsRepository
	switch cfg.DB.Driver {
	case DriverSQLite, "":
		db, err := NewConnectSQLite(ctx, cfg.DB, logger)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}
		if err = db.Migrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		settings = NewSQLSettingsRepository(db, logger)
	case DriverBolt:
		repo, err := NewBoltSettingsRepository(cfg.DB.DSN, logger)
		if err != nil {
			return nil, err
		}
		settings = repo
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.DB.Driver)
	}

	return &ClientStorages{
		Settings: settings,
		AppLock:  NewAppLockRepository(settings, logger),
		Session:  NewMemorySessionStore(),
	}, nil
}

// Close releases the durable store.
func (s *ClientStorages) Close() error {
	return s.Settings.Close()
}
