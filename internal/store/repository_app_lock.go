package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/mylife-client/internal/logger"
	"github.com/MKhiriev/mylife-client/models"
)

type appLockRepository struct {
	settings SettingsRepository
	logger   *logger.Logger
}

// NewAppLockRepository maps [models.AppLockConfig] onto KeyAppLockEnabled
// and KeyAppPINHash of settings.
func NewAppLockRepository(settings SettingsRepository, logger *logger.Logger) AppLockRepository {
	return &appLockRepository{settings: settings, logger: logger}
}

// Load reads both keys. An enabled flag without a stored hash cannot be
// satisfied by any PIN, so it is loaded as disabled.
func (r *appLockRepository) Load(ctx context.Context) (models.AppLockConfig, error) {
	enabled, _, err := r.settings.Get(ctx, KeyAppLockEnabled)
	if err != nil {
		return models.AppLockConfig{}, fmt.Errorf("read app lock flag: %w", err)
	}

	hash, hasHash, err := r.settings.Get(ctx, KeyAppPINHash)
	if err != nil {
		return models.AppLockConfig{}, fmt.Errorf("read app lock pin hash: %w", err)
	}

	cfg := models.AppLockConfig{Enabled: enabled == valueTrue}
	if hasHash && hash != "" {
		cfg.PINHash = &hash
	}

	if err = cfg.Validate(); err != nil {
		r.logger.Warn().Err(err).Str("func", "*appLockRepository.Load").Msg("app lock enabled without pin hash, treating as disabled")
		cfg.Enabled = false
	}

	return cfg, nil
}

// Save writes the hash before the flag. A nil hash leaves the stored one
// untouched.
func (r *appLockRepository) Save(ctx context.Context, cfg models.AppLockConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAppLockConfig, err)
	}

	if cfg.HasPIN() {
		if err := r.settings.Set(ctx, KeyAppPINHash, *cfg.PINHash); err != nil {
			return fmt.Errorf("write app lock pin hash: %w", err)
		}
	}

	flag := valueFalse
	if cfg.Enabled {
		flag = valueTrue
	}
	if err := r.settings.Set(ctx, KeyAppLockEnabled, flag); err != nil {
		return fmt.Errorf("write app lock flag: %w", err)
	}

	r.logger.Info().Bool("enabled", cfg.Enabled).Msg("app lock config saved")
	return nil
}
