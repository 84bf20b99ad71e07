package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/mylife-client/internal/gate"
	"github.com/MKhiriev/mylife-client/internal/logger"
	"github.com/MKhiriev/mylife-client/internal/store"
	"github.com/MKhiriev/mylife-client/internal/validators"
	"github.com/MKhiriev/mylife-client/models"
)

type appLockSettingsService struct {
	repo      store.AppLockRepository
	session   store.SessionStore
	validator validators.Validator

	logger *logger.Logger
}

func NewAppLockSettingsService(repo store.AppLockRepository, session store.SessionStore, validator validators.Validator, logger *logger.Logger) AppLockSettingsService {
	return &appLockSettingsService{
		repo:      repo,
		session:   session,
		validator: validator,
		logger:    logger,
	}
}

func (s *appLockSettingsService) Config(ctx context.Context) (models.AppLockConfig, error) {
	cfg, err := s.repo.Load(ctx)
	if err != nil {
		return models.AppLockConfig{}, fmt.Errorf("load app lock config: %w", err)
	}
	return cfg, nil
}

func (s *appLockSettingsService) SetPIN(ctx context.Context, pin, confirm string) error {
	cfg, err := s.Config(ctx)
	if err != nil {
		return err
	}
	if cfg.Enabled {
		return ErrPINAlreadySet
	}

	return s.store(ctx, pin, confirm)
}

func (s *appLockSettingsService) ChangePIN(ctx context.Context, current, pin, confirm string) error {
	cfg, err := s.Config(ctx)
	if err != nil {
		return err
	}
	if err = checkCurrentPIN(cfg, current); err != nil {
		return err
	}

	return s.store(ctx, pin, confirm)
}

func (s *appLockSettingsService) Disable(ctx context.Context, current string) error {
	cfg, err := s.Config(ctx)
	if err != nil {
		return err
	}
	if !cfg.Enabled {
		return ErrAppLockNotEnabled
	}
	if err = checkCurrentPIN(cfg, current); err != nil {
		return err
	}

	if err = s.repo.Save(ctx, models.AppLockConfig{Enabled: false, PINHash: cfg.PINHash}); err != nil {
		s.logger.Err(err).Str("func", "*appLockSettingsService.Disable").Msg("failed to save app lock config")
		return fmt.Errorf("save app lock config: %w", err)
	}

	s.logger.Info().Msg("app lock disabled")
	return nil
}

// store validates the new PIN pair, enables the lock with its hash and
// marks the running session as unlocked.
func (s *appLockSettingsService) store(ctx context.Context, pin, confirm string) error {
	if err := s.validator.Validate(ctx, models.AppLockPINInput{PIN: pin, Confirm: confirm}); err != nil {
		return err
	}

	hash := gate.HashPIN(pin)
	if err := s.repo.Save(ctx, models.AppLockConfig{Enabled: true, PINHash: &hash}); err != nil {
		s.logger.Err(err).Str("func", "*appLockSettingsService.store").Msg("failed to save app lock config")
		return fmt.Errorf("save app lock config: %w", err)
	}

	store.SetFlag(s.session, store.KeySessionUnlocked, true)
	s.logger.Info().Msg("app lock pin set")
	return nil
}

func checkCurrentPIN(cfg models.AppLockConfig, current string) error {
	if !cfg.HasPIN() {
		return ErrNoStoredPIN
	}
	if gate.HashPIN(current) != *cfg.PINHash {
		return gate.ErrWrongPIN
	}
	return nil
}
