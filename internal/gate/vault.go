// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package gate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/MKhiriev/mylife-client/internal/adapter"
	"github.com/MKhiriev/mylife-client/internal/logger"
	"github.com/MKhiriev/mylife-client/internal/validators"
	"github.com/MKhiriev/mylife-client/models"
)

// VaultRoute is where the vault lifecycle sends the user.
type VaultRoute string

const (
	RouteUnavailable    VaultRoute = "UNAVAILABLE"
	RouteSetupRequired  VaultRoute = "SETUP_REQUIRED"
	RouteUnlockRequired VaultRoute = "UNLOCK_REQUIRED"
	RouteReady          VaultRoute = "READY"
)

// DeriveVaultRoute maps a vault status to a route. The first matching rule
// wins and UNAVAILABLE always wins.
func DeriveVaultRoute(status models.VaultStatus) VaultRoute {
	switch {
	case status.State == models.VaultStateUnavailable:
		return RouteUnavailable
	case !status.VaultExists:
		return RouteSetupRequired
	case !status.IsUnlocked && status.State == models.VaultStateLocked:
		return RouteUnlockRequired
	default:
		return RouteReady
	}
}

// VaultAccessController fetches the vault status once per start and drives
// the setup, unlock, lock and recovery calls. It does not poll.
type VaultAccessController struct {
	backend   adapter.BackendAdapter
	validator validators.Validator

	mu        sync.Mutex
	evaluated bool
	status    models.VaultStatus
	route     VaultRoute

	logger *logger.Logger
}

func NewVaultAccessController(backend adapter.BackendAdapter, validator validators.Validator, logger *logger.Logger) *VaultAccessController {
	return &VaultAccessController{
		backend:   backend,
		validator: validator,
		status:    models.UnavailableVaultStatus(),
		route:     RouteUnavailable,
		logger:    logger,
	}
}

// Evaluate fetches the status and caches the derived route. Any fetch
// failure, malformed payloads included, yields UNAVAILABLE together with the
// error.
func (c *VaultAccessController) Evaluate(ctx context.Context) (VaultRoute, error) {
	status, err := c.backend.VaultStatus(ctx)
	if err != nil {
		status = models.UnavailableVaultStatus()
	}
	route := DeriveVaultRoute(status)

	c.mu.Lock()
	c.evaluated = true
	c.status = status
	c.route = route
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn().Err(err).Str("route", string(route)).Msg("vault status unavailable")
		return route, fmt.Errorf("fetch vault status: %w", err)
	}

	c.logger.Info().
		Str("route", string(route)).
		Str("state", string(status.State)).
		Msg("vault evaluated")
	return route, nil
}

// Evaluated reports whether Evaluate ran at least once.
func (c *VaultAccessController) Evaluated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evaluated
}

// Route returns the cached route.
func (c *VaultAccessController) Route() VaultRoute {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.route
}

// Status returns the cached vault status.
func (c *VaultAccessController) Status() models.VaultStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Setup validates the PIN pair locally, creates the vault, unlocks it with
// the same PIN and re-evaluates. Validation failures issue no call.
func (c *VaultAccessController) Setup(ctx context.Context, pin, confirm string) (VaultRoute, error) {
	input := models.VaultSetupInput{PIN: pin, Confirm: confirm}
	if err := c.validator.Validate(ctx, input); err != nil {
		return c.Route(), err
	}

	if err := c.backend.SetupVault(ctx, pin); err != nil {
		c.logger.Err(err).Str("func", "*VaultAccessController.Setup").Msg("vault setup failed")
		return c.Route(), rejectErr(ErrVaultSetupRejected, err)
	}

	if err := c.backend.UnlockVault(ctx, pin); err != nil {
		c.logger.Err(err).Str("func", "*VaultAccessController.Setup").Msg("unlock after setup failed")
		return c.Route(), rejectErr(ErrVaultUnlockRejected, err)
	}

	return c.Evaluate(ctx)
}

// Unlock submits pin to the backend and re-evaluates on success. A refused
// PIN wraps [ErrVaultUnlockRejected] and is never retried.
func (c *VaultAccessController) Unlock(ctx context.Context, pin string) (VaultRoute, error) {
	if pin == "" {
		return c.Route(), validators.ErrPINRequired
	}

	if err := c.backend.UnlockVault(ctx, pin); err != nil {
		c.logger.Warn().Err(err).Msg("vault unlock failed")
		return c.Route(), rejectErr(ErrVaultUnlockRejected, err)
	}

	return c.Evaluate(ctx)
}

// Lock re-locks the vault. The caller is expected to reload the whole
// application afterwards.
func (c *VaultAccessController) Lock(ctx context.Context) error {
	if err := c.backend.LockVault(ctx); err != nil {
		c.logger.Err(err).Str("func", "*VaultAccessController.Lock").Msg("vault lock failed")
		return fmt.Errorf("lock vault: %w", err)
	}

	c.mu.Lock()
	c.evaluated = false
	c.mu.Unlock()

	c.logger.Info().Msg("vault locked")
	return nil
}

// Recover archives a corrupted vault and re-evaluates. The expected route
// afterwards is SETUP_REQUIRED.
func (c *VaultAccessController) Recover(ctx context.Context) (VaultRoute, error) {
	if err := c.backend.RecoverVault(ctx); err != nil {
		c.logger.Err(err).Str("func", "*VaultAccessController.Recover").Msg("vault recovery failed")
		return c.Route(), fmt.Errorf("recover vault: %w", err)
	}

	c.logger.Info().Msg("corrupted vault archived")
	return c.Evaluate(ctx)
}

// EmergencyExport streams the archive of the raw encrypted vault files into w.
func (c *VaultAccessController) EmergencyExport(ctx context.Context, w io.Writer) (int64, error) {
	n, err := c.backend.EmergencyExport(ctx, w)
	if errors.Is(err, adapter.ErrNotFound) {
		return n, ErrNoVaultFiles
	}
	if err != nil {
		return n, fmt.Errorf("emergency export: %w", err)
	}
	return n, nil
}

// rejectErr marks a refusal by the backend with kind. Transport failures
// pass through unchanged.
func rejectErr(kind, err error) error {
	if errors.Is(err, adapter.ErrUnreachable) {
		return err
	}
	return fmt.Errorf("%w: %w", kind, err)
}
