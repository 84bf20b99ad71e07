// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package gate

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/mylife-client/internal/logger"
	"github.com/MKhiriev/mylife-client/internal/store"
	"github.com/MKhiriev/mylife-client/models"
)

// AppLockState is the state of [AppLockGate].
type AppLockState int

const (
	AppLockUnchecked AppLockState = iota
	AppLockUnlocked
	AppLockLocked
)

func (s AppLockState) String() string {
	switch s {
	case AppLockUnlocked:
		return "UNLOCKED"
	case AppLockLocked:
		return "LOCKED"
	default:
		return "UNCHECKED"
	}
}

// AppLockGate is the optional local PIN gate. It starts UNCHECKED, resolves
// to LOCKED or UNLOCKED on [AppLockGate.Check] and leaves LOCKED only through
// a matching PIN.
type AppLockGate struct {
	repo    store.AppLockRepository
	session store.SessionStore

	mu    sync.Mutex
	state AppLockState
	cfg   models.AppLockConfig

	logger *logger.Logger
}

func NewAppLockGate(repo store.AppLockRepository, session store.SessionStore, logger *logger.Logger) *AppLockGate {
	return &AppLockGate{
		repo:    repo,
		session: session,
		logger:  logger,
	}
}

// State returns the current state.
func (g *AppLockGate) State() AppLockState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Check reads the stored config and the session flag. The gate is LOCKED
// when the lock is enabled and this session has not supplied the PIN yet.
// A read error leaves the gate UNCHECKED so the caller can retry.
func (g *AppLockGate) Check(ctx context.Context) (AppLockState, error) {
	cfg, err := g.repo.Load(ctx)
	if err != nil {
		g.logger.Err(err).Str("func", "*AppLockGate.Check").Msg("failed to load app lock config")
		return AppLockUnchecked, fmt.Errorf("load app lock config: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.cfg = cfg
	if cfg.Enabled && !store.GetFlag(g.session, store.KeySessionUnlocked) {
		g.state = AppLockLocked
	} else {
		g.state = AppLockUnlocked
	}

	g.logger.Info().Str("app_lock", g.state.String()).Msg("app lock checked")
	return g.state, nil
}

// SubmitPIN compares the hash of candidate with the stored one. On a match
// the session flag is set and the gate opens; otherwise it stays LOCKED
// with no attempt counter.
func (g *AppLockGate) SubmitPIN(candidate string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.state {
	case AppLockUnchecked:
		return ErrAppLockUnchecked
	case AppLockUnlocked:
		return nil
	}

	if !g.cfg.HasPIN() || HashPIN(candidate) != *g.cfg.PINHash {
		g.logger.Debug().Msg("app lock pin rejected")
		return ErrWrongPIN
	}

	store.SetFlag(g.session, store.KeySessionUnlocked, true)
	g.state = AppLockUnlocked
	g.logger.Info().Msg("app lock opened")
	return nil
}
