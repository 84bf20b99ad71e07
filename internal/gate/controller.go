// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package gate

import (
	"context"
	"fmt"
)

// Screen is the top-level view the client may render.
type Screen int

const (
	ScreenTerminal Screen = iota
	ScreenWaiting
	ScreenLoading
	ScreenAppLock
	ScreenVaultRecovery
	ScreenVaultSetup
	ScreenVaultUnlock
	ScreenHome
)

var screenNames = [...]string{
	ScreenTerminal:      "terminal",
	ScreenWaiting:       "waiting",
	ScreenLoading:       "loading",
	ScreenAppLock:       "app_lock",
	ScreenVaultRecovery: "vault_recovery",
	ScreenVaultSetup:    "vault_setup",
	ScreenVaultUnlock:   "vault_unlock",
	ScreenHome:          "home",
}

func (s Screen) String() string {
	if int(s) < len(screenNames) {
		return screenNames[s]
	}
	return fmt.Sprintf("screen(%d)", int(s))
}

// Snapshot is everything [Route] needs to pick a screen.
type Snapshot struct {
	TerminalUnlocked bool
	BackendReady     bool
	AppLock          AppLockState
	VaultEvaluated   bool
	Vault            VaultRoute
}

// Route folds the gate states into a screen. Gates are checked outermost
// first and the first closed gate decides.
func Route(s Snapshot) Screen {
	switch {
	case !s.TerminalUnlocked:
		return ScreenTerminal
	case !s.BackendReady:
		return ScreenWaiting
	case s.AppLock == AppLockUnchecked:
		return ScreenLoading
	case s.AppLock == AppLockLocked:
		return ScreenAppLock
	case !s.VaultEvaluated:
		return ScreenLoading
	}

	switch s.Vault {
	case RouteSetupRequired:
		return ScreenVaultSetup
	case RouteUnlockRequired:
		return ScreenVaultUnlock
	case RouteReady:
		return ScreenHome
	default:
		return ScreenVaultRecovery
	}
}

// Controller owns the gates of one application start.
type Controller struct {
	Session *SessionGate
	Probe   *ReadinessProbe
	AppLock *AppLockGate
	Vault   *VaultAccessController
}

func NewController(session *SessionGate, probe *ReadinessProbe, appLock *AppLockGate, vault *VaultAccessController) *Controller {
	return &Controller{
		Session: session,
		Probe:   probe,
		AppLock: appLock,
		Vault:   vault,
	}
}

// Snapshot reads the current gate states.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		TerminalUnlocked: c.Session.IsTerminalUnlocked(),
		BackendReady:     c.Probe.IsReady(),
		AppLock:          c.AppLock.State(),
		VaultEvaluated:   c.Vault.Evaluated(),
		Vault:            c.Vault.Route(),
	}
}

// Screen is Route applied to the current snapshot.
func (c *Controller) Screen() Screen {
	return Route(c.Snapshot())
}

// Advance performs the next automatic step, if any, and returns the screen
// that results. Readiness is driven by the probe loop, not by Advance; a
// closed terminal gate makes Advance a no-op.
func (c *Controller) Advance(ctx context.Context) (Screen, error) {
	snap := c.Snapshot()

	switch {
	case !snap.TerminalUnlocked, !snap.BackendReady:
		return Route(snap), nil
	case snap.AppLock == AppLockUnchecked:
		if _, err := c.AppLock.Check(ctx); err != nil {
			return c.Screen(), err
		}
		return c.Advance(ctx)
	case snap.AppLock == AppLockUnlocked && !snap.VaultEvaluated:
		_, err := c.Vault.Evaluate(ctx)
		return c.Screen(), err
	}

	return Route(snap), nil
}
