// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package gate

import (
	"github.com/MKhiriev/mylife-client/internal/logger"
	"github.com/MKhiriev/mylife-client/internal/store"
)

// SessionGate is the outermost gate. Its flag lives in the session store and
// is never persisted. A wrong passphrase is a silent retry.
type SessionGate struct {
	session  store.SessionStore
	verifier *TerminalVerifier

	logger *logger.Logger
}

func NewSessionGate(session store.SessionStore, verifier *TerminalVerifier, logger *logger.Logger) *SessionGate {
	return &SessionGate{
		session:  session,
		verifier: verifier,
		logger:   logger,
	}
}

// IsTerminalUnlocked reports whether the passphrase was accepted in this
// session.
func (g *SessionGate) IsTerminalUnlocked() bool {
	return store.GetFlag(g.session, store.KeyTerminalUnlocked)
}

// MarkTerminalUnlocked opens the gate for the rest of the session.
func (g *SessionGate) MarkTerminalUnlocked() {
	store.SetFlag(g.session, store.KeyTerminalUnlocked, true)
}

// Submit verifies passphrase and opens the gate on success.
func (g *SessionGate) Submit(passphrase string) error {
	if err := g.verifier.Verify(passphrase); err != nil {
		g.logger.Debug().Err(err).Msg("terminal passphrase rejected")
		return err
	}

	g.MarkTerminalUnlocked()
	g.logger.Info().Msg("terminal unlocked")
	return nil
}
