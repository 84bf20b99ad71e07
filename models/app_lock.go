package models

import "errors"

// ErrAppLockWithoutPIN is returned when an enabled app lock has no PIN hash.
var ErrAppLockWithoutPIN = errors.New("app lock enabled without a pin hash")

// AppLockConfig is the client-owned, durable configuration of the optional
// PIN gate shown above the content UI.
type AppLockConfig struct {
	// Enabled turns the gate on.
	Enabled bool
	// PINHash is the CredentialHasher output for the configured PIN.
	// It survives disabling the lock so the user can re-enable it later.
	PINHash *string
}

// HasPIN reports whether a non-empty PIN hash is stored.
func (c AppLockConfig) HasPIN() bool {
	return c.PINHash != nil && *c.PINHash != ""
}

// Validate enforces enabled => pin hash present.
func (c AppLockConfig) Validate() error {
	if c.Enabled && !c.HasPIN() {
		return ErrAppLockWithoutPIN
	}
	return nil
}
