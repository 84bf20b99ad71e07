package models

// VaultSetupInput is what the user types on the vault setup screen.
type VaultSetupInput struct {
	PIN     string
	Confirm string
}

// AppLockPINInput is what the user types when setting or changing the
// app-lock PIN.
type AppLockPINInput struct {
	PIN     string
	Confirm string
}
