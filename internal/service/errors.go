package service

import "errors"

// Sync errors. The orchestrator returns them bare so the UI can print
// Error() as is.
var (
	ErrSyncInProgress       = errors.New("a sync operation is already in progress")
	ErrConflictsPending     = errors.New("resolve conflicts before pulling")
	ErrConfirmationRequired = errors.New("this strategy overwrites local data and needs confirmation")
	ErrInvalidStrategy      = errors.New("invalid resolution strategy")
	ErrVaultLockedForSync   = errors.New("unlock vault to sync")
	ErrVaultUnavailable     = errors.New("vault is unavailable")
	ErrSyncConflict         = errors.New("conflict detected, resolve conflicts before pulling")
	ErrMergeNotImplemented  = errors.New("merge strategy not yet implemented")
)

// App-lock settings errors.
var (
	ErrAppLockNotEnabled = errors.New("app lock is not enabled")
	ErrPINAlreadySet     = errors.New("app lock is already enabled, change the PIN instead")
	ErrNoStoredPIN       = errors.New("no app lock PIN is stored")
)

// ErrVersionIsNotSpecified is returned by [NewAppInfoService] for an empty
// version.
var ErrVersionIsNotSpecified = errors.New("version is not specified")
