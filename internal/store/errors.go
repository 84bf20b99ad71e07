package store

import "errors"

var (
	// ErrUnsupportedDriver is returned by [NewClientStorages] for an unknown
	// STORAGE_DB_DRIVER value.
	ErrUnsupportedDriver = errors.New("unsupported storage driver")

	// ErrInvalidAppLockConfig is returned by [AppLockRepository.Save] for a
	// config that is enabled without a pin hash.
	ErrInvalidAppLockConfig = errors.New("invalid app lock config")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when squirrel cannot render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when an INSERT or DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when a result row cannot be scanned.
	ErrScanningRow = errors.New("failed to scan settings row")

	// ErrBucketMissing is returned when the bbolt settings bucket is absent.
	ErrBucketMissing = errors.New("settings bucket not found")
)
