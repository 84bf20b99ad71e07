package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrPINRequired   = errors.New("pin is required")
	ErrPINTooShort   = errors.New("pin is too short")
	ErrPINTooLong    = errors.New("pin is too long")
	ErrPINMismatch   = errors.New("pins do not match")
)
