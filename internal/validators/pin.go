package validators

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/MKhiriev/mylife-client/models"
)

const (
	FieldPIN     = "pin"
	FieldConfirm = "confirm"
)

const (
	// MinVaultPINLength is the shortest PIN the vault accepts.
	MinVaultPINLength = 4
	// MinAppLockPINLength and MaxAppLockPINLength bound the app-lock PIN.
	MinAppLockPINLength = 4
	MaxAppLockPINLength = 6
)

// PINValidator checks PINs typed by the user before anything is sent to
// the backend or written to the settings store.
type PINValidator struct {
}

func NewPINValidator() Validator {
	return &PINValidator{}
}

// Validate accepts [models.VaultSetupInput] and [models.AppLockPINInput]
// (by value or pointer). With no fields every rule is checked.
func (v *PINValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.VaultSetupInput:
		return v.validatePIN(value.PIN, value.Confirm, MinVaultPINLength, 0, fields...)
	case *models.VaultSetupInput:
		return v.validatePIN(value.PIN, value.Confirm, MinVaultPINLength, 0, fields...)

	case models.AppLockPINInput:
		return v.validatePIN(value.PIN, value.Confirm, MinAppLockPINLength, MaxAppLockPINLength, fields...)
	case *models.AppLockPINInput:
		return v.validatePIN(value.PIN, value.Confirm, MinAppLockPINLength, MaxAppLockPINLength, fields...)

	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

// validatePIN counts characters, not bytes. maxLen == 0 means unbounded.
func (v *PINValidator) validatePIN(pin, confirm string, minLen, maxLen int, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPIN, FieldConfirm}
	}

	for _, field := range fields {
		switch field {
		case FieldPIN:
			n := utf8.RuneCountInString(pin)
			if n == 0 {
				return ErrPINRequired
			}
			if n < minLen {
				return fmt.Errorf("%w: must be at least %d characters", ErrPINTooShort, minLen)
			}
			if maxLen > 0 && n > maxLen {
				return fmt.Errorf("%w: must be at most %d characters", ErrPINTooLong, maxLen)
			}
		case FieldConfirm:
			if pin != confirm {
				return ErrPINMismatch
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}
