package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/mylife-client/internal/devbackend"
)

// errorStatusMap is consulted only by routes that answer with a real HTTP
// status. Vault lifecycle and sync routes report failures as 200 with
// success=false.
var errorStatusMap = map[error]int{
	devbackend.ErrVaultLocked:      http.StatusUnauthorized,
	devbackend.ErrVaultUnavailable: http.StatusServiceUnavailable,
	devbackend.ErrNoVaultFiles:     http.StatusNotFound,

	ErrInvalidJSON: http.StatusUnprocessableEntity,
	ErrEmptyNote:   http.StatusUnprocessableEntity,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
