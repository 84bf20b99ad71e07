package http

import (
	"net/http"

	"github.com/MKhiriev/mylife-client/internal/logger"
	"github.com/MKhiriev/mylife-client/internal/utils"
	"github.com/MKhiriev/mylife-client/models"
)

// requireUnlockedVault answers 503 for an UNAVAILABLE vault and 401 for a
// locked one, with the {"detail": {...}} body the client expects from the
// vault guard.
func (h *Handler) requireUnlockedVault(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state, err := h.backend.Guard()
		if err != nil {
			logger.FromRequest(r).Warn().Err(err).
				Str("func", "*Handler.requireUnlockedVault").
				Str("vault_state", string(state)).
				Msg("request rejected by vault guard")

			_ = utils.WriteJSON(w, statusFromError(err), map[string]models.GuardDetail{
				"detail": {Message: err.Error(), VaultState: state},
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
