package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/mylife-client/internal/utils"
	"github.com/MKhiriev/mylife-client/models"
)

func writeOK[T any](w http.ResponseWriter, data T) {
	_ = utils.WriteJSON(w, http.StatusOK, models.OK(data))
}

func writeMessage(w http.ResponseWriter, message string) {
	writeOK(w, models.MessageData{Message: message})
}

// writeFailure answers 200 with success=false, the way the backend reports
// business failures.
func writeFailure(w http.ResponseWriter, body models.ErrorBody) {
	_ = utils.WriteJSON(w, http.StatusOK, models.Fail(body))
}

// writeDetail answers status with a {"detail": message} body.
func writeDetail(w http.ResponseWriter, message string, status int) {
	_ = utils.WriteJSON(w, status, map[string]string{"detail": message})
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return ErrInvalidJSON
	}
	return nil
}
