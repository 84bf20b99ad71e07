package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/mylife-client/internal/app"
	"github.com/MKhiriev/mylife-client/internal/logger"
	"github.com/MKhiriev/mylife-client/models"
)

// editRequest is the body of POST /dev/vault/edit.
type editRequest struct {
	Note string `json:"note"`
}

// editVault simulates a local journal edit so the next pull conflicts.
func (h *Handler) editVault(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req editRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Err(err).Str("func", "*Handler.editVault").Msg("invalid request body")
		writeDetail(w, err.Error(), statusFromError(err))
		return
	}
	if strings.TrimSpace(req.Note) == "" {
		writeDetail(w, ErrEmptyNote.Error(), statusFromError(ErrEmptyNote))
		return
	}

	if err := h.backend.Edit(req.Note); err != nil {
		log.Err(err).Str("func", "*Handler.editVault").Msg("vault edit failed")
		writeFailure(w, models.ErrorBody{Message: err.Error()})
		return
	}

	writeMessage(w, app.MsgVaultEdited)
}

// corruptVault simulates an unreadable vault.
func (h *Handler) corruptVault(w http.ResponseWriter, r *http.Request) {
	h.backend.Corrupt()
	writeOK(w, h.backend.Status())
}
