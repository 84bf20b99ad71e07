package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/mylife-client/internal/app"
	"github.com/MKhiriev/mylife-client/internal/devbackend"
	"github.com/MKhiriev/mylife-client/internal/logger"
	"github.com/MKhiriev/mylife-client/models"
)

func (h *Handler) syncStatus(w http.ResponseWriter, r *http.Request) {
	writeOK(w, h.backend.SyncStatus())
}

func (h *Handler) push(w http.ResponseWriter, r *http.Request) {
	if err := h.backend.Push(); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.push").Msg("push failed")
		writeFailure(w, models.ErrorBody{Message: "Failed to push", Details: err.Error()})
		return
	}

	writeMessage(w, app.MsgPushed)
}

func (h *Handler) pull(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	err := h.backend.Pull()
	switch {
	case err == nil:
		writeMessage(w, app.MsgPulled)
	case errors.Is(err, devbackend.ErrConflict):
		log.Warn().Str("func", "*Handler.pull").Msg("pull conflict")
		writeFailure(w, models.ErrorBody{
			Message:  app.MsgConflictDetected,
			Conflict: true,
			Details:  err.Error(),
		})
	default:
		log.Err(err).Str("func", "*Handler.pull").Msg("pull failed")
		writeFailure(w, models.ErrorBody{Message: err.Error()})
	}
}

func (h *Handler) conflicts(w http.ResponseWriter, r *http.Request) {
	list := h.backend.Conflicts()
	writeOK(w, models.ConflictList{Conflicts: list, Count: len(list)})
}

func (h *Handler) resolveConflict(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.ResolveRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Err(err).Str("func", "*Handler.resolveConflict").Msg("invalid request body")
		writeDetail(w, err.Error(), statusFromError(err))
		return
	}

	message, err := h.backend.Resolve(req.Strategy)
	if err != nil {
		log.Err(err).Str("func", "*Handler.resolveConflict").
			Str("strategy", string(req.Strategy)).
			Msg("conflict resolution failed")
		writeFailure(w, models.ErrorBody{Message: err.Error()})
		return
	}

	log.Info().Str("strategy", string(req.Strategy)).Msg("conflict resolved")
	writeMessage(w, message)
}
