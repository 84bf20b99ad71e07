package http

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/MKhiriev/mylife-client/internal/app"
	"github.com/MKhiriev/mylife-client/internal/devbackend"
	"github.com/MKhiriev/mylife-client/internal/logger"
	"github.com/MKhiriev/mylife-client/models"
)

func (h *Handler) vaultStatus(w http.ResponseWriter, r *http.Request) {
	writeOK(w, h.backend.Status())
}

func (h *Handler) setupVault(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.PINRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Err(err).Str("func", "*Handler.setupVault").Msg("invalid request body")
		writeDetail(w, err.Error(), statusFromError(err))
		return
	}

	if err := h.backend.Setup(req.PIN); err != nil {
		log.Err(err).Str("func", "*Handler.setupVault").Msg("vault setup failed")
		writeFailure(w, models.ErrorBody{Message: err.Error()})
		return
	}

	writeMessage(w, app.MsgVaultCreated)
}

func (h *Handler) unlockVault(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.PINRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Err(err).Str("func", "*Handler.unlockVault").Msg("invalid request body")
		writeDetail(w, err.Error(), statusFromError(err))
		return
	}

	if err := h.backend.Unlock(req.PIN); err != nil {
		log.Err(err).Str("func", "*Handler.unlockVault").Msg("vault unlock failed")
		writeFailure(w, models.ErrorBody{Message: err.Error()})
		return
	}

	writeMessage(w, app.MsgVaultUnlocked)
}

func (h *Handler) lockVault(w http.ResponseWriter, r *http.Request) {
	if err := h.backend.Lock(); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.lockVault").Msg("vault lock failed")
		writeFailure(w, models.ErrorBody{Message: err.Error()})
		return
	}

	writeMessage(w, app.MsgVaultLockedOK)
}

func (h *Handler) recoverVault(w http.ResponseWriter, r *http.Request) {
	if err := h.backend.Recover(); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.recoverVault").Msg("vault recovery failed")
		writeFailure(w, models.ErrorBody{Message: err.Error()})
		return
	}

	writeMessage(w, app.MsgVaultRecovered)
}

// emergencyExport buffers the archive so a failure can still be reported
// with a proper status.
func (h *Handler) emergencyExport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var buf bytes.Buffer
	err := h.backend.EmergencyExport(&buf, h.appInfo.GetAppVersion(r.Context()))
	if err != nil {
		log.Err(err).Str("func", "*Handler.emergencyExport").Msg("emergency export failed")
		if errors.Is(err, devbackend.ErrNoVaultFiles) {
			writeDetail(w, err.Error(), http.StatusNotFound)
			return
		}
		writeDetail(w, "Emergency export failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", "attachment; filename=MyLife-emergency-export.zip")
	w.WriteHeader(http.StatusOK)
	if _, err = w.Write(buf.Bytes()); err != nil {
		log.Err(err).Str("func", "*Handler.emergencyExport").Msg("failed to write archive")
	}
}
