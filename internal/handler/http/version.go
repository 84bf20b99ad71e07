package http

import (
	"net/http"

	"github.com/MKhiriev/mylife-client/internal/utils"
	"github.com/MKhiriev/mylife-client/models"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteJSON(w, http.StatusOK, models.HealthData{Status: "ok"})
}

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(h.appInfo.GetAppVersion(r.Context())))
}
