package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)

	router.Get("/health", h.health)
	router.Get("/version", h.getServerVersion)

	// vault lifecycle works in any vault state
	router.Group(func(r chi.Router) {
		r.Get("/vault/status", h.vaultStatus)
		r.Post("/vault/setup", h.setupVault)
		r.Post("/vault/unlock", h.unlockVault)
		r.Post("/vault/lock", h.lockVault)
		r.Post("/vault/recover", h.recoverVault)
		r.Get("/vault/emergency-export", h.emergencyExport)
	})

	router.Get("/sync/status", h.syncStatus)

	// routes that need an unlocked vault
	router.Group(func(r chi.Router) {
		r.Use(h.requireUnlockedVault)

		r.Post("/sync/push", h.push)
		r.Post("/sync/pull", h.pull)
		r.Get("/sync/conflicts", h.conflicts)
		r.Post("/sync/conflicts/resolve", h.resolveConflict)

		r.Post("/dev/vault/edit", h.editVault)
	})

	router.Post("/dev/vault/corrupt", h.corruptVault)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
