package handler

import (
	"github.com/MKhiriev/mylife-client/internal/config"
	"github.com/MKhiriev/mylife-client/internal/devbackend"
	"github.com/MKhiriev/mylife-client/internal/handler/http"
	"github.com/MKhiriev/mylife-client/internal/logger"
	"github.com/MKhiriev/mylife-client/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(backend *devbackend.Backend, appInfo service.AppInfoService, cfg config.ServerConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{HTTP: http.NewHandler(backend, appInfo, logger)}, nil
}
