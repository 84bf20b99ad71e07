package http

import (
	"github.com/MKhiriev/mylife-client/internal/devbackend"
	"github.com/MKhiriev/mylife-client/internal/logger"
	"github.com/MKhiriev/mylife-client/internal/service"
)

type Handler struct {
	backend *devbackend.Backend
	appInfo service.AppInfoService

	logger *logger.Logger
}

func NewHandler(backend *devbackend.Backend, appInfo service.AppInfoService, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		backend: backend,
		appInfo: appInfo,
		logger:  logger,
	}
}
