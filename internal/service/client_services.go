package service

import (
	"github.com/MKhiriev/mylife-client/internal/adapter"
	"github.com/MKhiriev/mylife-client/internal/logger"
	"github.com/MKhiriev/mylife-client/internal/store"
	"github.com/MKhiriev/mylife-client/internal/validators"
)

// ClientServices groups the services the TUI talks to.
type ClientServices struct {
	Sync    SyncOrchestrator
	AppLock AppLockSettingsService
}

func NewClientServices(backend adapter.BackendAdapter, storages *store.ClientStorages, logger *logger.Logger) *ClientServices {
	return &ClientServices{
		Sync:    NewSyncOrchestrator(backend, logger.WithComponent("sync")),
		AppLock: NewAppLockSettingsService(storages.AppLock, storages.Session, validators.NewPINValidator(), logger.WithComponent("app-lock")),
	}
}
