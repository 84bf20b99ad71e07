package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/mylife-client/internal/adapter"
	"github.com/MKhiriev/mylife-client/internal/config"
	"github.com/MKhiriev/mylife-client/internal/gate"
	"github.com/MKhiriev/mylife-client/internal/logger"
	"github.com/MKhiriev/mylife-client/internal/service"
	"github.com/MKhiriev/mylife-client/internal/store"
	"github.com/MKhiriev/mylife-client/internal/tui"
	"github.com/MKhiriev/mylife-client/internal/validators"
	"github.com/MKhiriev/mylife-client/models"
)

// exportDir is where the recovery screen saves emergency exports.
const exportDir = "."

type App struct {
	cfg       *config.ClientConfig
	backend   adapter.BackendAdapter
	storages  *store.ClientStorages
	buildInfo models.AppBuildInfo

	logger *logger.Logger
}

func NewApp(cfg *config.ClientConfig, backend adapter.BackendAdapter, storages *store.ClientStorages, buildInfo models.AppBuildInfo, logger *logger.Logger) (*App, error) {
	if cfg == nil || backend == nil || storages == nil {
		return nil, ErrIncompleteApp
	}

	return &App{
		cfg:       cfg,
		backend:   backend,
		storages:  storages,
		buildInfo: buildInfo,
		logger:    logger,
	}, nil
}

// Run shows the TUI until the user quits. Locking the vault ends the
// program with a reload request; the gates and services are then rebuilt
// while the session store is kept, so the terminal passphrase and the app
// lock are not asked again.
func (a *App) Run(ctx context.Context) error {
	for {
		reload, err := a.runOnce(ctx)
		if errors.Is(err, tui.ErrUserQuit) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run tui: %w", err)
		}
		if !reload {
			return nil
		}

		a.logger.Info().Msg("full reload")
	}
}

func (a *App) runOnce(ctx context.Context) (bool, error) {
	feed := tui.NewProbeFeed()
	ctrl := a.newController(feed.Publish)
	defer ctrl.Probe.Stop()

	services := service.NewClientServices(a.backend, a.storages, a.logger)
	ui := tui.New(ctrl, services, feed, a.buildInfo, exportDir, a.logger.WithComponent("tui"))
	return ui.Run(ctx)
}

// newController builds a fresh set of gates over the long-lived session
// store.
func (a *App) newController(onAttempt func(gate.ProbeAttempt)) *gate.Controller {
	log := a.logger.WithComponent("gate")

	return gate.NewController(
		gate.NewSessionGate(a.storages.Session, gate.NewTerminalVerifier(a.cfg.App.TerminalPasswordHash), log),
		gate.NewReadinessProbe(a.backend, a.cfg.Workers.ReadinessInterval, onAttempt, log),
		gate.NewAppLockGate(a.storages.AppLock, a.storages.Session, log),
		gate.NewVaultAccessController(a.backend, validators.NewPINValidator(), log),
	)
}
