package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/mylife-client/internal/gate"
	"github.com/MKhiriev/mylife-client/internal/logger"
	"github.com/MKhiriev/mylife-client/internal/service"
	"github.com/MKhiriev/mylife-client/models"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrUserQuit is returned by [TUI.Run] when the user pressed Ctrl+C or
// the process was asked to stop.
var ErrUserQuit = errors.New("user quit")

// TUI runs one Bubble Tea program over one set of gates.
type TUI struct {
	ctrl      *gate.Controller
	services  *service.ClientServices
	feed      *ProbeFeed
	buildInfo models.AppBuildInfo
	exportDir string

	logger *logger.Logger
}

// New creates the UI. feed must be the one whose Publish was given to the
// controller's readiness probe. Emergency exports are written to exportDir.
func New(ctrl *gate.Controller, services *service.ClientServices, feed *ProbeFeed, buildInfo models.AppBuildInfo, exportDir string, logger *logger.Logger) *TUI {
	return &TUI{
		ctrl:      ctrl,
		services:  services,
		feed:      feed,
		buildInfo: buildInfo,
		exportDir: exportDir,
		logger:    logger,
	}
}

// Run blocks until the program exits. reload is true when the vault was
// locked and the caller must rebuild the gates.
func (t *TUI) Run(ctx context.Context) (reload bool, err error) {
	model := NewRootModel(ctx, t.ctrl, t.services, t.feed, t.buildInfo, t.exportDir)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if runErr != nil {
		if errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
			return false, ErrUserQuit
		}
		return false, runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	if result.quitByUser {
		return false, ErrUserQuit
	}

	t.logger.Info().
		Str("screen", result.screen.String()).
		Bool("reload", result.reload).
		Msg("tui finished")
	return result.reload, nil
}
