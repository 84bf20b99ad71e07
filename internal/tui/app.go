package tui

import (
	"context"

	"github.com/MKhiriev/mylife-client/internal/gate"
	"github.com/MKhiriev/mylife-client/internal/service"
	"github.com/MKhiriev/mylife-client/models"
	tea "github.com/charmbracelet/bubbletea"
)

// RootModel is a TUI router:
// 1) picks the gate screen from [gate.Controller] after every gate result
// 2) handles global Ctrl+C quit
// 3) handles NavigateTo messages inside the home area
// 4) delegates all other messages to the active page
type RootModel struct {
	ctx  context.Context
	ctrl *gate.Controller
	feed *ProbeFeed

	screens map[gate.Screen]tea.Model
	pages   map[string]tea.Model
	screen  gate.Screen
	current tea.Model

	quitByUser bool
	reload     bool
	buildInfo  models.AppBuildInfo

	showBuildInfo bool
}

// NewRootModel registers a page for every gate screen and for the home
// area, and opens the screen the controller currently allows.
func NewRootModel(ctx context.Context, ctrl *gate.Controller, services *service.ClientServices, feed *ProbeFeed, buildInfo models.AppBuildInfo, exportDir string) RootModel {
	home := NewHomeModel(ctx, ctrl)

	r := RootModel{
		ctx:  ctx,
		ctrl: ctrl,
		feed: feed,
		screens: map[gate.Screen]tea.Model{
			gate.ScreenTerminal:      NewTerminalModel(ctx, ctrl),
			gate.ScreenWaiting:       NewWaitingModel(),
			gate.ScreenLoading:       NewLoadingModel(ctx, ctrl),
			gate.ScreenAppLock:       NewAppLockModel(ctx, ctrl),
			gate.ScreenVaultRecovery: NewVaultRecoveryModel(ctx, ctrl, exportDir),
			gate.ScreenVaultSetup:    NewVaultSetupModel(ctx, ctrl),
			gate.ScreenVaultUnlock:   NewVaultUnlockModel(ctx, ctrl),
			gate.ScreenHome:          home,
		},
		pages: map[string]tea.Model{
			pageHome:            home,
			pageSync:            NewSyncModel(ctx, services.Sync),
			pageAppLockSettings: NewAppLockSettingsModel(ctx, services.AppLock),
		},
		buildInfo: buildInfo,
	}

	r.screen = ctrl.Screen()
	r.current = r.screens[r.screen]
	return r
}

func (r RootModel) Init() tea.Cmd {
	cmds := []tea.Cmd{r.feed.listen(), r.current.Init()}

	// A reload keeps the terminal flag, so the probe starts at once.
	if r.ctrl.Session.IsTerminalUnlocked() {
		ctx := r.ctx
		probe := r.ctrl.Probe
		cmds = append(cmds, func() tea.Msg {
			probe.Start(ctx)
			return nil
		})
	}

	return tea.Batch(cmds...)
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Global hotkey for every page.
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			r.quitByUser = true
			return r, tea.Quit
		case "v":
			if r.isMenuPage() {
				r.showBuildInfo = !r.showBuildInfo
				return r, nil
			}
		case "esc":
			if r.showBuildInfo {
				r.showBuildInfo = false
				return r, nil
			}
		}

		if r.showBuildInfo {
			return r, nil
		}
	}

	switch msg := msg.(type) {
	case NavigateTo:
		next, exists := r.pages[msg.Page]
		if !exists || r.screen != gate.ScreenHome {
			return r, nil
		}
		r.showBuildInfo = false
		r.current = next
		return r, r.current.Init()

	case probeAttemptMsg:
		waiting := r.screens[gate.ScreenWaiting]
		_, cmd := waiting.Update(msg)
		if msg.Result == gate.Ready {
			return r, tea.Batch(cmd, cmdAdvance(r.ctx, r.ctrl))
		}
		return r, tea.Batch(cmd, r.feed.listen())

	case gateResultMsg:
		initCmd := r.route()
		updated, cmd := r.current.Update(msg)
		r.current = updated
		if r.screen == gate.ScreenLoading && msg.err == nil {
			cmd = tea.Batch(cmd, cmdAdvance(r.ctx, r.ctrl))
		}
		return r, tea.Batch(initCmd, cmd)

	case reloadMsg:
		r.reload = true
		return r, tea.Quit
	}

	if r.current == nil {
		return r, nil
	}

	updated, cmd := r.current.Update(msg)
	r.current = updated
	return r, cmd
}

// route switches to the page of the screen the gates allow now. Staying on
// the same screen keeps the current page, so the home area is not reset.
func (r *RootModel) route() tea.Cmd {
	next := r.ctrl.Screen()
	if next == r.screen {
		return nil
	}

	r.screen = next
	r.current = r.screens[next]
	r.showBuildInfo = false
	return r.current.Init()
}

func (r RootModel) View() string {
	if r.showBuildInfo {
		return renderBuildInfoWindow(r.buildInfo)
	}
	if r.current == nil {
		return renderPage("MYLIFE", "", "")
	}
	return r.current.View()
}

// Screen reports the gate screen currently shown.
func (r RootModel) Screen() gate.Screen {
	return r.screen
}

func (r RootModel) isMenuPage() bool {
	_, ok := r.current.(*HomeModel)
	return ok
}
