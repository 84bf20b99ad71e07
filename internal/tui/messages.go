package tui

import (
	"github.com/MKhiriev/mylife-client/internal/gate"
	"github.com/MKhiriev/mylife-client/models"
)

// Pages of the home area. Gate screens are picked by [gate.Route], not by
// navigation.
const (
	pageHome            = "home"
	pageSync            = "sync"
	pageAppLockSettings = "app_lock_settings"
)

// NavigateTo switches the active page inside the home area.
type NavigateTo struct {
	Page string
}

// gateResultMsg ends every gate operation. The root model re-routes on it
// and forwards it to the page that is active afterwards.
type gateResultMsg struct {
	err error
}

type probeAttemptMsg gate.ProbeAttempt

// reloadMsg asks the client to rebuild the gates from scratch.
type reloadMsg struct{}

type exportDoneMsg struct {
	path  string
	bytes int64
	err   error
}

type syncDoneMsg struct {
	notice   string
	recorded bool
	err      error
}

type appLockLoadedMsg struct {
	cfg models.AppLockConfig
	err error
}

type appLockSavedMsg struct {
	notice string
	err    error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
