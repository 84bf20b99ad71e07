package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MKhiriev/mylife-client/internal/gate"
	"github.com/MKhiriev/mylife-client/internal/service"
	"github.com/MKhiriev/mylife-client/internal/validators"
	"github.com/MKhiriev/mylife-client/models"
)

const (
	cmdStatus       = "status"
	cmdAppLock      = "applock"
	cmdTerminalHash = "terminal-hash"
)

// RunCommand executes a headless subcommand:
//
//	status                 backend, vault and sync state
//	applock set            enable the app lock or change its PIN
//	applock disable        turn the app lock off
//	terminal-hash          print a bcrypt hash for APP_TERMINAL_PASSWORD_HASH
//
// status reaches the network, so it asks for the terminal passphrase first
// when one is configured.
func (a *App) RunCommand(ctx context.Context, args []string, prompt PromptFunc, w io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: none given", ErrUnknownCommand)
	}

	switch {
	case args[0] == cmdStatus:
		if err := a.unlockTerminal(prompt); err != nil {
			return err
		}
		return a.printStatus(ctx, w)
	case args[0] == cmdAppLock && len(args) == 2 && args[1] == "set":
		return setAppLock(ctx, a.appLockService(), prompt, w)
	case args[0] == cmdAppLock && len(args) == 2 && args[1] == "disable":
		return disableAppLock(ctx, a.appLockService(), prompt, w)
	case args[0] == cmdTerminalHash:
		return printTerminalHash(prompt, w)
	}

	return fmt.Errorf("%w: %s", ErrUnknownCommand, strings.Join(args, " "))
}

func (a *App) appLockService() service.AppLockSettingsService {
	return service.NewAppLockSettingsService(a.storages.AppLock, a.storages.Session, validators.NewPINValidator(), a.logger.WithComponent("app-lock"))
}

// unlockTerminal opens the terminal gate the same way the TUI does. Without
// a configured hash any non-empty passphrase is accepted.
func (a *App) unlockTerminal(prompt PromptFunc) error {
	passphrase, err := prompt("Terminal passphrase: ")
	if err != nil {
		return err
	}
	return gate.NewTerminalVerifier(a.cfg.App.TerminalPasswordHash).Verify(passphrase)
}

// printStatus reports what it can; an unreachable backend is part of the
// report, not an error.
func (a *App) printStatus(ctx context.Context, w io.Writer) error {
	fmt.Fprintf(w, "Client:     %s\n", valueOr(a.cfg.App.Version, a.buildInfo.Summary()))
	fmt.Fprintf(w, "Backend:    %s\n", a.cfg.Adapter.HTTPAddress)

	if err := a.backend.Health(ctx); err != nil {
		fmt.Fprintf(w, "Health:     unreachable (%v)\n", err)
		return nil
	}
	fmt.Fprintln(w, "Health:     ok")

	status, err := a.backend.VaultStatus(ctx)
	if err != nil {
		fmt.Fprintf(w, "Vault:      %s (%v)\n", gate.RouteUnavailable, err)
	} else {
		fmt.Fprintf(w, "Vault:      %s (exists: %s, unlocked: %s)\n",
			status.State, yesNo(status.VaultExists), yesNo(status.IsUnlocked))
		fmt.Fprintf(w, "Route:      %s\n", gate.DeriveVaultRoute(status))
	}

	sync, err := a.backend.SyncStatus(ctx)
	if err != nil {
		fmt.Fprintf(w, "Sync:       unavailable (%v)\n", err)
	} else {
		fmt.Fprintf(w, "Device ID:  %s\n", valueOr(sync.DeviceID, "-"))
		fmt.Fprintf(w, "Drive:      %s\n", connected(sync.DriveConnected))
		fmt.Fprintf(w, "Last push:  %s\n", formatTimestamp(sync.LastPushAt))
		fmt.Fprintf(w, "Last pull:  %s\n", formatTimestamp(sync.LastPullAt))
	}

	lock, err := a.storages.AppLock.Load(ctx)
	if err != nil {
		return fmt.Errorf("load app lock config: %w", err)
	}
	fmt.Fprintf(w, "App lock:   %s\n", enabled(lock.Enabled))
	return nil
}

// setAppLock enables the lock, or changes the PIN when it is already on.
func setAppLock(ctx context.Context, svc service.AppLockSettingsService, prompt PromptFunc, w io.Writer) error {
	cfg, err := svc.Config(ctx)
	if err != nil {
		return err
	}

	var current string
	if cfg.Enabled {
		if current, err = prompt("Current PIN: "); err != nil {
			return err
		}
	}

	pin, err := prompt("New PIN: ")
	if err != nil {
		return err
	}
	confirm, err := prompt("Confirm PIN: ")
	if err != nil {
		return err
	}

	if cfg.Enabled {
		if err = svc.ChangePIN(ctx, current, pin, confirm); err != nil {
			return err
		}
		fmt.Fprintln(w, "App lock PIN changed.")
		return nil
	}

	if err = svc.SetPIN(ctx, pin, confirm); err != nil {
		return err
	}
	fmt.Fprintln(w, "App lock enabled.")
	return nil
}

func disableAppLock(ctx context.Context, svc service.AppLockSettingsService, prompt PromptFunc, w io.Writer) error {
	cfg, err := svc.Config(ctx)
	if err != nil {
		return err
	}
	if !cfg.Enabled {
		fmt.Fprintln(w, "App lock is already disabled.")
		return nil
	}

	current, err := prompt("Current PIN: ")
	if err != nil {
		return err
	}
	if err = svc.Disable(ctx, current); err != nil {
		return err
	}

	fmt.Fprintln(w, "App lock disabled.")
	return nil
}

func printTerminalHash(prompt PromptFunc, w io.Writer) error {
	passphrase, err := prompt("Terminal passphrase: ")
	if err != nil {
		return err
	}
	confirm, err := prompt("Confirm passphrase: ")
	if err != nil {
		return err
	}
	if passphrase != confirm {
		return ErrSecretMismatch
	}

	hash, err := gate.HashTerminalPassphrase(passphrase)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "APP_TERMINAL_PASSWORD_HASH=%s\n", hash)
	return nil
}

// IsUsageError reports whether err comes from bad arguments rather than a
// failed operation.
func IsUsageError(err error) bool {
	return errors.Is(err, ErrUnknownCommand)
}

func formatTimestamp(t *models.Timestamp) string {
	if t == nil || t.IsZero() {
		return "Never"
	}
	return t.Local().Format(time.DateTime)
}

func valueOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func connected(v bool) string {
	if v {
		return "connected"
	}
	return "not connected"
}

func enabled(v bool) string {
	if v {
		return "enabled"
	}
	return "disabled"
}
