package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/mylife-client/internal/adapter"
	"github.com/MKhiriev/mylife-client/internal/client"
	"github.com/MKhiriev/mylife-client/internal/config"
	"github.com/MKhiriev/mylife-client/internal/logger"
	"github.com/MKhiriev/mylife-client/internal/store"
	"github.com/MKhiriev/mylife-client/models"
	"golang.org/x/term"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if client.IsUsageError(err) {
			fmt.Fprintln(os.Stderr, "usage: mylife-client [flags] [status | applock set | applock disable | terminal-hash]")
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run() error {
	log, closer := logger.NewClientLogger("mylife-client")
	defer closer.Close()

	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		log.Err(err).Msg("error getting configs")
		return fmt.Errorf("config: %w", err)
	}
	if len(cfg.Args) == 0 {
		printBuildInfo()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := adapter.NewHTTPBackendAdapter(cfg.Adapter, log.WithComponent("adapter"))
	if err != nil {
		log.Err(err).Msg("create backend adapter")
		return err
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Err(err).Msg("create local storage")
		return err
	}
	defer storages.Close()

	app, err := client.NewApp(cfg, backend, storages, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log)
	if err != nil {
		log.Err(err).Msg("init client app error")
		return err
	}

	if len(cfg.Args) > 0 {
		return app.RunCommand(ctx, cfg.Args, readSecret, os.Stdout)
	}

	if err = app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Err(err).Msg("client run error")
		return err
	}
	return nil
}

// readSecret prompts on stderr so stdout stays clean for command output.
func readSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return string(secret), nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
