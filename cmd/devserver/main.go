package main

import (
	"fmt"
	"os"

	"github.com/MKhiriev/mylife-client/internal/config"
	"github.com/MKhiriev/mylife-client/internal/devbackend"
	"github.com/MKhiriev/mylife-client/internal/handler"
	"github.com/MKhiriev/mylife-client/internal/logger"
	"github.com/MKhiriev/mylife-client/internal/server"
	"github.com/MKhiriev/mylife-client/internal/service"
	"github.com/MKhiriev/mylife-client/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("mylife-devserver")
	cfg, err := config.GetServerConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	appInfo, err := service.NewAppInfoService(cfg.App, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating app info service")
	}

	handlers, err := handler.NewHandlers(devbackend.New(log.WithComponent("devbackend")), appInfo, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
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
