package main

import (
	"context"
	"fmt"
	"time"

	"github.com/focusflow/focusflow-server/internal/adapter"
	"github.com/focusflow/focusflow-server/internal/config"
	"github.com/focusflow/focusflow-server/internal/handler"
	"github.com/focusflow/focusflow-server/internal/logger"
	"github.com/focusflow/focusflow-server/internal/server"
	"github.com/focusflow/focusflow-server/internal/service"
	"github.com/focusflow/focusflow-server/internal/store"
	"github.com/focusflow/focusflow-server/internal/workers"
	"github.com/focusflow/focusflow-server/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("focusflow-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}

	connectCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := store.NewConnectPostgres(connectCtx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Err(closeErr).Msg("error closing database connection")
		}
	}()

	if err = migrations.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db)

	google := adapter.NewGoogleOAuthAdapter(cfg.Google, adapter.GoogleOAuthOptions{}, log)
	drive := adapter.NewDriveAdapter(adapter.DriveOptions{}, log)

	services, err := service.NewServices(storages, google, drive, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	backgroundWorkers := workers.NewWorkers(storages, cfg.Workers, log)
	backgroundWorkers.Run()
	defer backgroundWorkers.Stop()

	servers, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	servers.RunServer()
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
