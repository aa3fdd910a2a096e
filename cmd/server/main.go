package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-secure-api/internal/audit"
	"github.com/MKhiriev/go-secure-api/internal/config"
	"github.com/MKhiriev/go-secure-api/internal/handler"
	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/internal/mask"
	"github.com/MKhiriev/go-secure-api/internal/server"
	"github.com/MKhiriev/go-secure-api/internal/service"
	"github.com/MKhiriev/go-secure-api/internal/store"
	"github.com/MKhiriev/go-secure-api/internal/utils"
	"github.com/MKhiriev/go-secure-api/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-secure-api")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}

	ctx := context.Background()

	services, err := service.NewServices(ctx, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	storage, err := store.NewAuditStorage(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating audit storage")
	}

	auditWriter := workers.NewAuditWriter(storage, cfg.Storage.BufferSize, log)

	keys := mask.DefaultSensitiveKeys()
	if len(cfg.App.SensitiveKeys) > 0 {
		keys = mask.NewSensitiveKeySet(cfg.App.SensitiveKeys...)
	}
	auditLogger := audit.NewLogger(auditWriter, keys, utils.NewULIDGenerator(), log)

	handlers, err := handler.NewHandlers(services, auditLogger, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, workers.NewWorkers(auditWriter), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(ctx); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
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
