package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-file-courier/internal/adapter"
	"github.com/MKhiriev/go-file-courier/internal/config"
	"github.com/MKhiriev/go-file-courier/internal/handler"
	"github.com/MKhiriev/go-file-courier/internal/logger"
	"github.com/MKhiriev/go-file-courier/internal/resolver"
	"github.com/MKhiriev/go-file-courier/internal/server"
	"github.com/MKhiriev/go-file-courier/internal/service"
	"github.com/MKhiriev/go-file-courier/internal/store"
	"github.com/MKhiriev/go-file-courier/internal/workers"
	"github.com/MKhiriev/go-file-courier/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("courier-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().
		Str("domain", cfg.App.Domain).
		Str("address", cfg.Server.HTTPAddress).
		Str("chunk_backend", cfg.Storage.Chunks.Backend).
		Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	peers, err := cfg.Federation.Peers()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid static peers")
	}
	domains := resolver.New(nil, cfg.Federation.RecordPrefix, peers, log)
	peerAdapter := adapter.NewHTTPPeerAdapter(cfg.Federation, cfg.App.Domain, domains, log)

	services := service.NewServices(storages, peerAdapter, *cfg, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log)

	handlers, err := handler.NewHandlers(services, domains, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	sweeper := workers.NewRetentionWorkers(services.RetentionService, cfg.Workers, log)

	srv, err := server.NewServer(handlers, sweeper, services.Wait, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
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
