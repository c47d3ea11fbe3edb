package main

import (
	"context"
	"fmt"

	"github.com/scanmark/rostersync/internal/config"
	handlerhttp "github.com/scanmark/rostersync/internal/handler/http"
	"github.com/scanmark/rostersync/internal/logger"
	"github.com/scanmark/rostersync/internal/server"
	"github.com/scanmark/rostersync/internal/service"
	"github.com/scanmark/rostersync/internal/store"
	"github.com/scanmark/rostersync/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("rostersync-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	registry, err := store.NewRegistry(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ticket registry")
	}

	services := service.NewServices(registry, cfg.Storage.Registry, log)
	handler := handlerhttp.NewHandler(services, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	// The memory backend reclaims slots lazily, so expired tickets are also
	// swept on a ticker. Postgres prunes inside its own statements.
	if mem, ok := registry.(*store.MemoryRegistry); ok {
		sweeper := workers.NewSweepJob(mem, log)
		sweeper.Start(ctx, cfg.Workers.SweepInterval)
		defer sweeper.Stop()
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
