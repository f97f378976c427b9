package main

import (
	"context"
	"fmt"

	"github.com/mkravets/sayright/internal/config"
	"github.com/mkravets/sayright/internal/handler"
	"github.com/mkravets/sayright/internal/logger"
	"github.com/mkravets/sayright/internal/server"
	"github.com/mkravets/sayright/internal/server/docstore"
	"github.com/mkravets/sayright/internal/service"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("sayright-devserver")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	repositories, err := docstore.NewRepositories(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating repositories")
	}

	services := service.NewServices(repositories, cfg, log)
	handlers := handler.NewHandlers(services, log)

	srv := server.NewServer(handlers, cfg.Server, log)
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
