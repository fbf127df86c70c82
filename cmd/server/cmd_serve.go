package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	_ "titanic-service/docs" // registers the swagger document
	"titanic-service/internal/app"
	"titanic-service/internal/config"
	"titanic-service/internal/handlers"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Import the dataset if needed and start the HTTP API",
		Long: `Connects to the configured database, creates and loads the schema on first
start, snapshots the passengers for training and serves:

  POST /train      {"model": "log_reg" | "svm" | "knn"}
  GET  /get/all    columnar passenger dataset
  GET  /healthz
  GET  /swagger/*`,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.LogSummary()

	a, err := app.Bootstrap(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	defer a.Close()

	router := handlers.NewRouter(handlers.NewAPI(a.Orchestrator, a.Dataset))

	log.Printf("Starting Titanic training service on %s", cfg.ListenAddr())
	if err := router.Run(cfg.ListenAddr()); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
