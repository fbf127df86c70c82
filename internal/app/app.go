// Package app wires configuration, storage and training together at startup.
package app

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"titanic-service/internal/config"
	"titanic-service/internal/database"
	"titanic-service/internal/models"
	"titanic-service/internal/training"
)

// App holds the long-lived components of a running process.
type App struct {
	DB           *gorm.DB
	Schema       *database.SchemaManager
	Repository   *database.PassengerRepository
	Orchestrator *training.Orchestrator
	Dataset      models.Dataset
}

// Open connects to the configured store and makes sure the schema exists,
// importing the source file on first use.
func Open(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	schema := database.NewSchemaManager(db, database.FileLoader(cfg.SourcePath()))
	if err := schema.CreateSchema(ctx); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &App{
		DB:         db,
		Schema:     schema,
		Repository: database.NewPassengerRepository(db),
	}, nil
}

// LoadTraining snapshots the stored passengers and prepares the orchestrator.
func (a *App) LoadTraining(ctx context.Context, opts training.Options) error {
	records, err := a.Repository.FetchAll(ctx)
	if err != nil {
		return err
	}
	log.Printf("Loaded %d passengers from the database", len(records))

	orchestrator, err := training.NewOrchestrator(records, opts)
	if err != nil {
		return err
	}
	a.Orchestrator = orchestrator
	a.Dataset = models.NewDataset(records)
	return nil
}

// Bootstrap runs Open followed by LoadTraining.
func Bootstrap(ctx context.Context, cfg config.Config) (*App, error) {
	a, err := Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := a.LoadTraining(ctx, TrainingOptions(cfg)); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// TrainingOptions starts from the training defaults and applies the partition
// settings present in cfg.
func TrainingOptions(cfg config.Config) training.Options {
	opts := training.DefaultOptions()
	if cfg.TestSize != 0 {
		opts.TestSize = cfg.TestSize
	}
	if cfg.SplitSeed != nil {
		opts.Seed = *cfg.SplitSeed
	}
	return opts
}

// Close releases the database connection pool.
func (a *App) Close() error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}
}
