package main

import (
	"fmt"
	"os"

	"expenses/internal/config"
	"expenses/internal/database"
	"expenses/internal/logger"
	"expenses/internal/services"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Restore error: %v", err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: restore <backup-file>")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dbManager, err := database.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	restoreService := services.NewRestoreService(dbManager.DB(), nil)
	if err := restoreService.RunImport(os.Args[1]); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	logger.Get().Infof("Restored backup %s", os.Args[1])
	return nil
}
