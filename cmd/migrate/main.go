package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nmm-portal/nmm-api/config"
	"github.com/nmm-portal/nmm-api/pkg/db"
	"github.com/nmm-portal/nmm-api/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	direction := flag.String("direction", string(db.Up), "migration direction: up or down")
	path := flag.String("path", "file://migrations", "migrations source URL")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: "nmm-migrate",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Database.Backend != config.BackendPostgres {
		logger.Fatal("Migrations require the postgres backend",
			zap.String("backend", cfg.Database.Backend))
	}

	dir := db.Direction(*direction)
	if dir != db.Up && dir != db.Down {
		logger.Fatal("Unknown migration direction", zap.String("direction", *direction))
	}

	logger.Info("Starting database migrations",
		zap.String("database", db.MaskURL(cfg.Database.URL)),
		zap.String("direction", string(dir)))

	if err := db.RunMigrations(cfg.Database.URL, *path, dir); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Database migrations completed successfully")
}
