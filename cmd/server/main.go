// The server command runs the tradegate service: a users, products, and
// orders catalog exposed as named operations over JSON and XML envelopes.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"tradegate/internal/config"
	"tradegate/internal/platform/logger"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (default: config.yaml in the working directory)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	ctx := context.Background()

	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", "error", err)
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := migrateUp(db, cfg.Database.Driver, log); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		return fmt.Errorf("failed to assemble application: %w", err)
	}

	return app.Run(ctx)
}
