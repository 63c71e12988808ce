package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pressly/goose/v3"

	"tradegate/migrations"
)

// gooseLogger adapts goose's printf-style logging onto slog. Fatalf must not
// exit: goose only calls it from code paths we do not use, and migration
// failures surface as returned errors.
type gooseLogger struct {
	log *slog.Logger
}

func (g gooseLogger) Printf(format string, v ...interface{}) {
	g.log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (g gooseLogger) Fatalf(format string, v ...interface{}) {
	g.log.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// migrateUp applies the embedded migrations for the given driver.
func migrateUp(db *sql.DB, driver string, log *slog.Logger) error {
	goose.SetLogger(gooseLogger{log: log})
	goose.SetBaseFS(migrations.Files)

	dialect := "sqlite3"
	if driver == "postgres" {
		dialect = "postgres"
	}
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db, migrations.Dir(driver)); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
