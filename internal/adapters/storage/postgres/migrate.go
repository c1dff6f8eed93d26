package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"sync"

	"animal-reservations/internal/platform/logger"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

var gooseOnce sync.Once

// setupGoose configura goose una sola vez: goose guarda FS, dialecto y logger
// en variables globales del paquete.
func setupGoose(log logger.Logger) {
	gooseOnce.Do(func() {
		goose.SetBaseFS(migrationsFS)
		if err := goose.SetDialect("postgres"); err != nil {
			panic(err)
		}
	})
	if log != nil {
		goose.SetLogger(gooseLogger{log: log})
	}
}

func MigrateUp(ctx context.Context, db *sql.DB, log logger.Logger) error {
	setupGoose(log)
	return goose.UpContext(ctx, db, migrationsDir)
}

// MigrateDown revierte todas las migraciones (tablas vacías y borradas).
func MigrateDown(ctx context.Context, db *sql.DB, log logger.Logger) error {
	setupGoose(log)
	return goose.DownToContext(ctx, db, migrationsDir, 0)
}

func MigrateStatus(ctx context.Context, db *sql.DB, log logger.Logger) error {
	setupGoose(log)
	return goose.StatusContext(ctx, db, migrationsDir)
}

// Reset = down a cero + up. Lo usa el seed para partir de tablas limpias.
func Reset(ctx context.Context, db *sql.DB, log logger.Logger) error {
	if err := MigrateDown(ctx, db, log); err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	if err := MigrateUp(ctx, db, log); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

type gooseLogger struct {
	log logger.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.log.Info(fmt.Sprintf(format, v...), map[string]any{"component": "goose"})
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.log.Error(fmt.Sprintf(format, v...), map[string]any{"component": "goose"})
	os.Exit(1)
}
