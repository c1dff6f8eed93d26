package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"animal-reservations/internal/adapters/auth/jwtauth"
	pg "animal-reservations/internal/adapters/storage/postgres"
	"animal-reservations/internal/config"
	"animal-reservations/internal/platform/logger"
	"animal-reservations/internal/router"
)

const appName = "animal-reservations"

var errNoDatabase = errors.New("DATABASE_URL is required for this command")

// rootFlags: los flags pisan archivo y entorno.
type rootFlags struct {
	configPath  string
	envFiles    []string
	port        string
	databaseURL string
	logLevel    string
	logFormat   string
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "api",
		Short:         "Animal reservations HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "YAML config file")
	pf.StringSliceVar(&f.envFiles, "env-file", []string{".env"}, "dotenv files to load (missing files are skipped)")
	pf.StringVar(&f.port, "port", "", "listen port (overrides PORT)")
	pf.StringVar(&f.databaseURL, "database-url", "", "postgres DSN (overrides DATABASE_URL)")
	pf.StringVar(&f.logLevel, "log-level", "", "debug|info|warn|error")
	pf.StringVar(&f.logFormat, "log-format", "", "text|json")

	serve := newServeCmd(f)
	// "api" sin subcomando levanta el server.
	cmd.RunE = serve.RunE
	cmd.Args = cobra.NoArgs

	cmd.AddCommand(
		serve,
		newMigrateCmd(f),
		newSeedCmd(f),
		newUsersCmd(f),
	)
	return cmd
}

// load arma la config final (defaults, archivo, entorno, flags) y el logger.
func (f *rootFlags) load() (config.Config, logger.Logger, error) {
	if err := config.LoadDotEnv(f.envFiles...); err != nil {
		return config.Config{}, nil, err
	}

	cfg, err := config.Load(f.configPath, os.LookupEnv)
	if err != nil {
		return config.Config{}, nil, err
	}

	if f.port != "" {
		cfg.Port = f.port
	}
	if f.databaseURL != "" {
		cfg.DatabaseURL = f.databaseURL
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Log.Format = f.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, fmt.Errorf("invalid config: %w", err)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    appName,
	})
	return cfg, log.With(map[string]any{"env": cfg.Env}), nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, errNoDatabase
	}
	return pg.Open(ctx, pg.EnsureSSL(cfg.DatabaseURL, cfg.IsProduction()), pg.DefaultPoolOptions())
}

// dbServices arma los services sobre Postgres para los comandos de admin.
func dbServices(cfg config.Config, db *sqlx.DB) (router.Services, error) {
	tokens, err := jwtauth.NewManager(cfg.JWTSecret, jwtauth.DefaultTTL)
	if err != nil {
		return router.Services{}, err
	}
	return router.NewServices(router.Options{DB: db, Tokens: tokens}), nil
}
