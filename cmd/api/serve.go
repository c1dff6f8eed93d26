package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"animal-reservations/internal/adapters/auth/jwtauth"
	"animal-reservations/internal/adapters/storage/memory"
	pg "animal-reservations/internal/adapters/storage/postgres"
	"animal-reservations/internal/router"
	"animal-reservations/internal/seed"
)

func newServeCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server.

With DATABASE_URL set, pending migrations run before listening. Without it the
API runs on an in-memory store, seeded with the demo fixtures when
SEED_MEMORY is true.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := f.load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			tokens, err := jwtauth.NewManager(cfg.JWTSecret, jwtauth.DefaultTTL)
			if err != nil {
				return err
			}

			opts := router.Options{
				Tokens:            tokens,
				Logger:            log,
				CORSOrigins:       cfg.CORSOrigins,
				RequestTimeout:    cfg.RequestTimeout,
				AuthRatePerSecond: cfg.AuthRatePerSecond,
				AuthRateBurst:     cfg.AuthRateBurst,
			}

			if cfg.DatabaseURL != "" {
				db, err := openDB(ctx, cfg)
				if err != nil {
					return err
				}
				defer db.Close()

				if err := pg.MigrateUp(ctx, db.DB, log); err != nil {
					return err
				}
				opts.DB = db
				log.Info("using postgres store", nil)
			} else {
				opts.Memory = memory.NewStore()
				log.Warn("DATABASE_URL not set, using in-memory store", nil)

				if cfg.SeedMemory {
					svcs := router.NewServices(opts)
					if _, err := seed.Run(ctx, seed.Services(svcs), log); err != nil {
						return err
					}
				}
			}

			srv := &http.Server{
				Addr:              cfg.Addr(),
				Handler:           router.NewRouter(opts),
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       10 * time.Second,
				WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
				IdleTimeout:       60 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("listening", map[string]any{"addr": srv.Addr})
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			log.Info("shutting down", nil)
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
