package main

import (
	"fmt"

	"github.com/spf13/cobra"

	pg "animal-reservations/internal/adapters/storage/postgres"
)

func newMigrateCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply or roll back the schema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := f.load()
			if err != nil {
				return err
			}

			db, err := openDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			switch args[0] {
			case "up":
				return pg.MigrateUp(cmd.Context(), db.DB, log)
			case "down":
				return pg.MigrateDown(cmd.Context(), db.DB, log)
			case "status":
				return pg.MigrateStatus(cmd.Context(), db.DB, log)
			}
			return fmt.Errorf("unknown migrate action %q", args[0])
		},
	}
}
