package main

import (
	"fmt"

	"github.com/spf13/cobra"

	pg "animal-reservations/internal/adapters/storage/postgres"
	"animal-reservations/internal/seed"
)

func newSeedCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Drop, recreate and fill the tables with the demo fixtures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := f.load()
			if err != nil {
				return err
			}

			db, err := openDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := pg.Reset(cmd.Context(), db.DB, log); err != nil {
				return err
			}

			svcs, err := dbServices(cfg, db)
			if err != nil {
				return err
			}
			res, err := seed.Run(cmd.Context(), seed.Services(svcs), log)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d animals, %d reservations\n",
				len(res.Users), len(res.Animals), len(res.Reservations))
			return nil
		},
	}
}
