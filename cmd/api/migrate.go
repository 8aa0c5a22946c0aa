package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"userapi/internal/config"
	"userapi/internal/database/migration"
	"userapi/internal/store/postgres"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the PostgreSQL documents schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			loadLocation(cfg.Timezone)
			if cfg.Store.Driver != config.DriverPostgres {
				return fmt.Errorf("%w: migrate needs STORE_DRIVER=%s, got %q",
					config.ErrConfiguration, config.DriverPostgres, cfg.Store.Driver)
			}

			conn, err := postgres.NewConnector(cfg.Store)
			if err != nil {
				return err
			}
			defer conn.Close(cmd.Context())

			return migration.EnsureMigrated(cmd.Context(), conn.DB(), cfg.Store.DatabaseName)
		},
	}
}
