package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joestump/linkboard/internal/config"
	"github.com/joestump/linkboard/internal/db"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations for the sql backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadRuntime()
			if err != nil {
				return err
			}
			if cfg.Store.Backend != config.BackendSQL {
				return fmt.Errorf("migrate needs LINKBOARD_STORE_BACKEND=%s", config.BackendSQL)
			}

			database, err := openDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver); err != nil {
				return err
			}

			log.Info("migrations complete")
			return nil
		},
	}
}
