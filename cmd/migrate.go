package cmd

import (
	"fmt"

	"assetdirectory/internal/database"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run migrations manually.",
		Long:  `Creates the catalog tables used by the postgres backend.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := runtime(cmd)
			if err != nil {
				return err
			}
			defer log.Sync()

			migrationDir, _ := cmd.Flags().GetString("dir")
			if migrationDir == "" {
				migrationDir = cfg.MigrationsDir
			}

			if err := database.RunMigrations(cfg.DatabaseURL, migrationDir, log); err != nil {
				return fmt.Errorf("migrate database: %w", err)
			}

			return nil
		},
	}
	migrateCmd.Flags().String("dir", "", "Directory containing the migration files")

	return migrateCmd
}
