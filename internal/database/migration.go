package database

import (
	"errors"
	"fmt"
	"path/filepath"

	"assetdirectory/internal/database/migration"

	"go.uber.org/zap"
)

var ErrMissingDatabaseURL = errors.New("DATABASE_URL is not set")

// RunMigrations applies every pending migration found in migrationsDir.
func RunMigrations(dbURL, migrationsDir string, logger *zap.Logger) error {
	if dbURL == "" {
		return ErrMissingDatabaseURL
	}

	absPath, err := filepath.Abs(migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	return migration.Migrate(dbURL, "file://"+absPath, true, logger)
}
