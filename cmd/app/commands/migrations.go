package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/allisson/soulbound/internal/config"
)

// migrationsSource returns the migrate source URL holding the schema for driver.
func migrationsSource(driver string) (string, error) {
	switch driver {
	case config.DriverPostgres:
		return "file://migrations/postgresql", nil
	case config.DriverMySQL:
		return "file://migrations/mysql", nil
	default:
		return "", fmt.Errorf("no migrations for driver %q", driver)
	}
}

// RunMigrations brings the soulbound schema up to date. The memory backend has no schema.
func RunMigrations(logger *slog.Logger, dbDriver, dbConnectionString string) error {
	if dbDriver == config.DriverMemory {
		logger.Info("memory backend selected, no migrations to run")
		return nil
	}

	source, err := migrationsSource(dbDriver)
	if err != nil {
		return err
	}

	logger.Info("running database migrations", slog.String("driver", dbDriver), slog.String("source", source))

	m, err := migrate.New(source, dbConnectionString)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	logger.Info("migrations completed", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	return nil
}
