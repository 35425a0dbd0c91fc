package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/db"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/model"
)

// dbMigrateCmd represents the db migrate command
var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create and/or upgrade the database schema",
	Long: `Create and/or upgrade the database schema.

Postgres databases are migrated with the SQL files in db/migrations.
A sqlite:// database is brought up to date from the model definitions.

Example:
  portfolioctl db migrate`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runMigrations(); err != nil {
			fail("Migration failed", err)
		}
	},
}

var dbMigrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Rollback database migrations",
	Long: `Rollback database migrations.

This command rolls back the specified number of migrations (default: 1).
It is not available for sqlite databases.

Example:
  portfolioctl db down      # Rollback 1 migration
  portfolioctl db down 3    # Rollback 3 migrations`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		steps := 1
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				fail("Invalid step count", fmt.Errorf("%q is not a positive number", args[0]))
			}
			steps = n
		}

		if err := runMigrationsDown(steps); err != nil {
			fail("Rollback failed", err)
		}
	},
}

var dbMigrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current migration version",
	Long:  `Show the current database migration version.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := showMigrationStatus(); err != nil {
			fail("Failed to get status", err)
		}
	},
}

func init() {
	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbMigrateDownCmd)
	dbCmd.AddCommand(dbMigrateStatusCmd)
}

var errNoDatabaseURL = errors.New("DATABASE_URL environment variable is required")

func runMigrations() error {
	dbURL := db.URL()
	if dbURL == "" {
		return errNoDatabaseURL
	}
	if db.IsSQLite(dbURL) {
		return autoMigrate(dbURL)
	}

	m, err := createMigrateInstance(dbURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	version, dirty, _ := m.Version()
	fmt.Printf("Current version: %d (dirty: %v)\n", version, dirty)

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("No migrations to run - database is up to date")
			return nil
		}
		return fmt.Errorf("migration failed: %w", err)
	}

	newVersion, _, _ := m.Version()
	fmt.Printf("Migrated to version: %d\n", newVersion)
	fmt.Println("Migrations complete")
	return nil
}

// autoMigrate creates or updates the sqlite schema from the models.
func autoMigrate(dbURL string) error {
	database, err := db.Connect(db.Config{URL: dbURL})
	if err != nil {
		return err
	}
	if sqlDB, err := database.DB(); err == nil {
		defer func() { _ = sqlDB.Close() }()
	}

	if err := database.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", db.SQLitePath(dbURL), err)
	}
	fmt.Printf("Schema of %s is up to date\n", db.SQLitePath(dbURL))
	return nil
}

func runMigrationsDown(steps int) error {
	dbURL := db.URL()
	if dbURL == "" {
		return errNoDatabaseURL
	}
	if db.IsSQLite(dbURL) {
		return errors.New("sqlite databases are not versioned; remove the file to start over")
	}

	m, err := createMigrateInstance(dbURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	fmt.Printf("Rolling back %d migration(s)...\n", steps)

	if err := m.Steps(-steps); err != nil {
		return fmt.Errorf("rollback failed: %w", err)
	}

	version, _, _ := m.Version()
	fmt.Printf("Rolled back to version: %d\n", version)
	return nil
}

func showMigrationStatus() error {
	dbURL := db.URL()
	if dbURL == "" {
		return errNoDatabaseURL
	}
	if db.IsSQLite(dbURL) {
		fmt.Println("sqlite database: schema is managed from the models")
		return nil
	}

	m, err := createMigrateInstance(dbURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	version, dirty, err := m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("No migrations applied yet")
			return nil
		}
		return err
	}

	files, err := listMigrationFiles()
	if err != nil {
		return err
	}
	fmt.Printf("Current version: %d\n", version)
	fmt.Printf("Dirty: %v\n", dirty)
	fmt.Printf("Available migrations: %d\n", len(files))
	if dirty {
		fmt.Fprintln(os.Stderr, "Warning: the last migration failed part way; fix the schema and force the version")
	}
	return nil
}
