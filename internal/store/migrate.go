package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // registers postgres:// for migrate
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrations embed.FS

// migrateSQLite applies the embedded SQLite migrations on an open handle.
// The migrate instance is not closed because closing it would close db.
func migrateSQLite(db *sql.DB) error {
	src, err := iofs.New(migrations, "migrations/sqlite")
	if err != nil {
		return fmt.Errorf("failed to open sqlite migrations: %w", err)
	}
	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create sqlite migrate driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return up(m)
}

// migratePostgres applies the embedded PostgreSQL migrations using its own connection.
func migratePostgres(url string) (retErr error) {
	src, err := iofs.New(migrations, "migrations/postgres")
	if err != nil {
		return fmt.Errorf("failed to open postgres migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if retErr == nil {
			retErr = errors.Join(srcErr, dbErr)
		}
	}()
	return up(m)
}

func up(m *migrate.Migrate) error {
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
