// Package migration applies the database schema. Postgres deployments run
// versioned SQL migrations; other dialects fall back to model-driven schema
// sync, which keeps local and test setups on sqlite working.
package migration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	auditdomain "github.com/roomledger/roomledger/internal/audit/domain"
	"github.com/roomledger/roomledger/internal/config"
	metricdomain "github.com/roomledger/roomledger/internal/metric/domain"
	userdomain "github.com/roomledger/roomledger/internal/user/domain"
	"gorm.io/gorm"
)

// Run brings the schema up to date for the configured dialect.
func Run(cfg config.Config, conn *gorm.DB) error {
	if strings.EqualFold(cfg.DBType, "postgres") {
		return runVersioned(conn)
	}
	return conn.AutoMigrate(
		&userdomain.User{},
		&metricdomain.Record{},
		&auditdomain.Entry{},
	)
}

func runVersioned(conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("migration: acquire sql handle: %w", err)
	}

	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("migration: load embedded migrations: %w", err)
	}

	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("migration: init postgres driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("migration: init migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration: apply: %w", err)
	}
	return nil
}
