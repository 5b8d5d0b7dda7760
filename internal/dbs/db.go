package dbs

import (
	"context"
	"fmt"
	"time"

	"codetrek/configs"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	// Pure Go SQLite driver for local development and tests.
	_ "modernc.org/sqlite"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// DSN builds the data source name for the configured driver.
func DSN(cfg *configs.Config) string {
	if cfg.DBDriver == DriverSQLite {
		return cfg.DBPath
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		cfg.DBUser, cfg.DBPassword,
		cfg.DBHost, cfg.DBPort,
		cfg.DBName,
	)
}

// Open connects to the database, verifies the connection and applies the schema.
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", driver, err)
	}

	if driver == DriverSQLite {
		// One connection serializes writers and keeps ":memory:" databases alive.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to %s database: %w", driver, err)
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates missing tables for the connection's dialect.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	statements := mysqlSchema
	if db.DriverName() == DriverSQLite {
		statements = sqliteSchema
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("running schema migration: %w", err)
		}
	}
	return nil
}

// InsertIgnore returns the dialect's insert-unless-duplicate keyword.
func InsertIgnore(db *sqlx.DB) string {
	if db.DriverName() == DriverSQLite {
		return "INSERT OR IGNORE"
	}
	return "INSERT IGNORE"
}
