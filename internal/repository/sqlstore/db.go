package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/andresuchdata/agarbatti/backend-go/internal/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
	_ "modernc.org/sqlite"
)

type DB struct {
	*sqlx.DB
	dialect string
	sem     *semaphore.Weighted
}

// NewDB opens a connection pool for the configured driver.
func NewDB(cfg *config.DatabaseConfig) (*DB, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return OpenSQLite(cfg.SQLitePath)
	case config.DriverPostgres, "":
		connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

		db, err := sqlx.Connect("postgres", connStr)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}

		// Configure connection pool
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return wrap(db, config.DriverPostgres, 10), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// OpenSQLite opens (and creates) a database file. ":memory:" is accepted.
func OpenSQLite(path string) (*DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}
	// One writer at a time; also keeps ":memory:" on a single connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure sqlite: %w", err)
	}

	return wrap(db, config.DriverSQLite, 1), nil
}

// FromSQL wraps an existing postgres-compatible pool, such as one opened
// through the pgx stdlib driver.
func FromSQL(sqlDB *sql.DB, driverName string) *DB {
	return wrap(sqlx.NewDb(sqlDB, driverName), config.DriverPostgres, 10)
}

func wrap(db *sqlx.DB, dialect string, concurrency int64) *DB {
	return &DB{
		DB:      db,
		dialect: dialect,
		sem:     semaphore.NewWeighted(concurrency),
	}
}

func (db *DB) Dialect() string {
	return db.dialect
}

// WithTx executes a function within a transaction
func (db *DB) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	// Acquire semaphore
	if err := db.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("could not acquire semaphore: %w", err)
	}
	defer db.sem.Release(1)

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("could not rollback transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}
