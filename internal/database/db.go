// internal/database/db.go
//
// Connection handling for Emojile.
// Responsibilities:
//   - Picking a dialect (SQLite, PostgreSQL, MySQL) from configuration.
//   - Opening the pool and applying dialect-specific settings.
//   - Rewriting ? placeholders so repositories write one flavour of SQL.

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/robalobadob/emojile/internal/config"
	"github.com/rs/zerolog"
)

// DB wraps the connection pool with dialect support.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open connects using cfg. It does not run migrations.
func Open(cfg *config.Config, logger zerolog.Logger) (*DB, error) {
	var dialect Dialect
	var dialectConfig DialectConfig

	switch cfg.DatabaseType {
	case "postgres":
		dialect = NewPostgresDialect()
		dialectConfig = DialectConfig{URL: cfg.DatabaseURL}
	case "mysql":
		dialect = NewMySQLDialect()
		dialectConfig = DialectConfig{URL: cfg.DatabaseURL}
	case "sqlite", "":
		dialect = NewSQLiteDialect()
		dialectConfig = DialectConfig{Path: cfg.DatabasePath}
		if err := ensureDir(cfg.DatabasePath); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.DatabaseType)
	}

	logger.Info().Str("db_type", cfg.DatabaseType).Msg("connecting to database")

	db, err := sql.Open(dialect.DriverName(), dialect.DSN(dialectConfig))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := dialect.ConfigureConnection(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure connection: %w", err)
	}

	logger.Info().Str("driver", dialect.DriverName()).Msg("database connection established")
	return &DB{DB: db, Dialect: dialect}, nil
}

// ensureDir creates the parent directory for file DSNs like ./data/emojile.db.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.DB.QueryContext(ctx, db.Dialect.RewriteQuery(query), args...)
}

func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.DB.QueryRowContext(ctx, db.Dialect.RewriteQuery(query), args...)
}

func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.DB.ExecContext(ctx, db.Dialect.RewriteQuery(query), args...)
}
