package database

import (
	"context"
	"embed"
	"fmt"
	"path"
	"strings"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*/*.sql
var embedMigrations embed.FS

// gooseLogger routes goose output through zerolog.
type gooseLogger struct {
	logger zerolog.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info().Msgf(strings.TrimSuffix(format, "\n"), v...)
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Fatal().Msgf(strings.TrimSuffix(format, "\n"), v...)
}

func prepareGoose(db *DB, logger zerolog.Logger) (string, error) {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(gooseLogger{logger: logger.With().Str("component", "goose").Logger()})
	if err := goose.SetDialect(db.Dialect.GooseDialect()); err != nil {
		return "", fmt.Errorf("set goose dialect: %w", err)
	}
	return path.Join("migrations", db.Dialect.MigrationsSubdir()), nil
}

// Migrate applies every pending migration for the connection's dialect.
func Migrate(ctx context.Context, db *DB, logger zerolog.Logger) error {
	dir, err := prepareGoose(db, logger)
	if err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db.DB, dir); err != nil {
		return fmt.Errorf("run goose migrations: %w", err)
	}
	logger.Info().Msg("migrations completed successfully")
	return nil
}

// Version reports the current schema version.
func Version(ctx context.Context, db *DB, logger zerolog.Logger) (int64, error) {
	if _, err := prepareGoose(db, logger); err != nil {
		return 0, err
	}
	v, err := goose.GetDBVersionContext(ctx, db.DB)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}
