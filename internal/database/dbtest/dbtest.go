// Package dbtest opens migrated SQLite databases for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/robalobadob/emojile/internal/config"
	"github.com/robalobadob/emojile/internal/database"
	"github.com/rs/zerolog"
)

// Open returns a fully migrated database in t.TempDir(), closed on cleanup.
func Open(t testing.TB) *database.DB {
	t.Helper()
	cfg := &config.Config{
		DatabaseType: "sqlite",
		DatabasePath: filepath.Join(t.TempDir(), "test.db"),
	}
	db, err := database.Open(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(context.Background(), db, zerolog.Nop()); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}
