package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/robalobadob/emojile/internal/config"
	"github.com/rs/zerolog"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	cfg := &config.Config{
		DatabaseType: "sqlite",
		DatabasePath: filepath.Join(t.TempDir(), "data", "test.db"),
	}
	db, err := Open(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		in      string
		want    string
	}{
		{"sqlite untouched", NewSQLiteDialect(), "SELECT * FROM riddle WHERE id = ?", "SELECT * FROM riddle WHERE id = ?"},
		{"mysql untouched", NewMySQLDialect(), "SELECT * FROM riddle WHERE id = ?", "SELECT * FROM riddle WHERE id = ?"},
		{"postgres numbered", NewPostgresDialect(), "UPDATE t SET a = ?, b = ? WHERE c = ?", "UPDATE t SET a = $1, b = $2 WHERE c = $3"},
		{"postgres no args", NewPostgresDialect(), "DELETE FROM riddle", "DELETE FROM riddle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.RewriteQuery(tt.in); got != tt.want {
				t.Errorf("RewriteQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMySQLDSNForcesParseTime(t *testing.T) {
	d := NewMySQLDialect()
	tests := []struct{ in, want string }{
		{"u:p@tcp(db:3306)/emojile", "u:p@tcp(db:3306)/emojile?parseTime=true"},
		{"u:p@tcp(db:3306)/emojile?charset=utf8mb4", "u:p@tcp(db:3306)/emojile?charset=utf8mb4&parseTime=true"},
		{"u:p@tcp(db:3306)/emojile?parseTime=false", "u:p@tcp(db:3306)/emojile?parseTime=false"},
	}
	for _, tt := range tests {
		if got := d.DSN(DialectConfig{URL: tt.in}); got != tt.want {
			t.Errorf("DSN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDialectMetadata(t *testing.T) {
	tests := []struct {
		dialect      Dialect
		driver, dir  string
		gooseDialect string
	}{
		{NewSQLiteDialect(), "sqlite3", "sqlite", "sqlite3"},
		{NewPostgresDialect(), "postgres", "postgres", "postgres"},
		{NewMySQLDialect(), "mysql", "mysql", "mysql"},
	}
	for _, tt := range tests {
		if got := tt.dialect.DriverName(); got != tt.driver {
			t.Errorf("DriverName() = %q, want %q", got, tt.driver)
		}
		if got := tt.dialect.MigrationsSubdir(); got != tt.dir {
			t.Errorf("MigrationsSubdir() = %q, want %q", got, tt.dir)
		}
		if got := tt.dialect.GooseDialect(); got != tt.gooseDialect {
			t.Errorf("GooseDialect() = %q, want %q", got, tt.gooseDialect)
		}
	}
}

func TestMigrateCreatesSchema(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := Migrate(ctx, db, zerolog.Nop()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	v, err := Version(ctx, db, zerolog.Nop())
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if v != 5 {
		t.Errorf("schema version = %d, want 5", v)
	}

	// (game_mode, day_number) is unique, the same emoji may appear in two modes.
	if _, err := db.ExecContext(ctx,
		`INSERT INTO riddle (emoji, name, category, day_number, game_mode) VALUES (?, ?, ?, ?, ?), (?, ?, ?, ?, ?)`,
		"🍕", "Pizza", "Food", 0, "Classic",
		"🍕", "Pizza", "Food", 0, "Pixelated",
	); err != nil {
		t.Fatalf("insert same emoji in two modes: %v", err)
	}
	if _, err := db.ExecContext(ctx,
		`INSERT INTO riddle (emoji, name, category, day_number, game_mode) VALUES (?, ?, ?, ?, ?)`,
		"🚀", "Rocket", "Travel", 0, "Classic",
	); err == nil {
		t.Error("expected duplicate (game_mode, day_number) to fail")
	}

	// player_stats is keyed by (player_uuid, game_mode).
	if _, err := db.ExecContext(ctx,
		`INSERT INTO player_stats (player_uuid, game_mode) VALUES (?, ?), (?, ?)`,
		"p1", "Classic", "p1", "Pixelated",
	); err != nil {
		t.Fatalf("insert stats for two modes: %v", err)
	}
}

func TestMigrateBackfillsExistingRows(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	dir, err := prepareGoose(db, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if err := goose.UpToContext(ctx, db.DB, dir, 1); err != nil {
		t.Fatalf("migrate to v1: %v", err)
	}

	for _, r := range []struct{ emoji, name string }{{"😀", "Grinning Face"}, {"❤️", "Red Heart"}, {"🚀", "Rocket"}} {
		if _, err := db.ExecContext(ctx, `INSERT INTO riddle (emoji, name, category) VALUES (?, ?, ?)`, r.emoji, r.name, "Test"); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO player_stats (player_uuid, total_games) VALUES (?, ?)`, "p1", 3); err != nil {
		t.Fatal(err)
	}

	if err := Migrate(ctx, db, zerolog.Nop()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	rows, err := db.QueryContext(ctx, `SELECT name, day_number, game_mode FROM riddle ORDER BY id`)
	if err != nil {
		t.Fatal(err)
	}
	defer rows.Close()
	want := []string{"Grinning Face", "Red Heart", "Rocket"}
	i := 0
	for rows.Next() {
		var name, mode string
		var day int
		if err := rows.Scan(&name, &day, &mode); err != nil {
			t.Fatal(err)
		}
		if name != want[i] || day != i || mode != "Classic" {
			t.Errorf("row %d = (%s, %d, %s), want (%s, %d, Classic)", i, name, day, mode, want[i], i)
		}
		i++
	}
	if i != len(want) {
		t.Fatalf("got %d rows, want %d", i, len(want))
	}

	var mode string
	var games int
	if err := db.QueryRowContext(ctx, `SELECT game_mode, total_games FROM player_stats WHERE player_uuid = ?`, "p1").Scan(&mode, &games); err != nil {
		t.Fatal(err)
	}
	if mode != "Classic" || games != 3 {
		t.Errorf("stats row = (%s, %d), want (Classic, 3)", mode, games)
	}
}

func TestWithTxRollsBack(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	if err := Migrate(ctx, db, zerolog.Nop()); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	err := db.WithTx(ctx, func(tx *Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO player_stats (player_uuid, game_mode) VALUES (?, ?)`, "p1", "Classic"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx error = %v, want boom", err)
	}

	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM player_stats`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("rows after rollback = %d, want 0", n)
	}
}
