// internal/catalog/riddle.go
//
// Riddle persistence.
// A riddle is one emoji bound to a (game_mode, day_number) slot.

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/robalobadob/emojile/internal/database"
	"github.com/robalobadob/emojile/internal/game"
	"github.com/rs/zerolog"
)

var ErrNotFound = errors.New("riddle not found")

// Riddle is a catalog row.
type Riddle struct {
	ID        int64     `json:"id"`
	Emoji     string    `json:"emoji"`
	Name      string    `json:"-"`
	Category  string    `json:"category"`
	DayNumber int       `json:"day_number"`
	Mode      game.Mode `json:"game_mode"`
}

// Repository reads and writes the riddle table.
type Repository struct {
	db     *database.DB
	logger zerolog.Logger
}

func NewRepository(db *database.DB, logger zerolog.Logger) *Repository {
	return &Repository{db: db, logger: logger.With().Str("component", "catalog").Logger()}
}

const riddleColumns = `id, emoji, name, category, day_number, game_mode`

func scanRiddle(row *sql.Row) (*Riddle, error) {
	var r Riddle
	var mode string
	if err := row.Scan(&r.ID, &r.Emoji, &r.Name, &r.Category, &r.DayNumber, &mode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	r.Mode = game.Mode(mode)
	return &r, nil
}

// Get returns the riddle with the given id.
func (r *Repository) Get(ctx context.Context, id int64) (*Riddle, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+riddleColumns+` FROM riddle WHERE id = ?`, id)
	riddle, err := scanRiddle(row)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("get riddle %d: %w", id, err)
	}
	return riddle, err
}

// ByModeDay returns the riddle occupying a mode's day slot.
func (r *Repository) ByModeDay(ctx context.Context, mode game.Mode, day int) (*Riddle, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+riddleColumns+` FROM riddle WHERE game_mode = ? AND day_number = ?`,
		string(mode), day)
	riddle, err := scanRiddle(row)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("riddle %s/%d: %w", mode, day, err)
	}
	return riddle, err
}

// CountByMode returns how many riddles a mode rotates through.
func (r *Repository) CountByMode(ctx context.Context, mode game.Mode) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM riddle WHERE game_mode = ?`, string(mode)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count riddles for %s: %w", mode, err)
	}
	return n, nil
}

// ReplaceAll deletes every riddle and inserts riddles in one transaction.
func (r *Repository) ReplaceAll(ctx context.Context, riddles []Riddle) error {
	return r.db.WithTx(ctx, func(tx *database.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM riddle`); err != nil {
			return fmt.Errorf("clear riddles: %w", err)
		}
		for _, rd := range riddles {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO riddle (emoji, name, category, day_number, game_mode) VALUES (?, ?, ?, ?, ?)`,
				rd.Emoji, rd.Name, rd.Category, rd.DayNumber, string(rd.Mode),
			); err != nil {
				return fmt.Errorf("insert riddle %s/%d: %w", rd.Mode, rd.DayNumber, err)
			}
		}
		return nil
	})
}
