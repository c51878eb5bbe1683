package stats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/emojile/internal/database"
	"github.com/robalobadob/emojile/internal/game"
	"github.com/rs/zerolog"
)

// ErrAlreadyRecorded means the game's day was already counted for the
// player and mode.
var ErrAlreadyRecorded = errors.New("game already recorded")

// Repository persists PlayerStats.
type Repository struct {
	db     *database.DB
	logger zerolog.Logger
	now    func() time.Time
}

func NewRepository(db *database.DB, logger zerolog.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger.With().Str("component", "stats").Logger(),
		now:    time.Now,
	}
}

const statsColumns = `total_games, total_incorrect, current_play_streak, longest_play_streak,
	current_correct_streak, longest_correct_streak, last_played_datetime, last_game_date`

func load(ctx context.Context, q database.Querier, player string, mode game.Mode) (PlayerStats, error) {
	s := PlayerStats{PlayerUUID: player, Mode: mode}
	var last sql.NullTime
	var lastGame sql.NullString
	err := q.QueryRowContext(ctx,
		`SELECT `+statsColumns+` FROM player_stats WHERE player_uuid = ? AND game_mode = ?`,
		player, string(mode),
	).Scan(&s.TotalGames, &s.TotalIncorrect, &s.CurrentPlayStreak, &s.LongestPlayStreak,
		&s.CurrentCorrectStreak, &s.LongestCorrectStreak, &last, &lastGame)
	if err != nil {
		return s, err
	}
	if last.Valid {
		t := last.Time.UTC()
		s.LastPlayed = &t
	}
	s.LastGameDate = lastGame.String
	return s, nil
}

// Get returns the stored stats, or zero stats when the player has none yet.
func (r *Repository) Get(ctx context.Context, player string, mode game.Mode) (PlayerStats, error) {
	s, err := load(ctx, r.db, player, mode)
	if errors.Is(err, sql.ErrNoRows) {
		return PlayerStats{PlayerUUID: player, Mode: mode}, nil
	}
	if err != nil {
		return s, fmt.Errorf("load stats: %w", err)
	}
	return s, nil
}

// Record applies a completed game in a single transaction and returns the
// new stats. A second result for the same riddle day is refused with
// ErrAlreadyRecorded and the stored stats.
func (r *Repository) Record(ctx context.Context, player string, mode game.Mode, res GameResult) (PlayerStats, error) {
	var updated PlayerStats
	err := r.db.WithTx(ctx, func(tx *database.Tx) error {
		current, err := load(ctx, tx, player, mode)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("load stats: %w", err)
		}
		if err == nil && current.LastGameDate == gameKey(res.Date) {
			updated = current
			return ErrAlreadyRecorded
		}
		updated = Apply(current, res, r.now())

		result, err := tx.ExecContext(ctx, `
			UPDATE player_stats
			SET total_games = ?, total_incorrect = ?, current_play_streak = ?, longest_play_streak = ?,
				current_correct_streak = ?, longest_correct_streak = ?, last_played_datetime = ?, last_game_date = ?
			WHERE player_uuid = ? AND game_mode = ?`,
			updated.TotalGames, updated.TotalIncorrect, updated.CurrentPlayStreak, updated.LongestPlayStreak,
			updated.CurrentCorrectStreak, updated.LongestCorrectStreak, *updated.LastPlayed, updated.LastGameDate,
			player, string(mode),
		)
		if err != nil {
			return fmt.Errorf("update stats: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("update stats: %w", err)
		}
		if rows > 0 {
			return nil
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO player_stats (player_uuid, game_mode, `+statsColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			player, string(mode),
			updated.TotalGames, updated.TotalIncorrect, updated.CurrentPlayStreak, updated.LongestPlayStreak,
			updated.CurrentCorrectStreak, updated.LongestCorrectStreak, *updated.LastPlayed, updated.LastGameDate,
		); err != nil {
			return fmt.Errorf("insert stats: %w", err)
		}
		return nil
	})
	if errors.Is(err, ErrAlreadyRecorded) {
		return updated, err
	}
	if err != nil {
		return PlayerStats{}, err
	}

	r.logger.Debug().
		Str("player_uuid", player).
		Str("game_mode", string(mode)).
		Str("outcome", string(res.Outcome)).
		Int("total_games", updated.TotalGames).
		Msg("stats recorded")
	return updated, nil
}
