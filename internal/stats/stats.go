// internal/stats/stats.go
//
// Per-player, per-mode statistics.
// Apply is the pure update rule; Repository persists it.

package stats

import (
	"time"

	"github.com/robalobadob/emojile/internal/game"
)

// PlayerStats mirrors a player_stats row.
type PlayerStats struct {
	PlayerUUID           string
	Mode                 game.Mode
	TotalGames           int
	TotalIncorrect       int
	CurrentPlayStreak    int
	LongestPlayStreak    int
	CurrentCorrectStreak int
	LongestCorrectStreak int
	LastPlayed           *time.Time // UTC
	LastGameDate         string     // YYYY-MM-DD of the last recorded riddle day
}

// GameResult is what the stats updater needs from a finished game.
type GameResult struct {
	Outcome   game.Outcome
	Incorrect int
	Date      time.Time // the riddle's day
}

// Apply folds one completed game into s. now becomes the new last-played time.
func Apply(s PlayerStats, res GameResult, now time.Time) PlayerStats {
	s.TotalGames++
	s.TotalIncorrect += res.Incorrect

	gameDay := midnight(res.Date)
	switch {
	case s.LastPlayed != nil && midnight(*s.LastPlayed).Equal(gameDay):
		// same day, streak unchanged
	case s.LastPlayed != nil && midnight(*s.LastPlayed).Equal(gameDay.AddDate(0, 0, -1)):
		s.CurrentPlayStreak++
	default:
		s.CurrentPlayStreak = 1
	}

	if res.Outcome == game.OutcomeWin {
		s.CurrentCorrectStreak++
	} else {
		s.CurrentCorrectStreak = 0
	}

	s.LongestPlayStreak = max(s.LongestPlayStreak, s.CurrentPlayStreak)
	s.LongestCorrectStreak = max(s.LongestCorrectStreak, s.CurrentCorrectStreak)

	played := now.UTC()
	s.LastPlayed = &played
	s.LastGameDate = gameKey(res.Date)
	return s
}

// Summary is the read-side view shown to the player.
type Summary struct {
	TotalGames           int        `json:"total_games"`
	TotalIncorrect       int        `json:"total_incorrect"`
	AvgIncorrect         float64    `json:"avg_incorrect"`
	CurrentPlayStreak    int        `json:"current_play_streak"`
	LongestPlayStreak    int        `json:"longest_play_streak"`
	CurrentCorrectStreak int        `json:"current_correct_streak"`
	LongestCorrectStreak int        `json:"longest_correct_streak"`
	LastPlayed           *time.Time `json:"last_played_datetime,omitempty"`
}

// Summary computes the display values for today. Current streaks read as 0
// once a whole day has been missed; nothing is written back.
func (s PlayerStats) Summary(today time.Time) Summary {
	out := Summary{
		TotalGames:           s.TotalGames,
		TotalIncorrect:       s.TotalIncorrect,
		CurrentPlayStreak:    s.CurrentPlayStreak,
		LongestPlayStreak:    s.LongestPlayStreak,
		CurrentCorrectStreak: s.CurrentCorrectStreak,
		LongestCorrectStreak: s.LongestCorrectStreak,
		LastPlayed:           s.LastPlayed,
	}
	if s.TotalGames > 0 {
		out.AvgIncorrect = float64(s.TotalIncorrect) / float64(s.TotalGames)
	}
	if s.LastPlayed != nil && midnight(*s.LastPlayed).Before(midnight(today).AddDate(0, 0, -1)) {
		out.CurrentPlayStreak = 0
		out.CurrentCorrectStreak = 0
	}
	return out
}

func gameKey(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
