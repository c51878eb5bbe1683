package daily

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/emojile/internal/catalog"
	"github.com/robalobadob/emojile/internal/game"
	"github.com/rs/zerolog"
)

// ErrNoRiddle means the catalog has nothing for the requested mode and day.
var ErrNoRiddle = errors.New("no riddle available")

// RiddleSource is the part of the catalog the selector reads.
type RiddleSource interface {
	CountByMode(ctx context.Context, mode game.Mode) (int, error)
	ByModeDay(ctx context.Context, mode game.Mode, day int) (*catalog.Riddle, error)
}

// Selector picks the riddle of the day for a mode.
type Selector struct {
	riddles RiddleSource
	logger  zerolog.Logger
}

func NewSelector(riddles RiddleSource, logger zerolog.Logger) *Selector {
	return &Selector{riddles: riddles, logger: logger.With().Str("component", "selector").Logger()}
}

// Today returns the riddle for mode on date.
func (s *Selector) Today(ctx context.Context, mode game.Mode, date time.Time) (*catalog.Riddle, error) {
	n, err := s.riddles.CountByMode(ctx, mode)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		s.logger.Warn().Str("game_mode", string(mode)).Msg("catalog is empty for mode")
		return nil, fmt.Errorf("%s has no riddles: %w", mode, ErrNoRiddle)
	}

	day := DayNumber(date, n)
	r, err := s.riddles.ByModeDay(ctx, mode, day)
	if errors.Is(err, catalog.ErrNotFound) {
		s.logger.Warn().Str("game_mode", string(mode)).Int("day_number", day).Msg("no riddle for day slot")
		return nil, fmt.Errorf("%s day %d: %w", mode, day, ErrNoRiddle)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}
