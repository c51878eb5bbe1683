// internal/catalog/initializer.go
//
// One-shot catalog generation.
//
// For every day slot d in 0..M-1 and every mode (in order), the prospective
// emoji index is (d + modeOffset) mod M. When an earlier mode already claimed
// that index on the same slot, the index is probed forward (wrapping) until a
// free one is found. If none is free the prospective index is kept and the
// slot is reported as degraded.

package catalog

import (
	"context"
	"fmt"

	"github.com/robalobadob/emojile/internal/emojis"
	"github.com/robalobadob/emojile/internal/game"
	"github.com/rs/zerolog"
)

// Collision records a slot where a mode had to reuse an emoji.
type Collision struct {
	Day   int
	Mode  game.Mode
	Index int
}

// Plan is the output of Assign.
type Plan struct {
	Riddles  []Riddle
	Degraded []Collision
}

// Assign distributes list over modes. It does not touch the database.
func Assign(list []emojis.Emoji, modes []game.Mode) (Plan, error) {
	m := len(list)
	if m == 0 {
		return Plan{}, emojis.ErrEmptyList
	}

	plan := Plan{Riddles: make([]Riddle, 0, m*len(modes))}
	for day := 0; day < m; day++ {
		claimed := make(map[int]bool, len(modes))
		for offset, mode := range modes {
			idx := (day + offset) % m
			if claimed[idx] {
				free := -1
				for step := 1; step < m; step++ {
					if c := (idx + step) % m; !claimed[c] {
						free = c
						break
					}
				}
				if free >= 0 {
					idx = free
				} else {
					plan.Degraded = append(plan.Degraded, Collision{Day: day, Mode: mode, Index: idx})
				}
			}
			claimed[idx] = true

			e := list[idx]
			plan.Riddles = append(plan.Riddles, Riddle{
				Emoji:     e.Emoji,
				Name:      e.Name,
				Category:  e.Category,
				DayNumber: day,
				Mode:      mode,
			})
		}
	}
	return plan, nil
}

// Initializer rebuilds the catalog from a master list.
type Initializer struct {
	repo   *Repository
	logger zerolog.Logger
}

func NewInitializer(repo *Repository, logger zerolog.Logger) *Initializer {
	return &Initializer{repo: repo, logger: logger.With().Str("component", "catalog_init").Logger()}
}

// Run replaces every riddle with a fresh assignment and returns how many rows
// were written.
func (i *Initializer) Run(ctx context.Context, list []emojis.Emoji, modes []game.Mode) (int, error) {
	plan, err := Assign(list, modes)
	if err != nil {
		return 0, err
	}
	for _, c := range plan.Degraded {
		i.logger.Warn().
			Int("day_number", c.Day).
			Str("game_mode", string(c.Mode)).
			Str("emoji", list[c.Index].Emoji).
			Msg("no unused emoji left for this day, reusing one from another mode")
	}

	if err := i.repo.ReplaceAll(ctx, plan.Riddles); err != nil {
		return 0, fmt.Errorf("initialize catalog: %w", err)
	}

	i.logger.Info().
		Int("emojis", len(list)).
		Int("modes", len(modes)).
		Int("riddles", len(plan.Riddles)).
		Int("degraded", len(plan.Degraded)).
		Msg("catalog initialized")
	return len(plan.Riddles), nil
}
