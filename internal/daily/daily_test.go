package daily

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robalobadob/emojile/internal/catalog"
	"github.com/robalobadob/emojile/internal/game"
	"github.com/rs/zerolog"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDayNumber(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		n    int
		want int
	}{
		{"epoch", date(2024, 1, 1), 15, 0},
		{"day 14", date(2024, 1, 15), 15, 14},
		{"wraps", date(2024, 1, 16), 15, 0},
		{"leap day", date(2024, 2, 29), 15, 59 % 15},
		{"before epoch", date(2023, 12, 31), 15, 14},
		{"far before epoch", date(2023, 12, 17), 15, 0},
		{"single riddle", date(2030, 6, 1), 1, 0},
		{"time of day ignored", time.Date(2024, 1, 2, 23, 59, 59, 0, time.UTC), 15, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayNumber(tt.date, tt.n); got != tt.want {
				t.Errorf("DayNumber(%s, %d) = %d, want %d", DateKey(tt.date), tt.n, got, tt.want)
			}
		})
	}
}

func TestDayNumberIsPeriodic(t *testing.T) {
	for _, n := range []int{1, 2, 7, 15} {
		for d := -40; d < 40; d++ {
			a := Epoch.AddDate(0, 0, d)
			b := a.AddDate(0, 0, n)
			if DayNumber(a, n) != DayNumber(b, n) {
				t.Fatalf("n=%d: DayNumber(%s) != DayNumber(%s)", n, DateKey(a), DateKey(b))
			}
		}
	}
}

func TestEffectiveDateAndNextReset(t *testing.T) {
	now := time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC)
	if got := EffectiveDate(now, nil); !got.Equal(date(2025, 3, 10)) {
		t.Errorf("EffectiveDate(now) = %s", got)
	}
	off := 20
	if got := EffectiveDate(now, &off); !got.Equal(date(2024, 1, 21)) {
		t.Errorf("EffectiveDate(offset 20) = %s", got)
	}
	if got := NextReset(now); !got.Equal(date(2025, 3, 11)) {
		t.Errorf("NextReset = %s", got)
	}
	// non-UTC input still lands on the UTC day
	est := time.FixedZone("EST", -5*3600)
	if got := DateKey(time.Date(2025, 3, 10, 21, 0, 0, 0, est)); got != "2025-03-11" {
		t.Errorf("DateKey = %s, want 2025-03-11", got)
	}
}

type fakeSource struct {
	counts  map[game.Mode]int
	riddles map[game.Mode]map[int]*catalog.Riddle
	err     error
}

func (f *fakeSource) CountByMode(_ context.Context, mode game.Mode) (int, error) {
	return f.counts[mode], f.err
}

func (f *fakeSource) ByModeDay(_ context.Context, mode game.Mode, day int) (*catalog.Riddle, error) {
	if r, ok := f.riddles[mode][day]; ok {
		return r, nil
	}
	return nil, catalog.ErrNotFound
}

func TestSelectorToday(t *testing.T) {
	src := &fakeSource{
		counts: map[game.Mode]int{game.Classic: 15, game.Pixelated: 15},
		riddles: map[game.Mode]map[int]*catalog.Riddle{
			game.Classic: {
				0: {ID: 1, Name: "Grinning Face", Mode: game.Classic},
				3: {ID: 4, Name: "Thumbs Up", Mode: game.Classic},
			},
		},
	}
	s := NewSelector(src, zerolog.Nop())
	ctx := context.Background()

	r, err := s.Today(ctx, game.Classic, date(2024, 1, 1))
	if err != nil || r.ID != 1 {
		t.Fatalf("Today(2024-01-01) = %+v, %v", r, err)
	}
	r, err = s.Today(ctx, game.Classic, date(2024, 1, 19))
	if err != nil || r.ID != 4 {
		t.Fatalf("Today(2024-01-19) = %+v, %v", r, err)
	}

	if _, err := s.Today(ctx, game.Pixelated, date(2024, 1, 1)); !errors.Is(err, ErrNoRiddle) {
		t.Errorf("missing slot err = %v, want ErrNoRiddle", err)
	}
	src.counts[game.Pixelated] = 0
	if _, err := s.Today(ctx, game.Pixelated, date(2024, 1, 1)); !errors.Is(err, ErrNoRiddle) {
		t.Errorf("empty mode err = %v, want ErrNoRiddle", err)
	}

	src.err = errors.New("db down")
	if _, err := s.Today(ctx, game.Classic, date(2024, 1, 1)); err == nil || errors.Is(err, ErrNoRiddle) {
		t.Errorf("storage err = %v, want passthrough", err)
	}
}
