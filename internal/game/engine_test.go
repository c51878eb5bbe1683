package game

import (
	"errors"
	"reflect"
	"testing"
)

func play(t *testing.T, g *Game, answer string, letters ...string) Result {
	t.Helper()
	var res Result
	for _, l := range letters {
		var err error
		res, err = g.ApplyGuess(answer, l)
		if err != nil {
			t.Fatalf("ApplyGuess(%q): %v", l, err)
		}
	}
	return res
}

func TestApplyGuessRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		guess string
	}{
		{"empty", ""},
		{"two letters", "ab"},
		{"digit", "1"},
		{"symbol", "?"},
		{"non-ascii letter", "é"},
		{"emoji", "🍕"},
		{"leading space", " a"},
		{"trailing newline", "a\n"},
		{"padded", "\tx "},
		{"space", " "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(1, Classic, "2024-01-01")
			_, err := g.ApplyGuess("Pizza", tt.guess)
			if !errors.Is(err, ErrInvalidGuess) {
				t.Fatalf("err = %v, want ErrInvalidGuess", err)
			}
			if len(g.Guessed) != 0 || g.Incorrect != 0 || g.Status != StatusNotStarted {
				t.Errorf("game mutated: %+v", g)
			}
		})
	}
}

func TestApplyGuessIsCaseInsensitive(t *testing.T) {
	g := New(1, Classic, "2024-01-01")
	res := play(t, g, "Pizza", "P")
	if !res.Correct || res.Letter != "p" {
		t.Fatalf("result = %+v, want correct p", res)
	}
	if g.Status != StatusInProgress {
		t.Errorf("status = %s, want IN_PROGRESS", g.Status)
	}
	if _, err := g.ApplyGuess("Pizza", "p"); !errors.Is(err, ErrAlreadyGuessed) {
		t.Errorf("repeat guess err = %v, want ErrAlreadyGuessed", err)
	}
}

func TestRepeatedWrongLetterDoesNotCount(t *testing.T) {
	g := New(1, Classic, "2024-01-01")
	play(t, g, "Pizza", "x")
	if _, err := g.ApplyGuess("Pizza", "X"); !errors.Is(err, ErrAlreadyGuessed) {
		t.Fatalf("err = %v, want ErrAlreadyGuessed", err)
	}
	if g.Incorrect != 1 || len(g.Guessed) != 1 {
		t.Errorf("incorrect = %d guessed = %v, want 1 [x]", g.Incorrect, g.Guessed)
	}
}

func TestWinOnCompletingLetter(t *testing.T) {
	g := New(1, Classic, "2024-01-01")
	res := play(t, g, "Red Apple", "r", "e", "d", "a", "p", "q")
	if res.Completed || g.Over() {
		t.Fatalf("game finished before the last letter: %+v", g)
	}
	res = play(t, g, "Red Apple", "l")
	if !res.Completed || !g.Won() || g.Status != StatusCompleted {
		t.Fatalf("expected win on completing letter, got %+v / %+v", res, g)
	}
	if g.Attempts() != 2 {
		t.Errorf("attempts = %d, want 2", g.Attempts())
	}
	if _, err := g.ApplyGuess("Red Apple", "z"); !errors.Is(err, ErrGameOver) {
		t.Errorf("guess after win err = %v, want ErrGameOver", err)
	}
}

func TestLossExactlyAtThreshold(t *testing.T) {
	g := New(1, Classic, "2024-01-01")
	wrong := []string{"b", "c", "d", "e", "f", "g"}
	for i, l := range wrong {
		res := play(t, g, "Pizza", l)
		last := i == MaxIncorrectGuesses-1
		if res.Completed != last {
			t.Fatalf("guess %d completed = %v, want %v", i+1, res.Completed, last)
		}
	}
	if g.Outcome != OutcomeLoss || g.Remaining() != 0 {
		t.Errorf("outcome = %q remaining = %d, want loss 0", g.Outcome, g.Remaining())
	}
	if g.Attempts() != MaxIncorrectGuesses {
		t.Errorf("attempts = %d, want %d", g.Attempts(), MaxIncorrectGuesses)
	}
}

func TestMasked(t *testing.T) {
	g := New(1, Classic, "2024-01-01")
	if got := g.Masked("Thumbs Up"); got != "______ __" {
		t.Errorf("Masked() = %q", got)
	}
	play(t, g, "Thumbs Up", "u", "t")
	if got := g.Masked("Thumbs Up"); got != "T_u___ U_" {
		t.Errorf("Masked() = %q", got)
	}
	if got := g.Masked("Face with Tears of Joy"); got != "____ __t_ T____ __ ___" {
		t.Errorf("Masked() = %q", got)
	}
}

func TestMaskedShowsNonLettersForFree(t *testing.T) {
	g := New(1, Classic, "2024-01-01")
	if got := g.Masked("Piñata 2!"); got != "__ñ___ 2!" {
		t.Errorf("Masked() = %q", got)
	}
	// non-ASCII letters never block a win
	res := play(t, g, "Piñata 2!", "p", "i", "a", "t")
	if !res.Completed || !g.Won() {
		t.Errorf("expected win, got %+v", g)
	}
}

func TestCompletedGameRevealsAnswer(t *testing.T) {
	g := New(1, Classic, "2024-01-01")
	play(t, g, "Dog Face", "b", "h", "j", "k", "m", "n")
	if got := g.Masked("Dog Face"); got != "Dog Face" {
		t.Errorf("Masked() = %q, want full answer", got)
	}
}

func TestGuessOrderPreserved(t *testing.T) {
	g := New(1, Classic, "2024-01-01")
	play(t, g, "Rocket", "z", "r", "a", "k")
	if want := []string{"z", "r", "a", "k"}; !reflect.DeepEqual(g.Guessed, want) {
		t.Errorf("Guessed = %v, want %v", g.Guessed, want)
	}
	if g.Incorrect != 2 {
		t.Errorf("Incorrect = %d, want 2", g.Incorrect)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in     string
		want   Mode
		wantOK bool
	}{
		{"", Classic, true},
		{"Classic", Classic, true},
		{"Pixelated", Pixelated, true},
		{"classic", Classic, false},
		{"Hard", Classic, false},
	}
	for _, tt := range tests {
		got, ok := ParseMode(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseMode(%q) = %s, %v; want %s, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
	if !reflect.DeepEqual(ModeList(), []Mode{Classic, Pixelated}) {
		t.Errorf("ModeList() = %v", ModeList())
	}
	if !Pixelated.Info().Pixelated || Classic.Info().Pixelated {
		t.Error("pixelated flag mismatch")
	}
}
