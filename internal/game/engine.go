// internal/game/engine.go
//
// Hangman rules for a single riddle.
// Responsibilities:
//   - Create games bound to a riddle.
//   - Validate and apply single-letter guesses.
//   - Track transitions: NOT_STARTED → IN_PROGRESS → COMPLETED(win|loss).
//   - Render the masked answer for display.
//
// Only ASCII letters are guessable. Every other rune of the answer
// (spaces, digits, punctuation, accented letters) is shown for free.
package game

import (
	"errors"
	"strings"
)

var (
	ErrGameOver       = errors.New("game is already over")
	ErrAlreadyGuessed = errors.New("letter already guessed")
	ErrInvalidGuess   = errors.New("invalid guess")
)

// New returns a fresh game for the given riddle.
func New(riddleID int64, mode Mode, date string) *Game {
	return &Game{
		RiddleID: riddleID,
		Mode:     mode,
		Date:     date,
		Guessed:  []string{},
		Status:   StatusNotStarted,
	}
}

// ApplyGuess validates letter against the game state and applies it.
// Rejected guesses leave the game untouched.
func (g *Game) ApplyGuess(answer, letter string) (Result, error) {
	if g.Status == StatusCompleted {
		return Result{}, ErrGameOver
	}
	letter = strings.ToLower(letter)
	if len(letter) != 1 || !isLetter(letter[0]) {
		return Result{}, ErrInvalidGuess
	}
	if g.HasGuessed(letter) {
		return Result{}, ErrAlreadyGuessed
	}

	g.Guessed = append(g.Guessed, letter)
	g.Status = StatusInProgress

	answer = strings.ToLower(answer)
	res := Result{Letter: letter, Correct: strings.Contains(answer, letter)}
	if !res.Correct {
		g.Incorrect++
	}

	switch {
	case g.solved(answer):
		g.Status, g.Outcome = StatusCompleted, OutcomeWin
		res.Completed = true
	case g.Incorrect >= MaxIncorrectGuesses:
		g.Status, g.Outcome = StatusCompleted, OutcomeLoss
		res.Completed = true
	}
	return res, nil
}

// HasGuessed reports whether letter (lowercase) was already played.
func (g *Game) HasGuessed(letter string) bool {
	for _, l := range g.Guessed {
		if l == letter {
			return true
		}
	}
	return false
}

// Over reports whether the game is completed.
func (g *Game) Over() bool { return g.Status == StatusCompleted }

// Won reports whether the game ended in a win.
func (g *Game) Won() bool { return g.Outcome == OutcomeWin }

// Remaining returns how many wrong guesses are left.
func (g *Game) Remaining() int {
	if r := MaxIncorrectGuesses - g.Incorrect; r > 0 {
		return r
	}
	return 0
}

// Attempts is the share-text score: wrong guesses plus the winning one.
func (g *Game) Attempts() int {
	if g.Won() {
		return g.Incorrect + 1
	}
	return g.Incorrect
}

// Masked renders answer with unguessed letters replaced by '_'.
// A completed game reveals everything.
func (g *Game) Masked(answer string) string {
	var b strings.Builder
	for _, r := range answer {
		if r < 0x80 && isLetter(byte(r)) && !g.Over() && !g.HasGuessed(strings.ToLower(string(r))) {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (g *Game) solved(lowerAnswer string) bool {
	for i := 0; i < len(lowerAnswer); i++ {
		c := lowerAnswer[i]
		if isLetter(c) && !g.HasGuessed(string(c)) {
			return false
		}
	}
	return true
}

// isLetter checks for ASCII a–z / A–Z.
func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
