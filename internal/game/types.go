// internal/game/types.go
//
// Core type definitions for the Emojile hangman engine.
// Defines:
//   - Status: lifecycle of a single daily game.
//   - Outcome: how a completed game ended.
//   - Game: per-session state for one (date, mode) riddle.

package game

// MaxIncorrectGuesses is the number of wrong letters that loses a game.
const MaxIncorrectGuesses = 6

// Status is the lifecycle state of a game.
type Status string

const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// Outcome is set once a game is completed.
type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
)

// Game holds what a session needs to resume a riddle.
// The answer is deliberately absent; callers look it up by RiddleID.
type Game struct {
	RiddleID  int64    `json:"rid"`
	Mode      Mode     `json:"mode"`
	Date      string   `json:"date"` // YYYY-MM-DD (UTC)
	Guessed   []string `json:"guessed"`
	Incorrect int      `json:"incorrect"`
	Status    Status   `json:"status"`
	Outcome   Outcome  `json:"outcome,omitempty"`
}

// Result describes the effect of one accepted guess.
type Result struct {
	Letter  string
	Correct bool
	// Completed is true only for the guess that finished the game.
	Completed bool
}
