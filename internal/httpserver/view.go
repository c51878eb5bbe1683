package httpserver

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/robalobadob/emojile/internal/catalog"
	"github.com/robalobadob/emojile/internal/daily"
	"github.com/robalobadob/emojile/internal/game"
	"github.com/robalobadob/emojile/internal/security"
	"github.com/robalobadob/emojile/internal/stats"
)

// flash is a one-off notice shown above the game.
type flash struct {
	Category string `json:"category"` // info | warning | danger
	Message  string `json:"message"`
}

// tile is one character of the masked answer.
type tile struct {
	Char   string
	Hidden bool
	Space  bool
}

// letterKey is one key of the on-screen keyboard.
type letterKey struct {
	Letter  string
	Guessed bool
	Correct bool
}

// gameView is rendered by index.html and returned by GET /api/state.
type gameView struct {
	Mode             game.Mode       `json:"mode"`
	ModeInfo         game.ModeInfo   `json:"-"`
	Modes            []game.ModeInfo `json:"-"`
	Date             string          `json:"date"`
	PuzzleNumber     int             `json:"puzzle_number"`
	NoRiddle         bool            `json:"no_riddle"`
	RiddleID         int64           `json:"riddle_id,omitempty"`
	Category         string          `json:"category,omitempty"`
	Masked           string          `json:"masked,omitempty"`
	Tiles            []tile          `json:"-"`
	Alphabet         []letterKey     `json:"-"`
	GuessedLetters   []string        `json:"guessed_letters"`
	IncorrectGuesses int             `json:"incorrect_guesses"`
	RemainingGuesses int             `json:"remaining_guesses"`
	MaxIncorrect     int             `json:"max_incorrect_guesses"`
	Status           game.Status     `json:"status,omitempty"`
	GameOver         bool            `json:"game_over"`
	IsWin            bool            `json:"is_win"`
	Answer           string          `json:"answer,omitempty"`
	ShareText        string          `json:"share_text,omitempty"`
	Pixelation       int             `json:"pixelation"`
	Stats            stats.Summary   `json:"stats"`
	NextReset        string          `json:"next_reset"`
	TestOffset       *int            `json:"test_offset,omitempty"`
	Flashes          []flash         `json:"flashes,omitempty"`
}

// fillGame copies the session game and its riddle into v.
func fillGame(r *http.Request, v *gameView, g *game.Game, riddle *catalog.Riddle) {
	v.RiddleID = riddle.ID
	v.Category = riddle.Category
	v.Masked = g.Masked(riddle.Name)
	v.Tiles = tiles(v.Masked)
	v.Alphabet = alphabet(g, riddle.Name)
	v.GuessedLetters = append([]string{}, g.Guessed...)
	v.IncorrectGuesses = g.Incorrect
	v.RemainingGuesses = g.Remaining()
	v.Status = g.Status
	v.GameOver = g.Over()
	v.IsWin = g.Won()
	v.Pixelation = pixelation(g)
	if g.Over() {
		v.Answer = riddle.Name
		v.ShareText = shareText(r, v.PuzzleNumber, g)
	}
}

func tiles(masked string) []tile {
	out := make([]tile, 0, len(masked))
	for _, c := range masked {
		out = append(out, tile{Char: string(c), Hidden: c == '_', Space: c == ' '})
	}
	return out
}

func alphabet(g *game.Game, answer string) []letterKey {
	lower := strings.ToLower(answer)
	keys := make([]letterKey, 0, 26)
	for c := 'a'; c <= 'z'; c++ {
		l := string(c)
		guessed := g.HasGuessed(l)
		keys = append(keys, letterKey{
			Letter:  l,
			Guessed: guessed,
			Correct: guessed && strings.Contains(lower, l),
		})
	}
	return keys
}

// pixelation is the blur level for pixelated mode; it drops with every guess.
func pixelation(g *game.Game) int {
	if g.Over() || !g.Mode.Info().Pixelated {
		return 0
	}
	return max(0, game.MaxIncorrectGuesses-len(g.Guessed))
}

// puzzleNumber is the 1-based day count shown in share texts.
func puzzleNumber(dateKey string) int {
	d, err := daily.ParseDateKey(dateKey)
	if err != nil {
		return 0
	}
	return daily.DaysSinceEpoch(d) + 1
}

// shareText is the clipboard summary of a finished game.
func shareText(r *http.Request, puzzle int, g *game.Game) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Emojile Day %d\n", puzzle)
	if g.Won() {
		fmt.Fprintf(&b, "Guessed in %d/%d attempts! 🎉\n", g.Attempts(), game.MaxIncorrectGuesses)
	} else {
		fmt.Fprintf(&b, "X/%d attempts 😥\n", game.MaxIncorrectGuesses)
	}
	fmt.Fprintf(&b, "\n#emojile %s/?mode=%s", origin(r), url.QueryEscape(string(g.Mode)))
	return b.String()
}

func origin(r *http.Request) string {
	scheme := "http"
	if security.IsSecureRequest(r) {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
