// internal/httpserver/routes_game.go
//
// Game endpoints.
//   - GET  /                        → HTML game view for ?mode= (and ?test_offset= in QA)
//   - GET  /api/state               → the same view as JSON
//   - POST /guess                   → submit one letter for the active game
//   - GET  /api/get-emoji/{riddleID} → emoji of the session's active riddle
//   - GET  /more-games              → list of modes
//
// A page load decides which game is active: guesses always apply to the game
// the browser last loaded.

package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/emojile/internal/catalog"
	"github.com/robalobadob/emojile/internal/daily"
	"github.com/robalobadob/emojile/internal/game"
	"github.com/robalobadob/emojile/internal/stats"
)

// resolveRequest reads ?mode= and ?test_offset= into a mode and effective date.
func (s *Server) resolveRequest(r *http.Request) (game.Mode, time.Time, *int, []flash) {
	log := zerolog.Ctx(r.Context())
	q := r.URL.Query()
	var flashes []flash

	raw := q.Get("mode")
	mode, ok := game.ParseMode(raw)
	if !ok {
		log.Warn().Str("mode", raw).Msg("unknown game mode requested")
		flashes = append(flashes, flash{"warning", fmt.Sprintf("Unknown game mode %q, playing %s instead.", raw, mode)})
	}

	var offset *int
	if rawOffset := q.Get("test_offset"); rawOffset != "" {
		n, err := strconv.Atoi(rawOffset)
		switch {
		case !s.cfg.AllowTestOffset:
			log.Warn().Str("test_offset", rawOffset).Msg("test offset ignored, ALLOW_TEST_OFFSET is off")
		case err != nil:
			log.Warn().Str("test_offset", rawOffset).Msg("invalid test offset ignored")
			flashes = append(flashes, flash{"warning", "Invalid test offset ignored."})
		default:
			offset = &n
		}
	}

	date := daily.EffectiveDate(s.now(), offset)
	if offset != nil {
		flashes = append(flashes, flash{"info", fmt.Sprintf("TEST MODE: Simulating date %s (Day Offset: %d)", daily.DateKey(date), *offset)})
	}
	return mode, date, offset, flashes
}

// loadGame resolves today's riddle for the request, binds the session to it
// and builds the view. Must run before anything is written to w.
func (s *Server) loadGame(w http.ResponseWriter, r *http.Request) (*gameView, error) {
	ctx := r.Context()
	log := zerolog.Ctx(ctx)
	mode, date, offset, flashes := s.resolveRequest(r)
	player := ensurePlayer(w, r)
	dateKey := daily.DateKey(date)

	var riddle *catalog.Riddle
	var ps stats.PlayerStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rd, err := s.selector.Today(gctx, mode, date)
		if errors.Is(err, daily.ErrNoRiddle) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("select riddle: %w", err)
		}
		riddle = rd
		return nil
	})
	g.Go(func() error {
		var err error
		ps, err = s.stats.Get(gctx, player, mode)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	view := &gameView{
		Mode:             mode,
		ModeInfo:         mode.Info(),
		Modes:            game.Modes(),
		Date:             dateKey,
		PuzzleNumber:     puzzleNumber(dateKey),
		GuessedLetters:   []string{},
		RemainingGuesses: game.MaxIncorrectGuesses,
		MaxIncorrect:     game.MaxIncorrectGuesses,
		Stats:            ps.Summary(date),
		NextReset:        daily.NextReset(date).Format(time.RFC3339),
		TestOffset:       offset,
		Flashes:          flashes,
	}

	if riddle == nil {
		log.Warn().Str("game_mode", string(mode)).Str("date", dateKey).Msg("no riddle available, run `emojile init-db`")
		view.NoRiddle = true
		view.Flashes = append(view.Flashes, flash{"danger", "No riddle is available today. Please check back later."})
		return view, nil
	}

	st, err := s.sessions.Load(r)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	cur := st.Game(dateKey, mode)
	if cur == nil || cur.RiddleID != riddle.ID {
		log.Debug().Int64("riddle_id", riddle.ID).Str("game_mode", string(mode)).Msg("starting new game")
		cur = game.New(riddle.ID, mode, dateKey)
		st.Put(cur)
	}
	st.SetActive(dateKey, mode)
	if offset == nil {
		// simulated days leave the real game alone
		st.Prune(dateKey)
	}
	if err := s.sessions.Save(w, r, st); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	fillGame(r, view, cur, riddle)
	return view, nil
}

// handleHome renders the game page.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	view, err := s.loadGame(w, r)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("load game")
		http.Error(w, "Something went wrong. Please try again.", http.StatusInternalServerError)
		return
	}
	s.render(w, r, "index.html", view)
}

// handleState returns the game view as JSON.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	view, err := s.loadGame(w, r)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("load game")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal_error"})
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleMoreGames lists the available modes.
func (s *Server) handleMoreGames(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "more_games.html", map[string]any{"Modes": game.Modes()})
}

// guessReq is the request payload for POST /guess.
type guessReq struct {
	Guess string `json:"guess"`
	// RiddleID pins the guess to the game the page was rendered for.
	// Without it the session's active game is used.
	RiddleID int64 `json:"riddle_id,omitempty"`
}

// guessRes is the success payload for POST /guess. The stats-failure path
// reuses it with Success=false.
type guessRes struct {
	Success          bool           `json:"success"`
	Error            string         `json:"error,omitempty"`
	GuessedLetter    string         `json:"guessed_letter"`
	IsCorrect        bool           `json:"is_correct"`
	IncorrectGuesses int            `json:"incorrect_guesses"`
	RemainingGuesses int            `json:"remaining_guesses"`
	Masked           string         `json:"masked"`
	GuessedLetters   []string       `json:"guessed_letters"`
	GameOver         bool           `json:"game_over"`
	IsWin            *bool          `json:"is_win"`
	Answer           string         `json:"answer,omitempty"`
	Stats            *stats.Summary `json:"stats"`
	StatsSaved       bool           `json:"stats_saved"`
	ShareText        string         `json:"share_text,omitempty"`
}

// handleGuess applies one letter to the session's active game. When the
// guess completes the game, stats are recorded exactly once.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := zerolog.Ctx(ctx)

	player := playerID(r)
	if player == "" {
		writeGuessError(w, http.StatusBadRequest, "Player identifier missing. Please refresh.")
		return
	}

	var req guessReq
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1024)).Decode(&req); err != nil {
		writeGuessError(w, http.StatusBadRequest, "Missing guess data.")
		return
	}

	st, err := s.sessions.Load(r)
	if err != nil {
		log.Error().Err(err).Msg("load session")
		writeGuessError(w, http.StatusInternalServerError, "An unexpected server error occurred.")
		return
	}
	g := st.ActiveGame()
	if req.RiddleID != 0 {
		g = st.GameForRiddle(req.RiddleID)
	}
	if g == nil {
		writeGuessError(w, http.StatusBadRequest, "Game state not found. Please refresh.")
		return
	}
	if !s.cfg.AllowTestOffset && g.Date != daily.DateKey(s.now()) {
		writeGuessError(w, http.StatusBadRequest, "A new Emojile is out. Please refresh.")
		return
	}
	riddle, err := s.riddles.Get(ctx, g.RiddleID)
	if errors.Is(err, catalog.ErrNotFound) {
		// catalog was regenerated under this session
		writeGuessError(w, http.StatusBadRequest, "Game state not found. Please refresh.")
		return
	}
	if err != nil {
		log.Error().Err(err).Int64("riddle_id", g.RiddleID).Msg("load riddle")
		writeGuessError(w, http.StatusInternalServerError, "An unexpected server error occurred.")
		return
	}

	res, err := g.ApplyGuess(riddle.Name, req.Guess)
	switch {
	case errors.Is(err, game.ErrInvalidGuess):
		writeGuessError(w, http.StatusBadRequest, "Invalid guess.")
		return
	case errors.Is(err, game.ErrGameOver):
		writeGuessError(w, http.StatusBadRequest, "Game is already over.")
		return
	case errors.Is(err, game.ErrAlreadyGuessed):
		writeGuessError(w, http.StatusBadRequest, "Letter already guessed.")
		return
	case err != nil:
		log.Error().Err(err).Msg("apply guess")
		writeGuessError(w, http.StatusInternalServerError, "An unexpected server error occurred.")
		return
	}

	if err := s.sessions.Save(w, r, st); err != nil {
		log.Error().Err(err).Msg("save session")
		writeGuessError(w, http.StatusInternalServerError, "An unexpected server error occurred.")
		return
	}

	out := guessRes{
		Success:          true,
		GuessedLetter:    res.Letter,
		IsCorrect:        res.Correct,
		IncorrectGuesses: g.Incorrect,
		RemainingGuesses: g.Remaining(),
		Masked:           g.Masked(riddle.Name),
		GuessedLetters:   append([]string{}, g.Guessed...),
		GameOver:         g.Over(),
	}
	if !g.Over() {
		writeJSON(w, http.StatusOK, out)
		return
	}

	won := g.Won()
	out.IsWin = &won
	out.Answer = riddle.Name
	out.ShareText = shareText(r, puzzleNumber(g.Date), g)

	gameDate, err := daily.ParseDateKey(g.Date)
	if err != nil {
		gameDate = daily.Midnight(s.now())
	}
	// only the completing guess gets here; later guesses fail with ErrGameOver
	updated, err := s.stats.Record(ctx, player, g.Mode, stats.GameResult{
		Outcome:   g.Outcome,
		Incorrect: g.Incorrect,
		Date:      gameDate,
	})
	if errors.Is(err, stats.ErrAlreadyRecorded) {
		log.Warn().Str("player_uuid", player).Str("date", g.Date).Msg("completed game replayed, stats left as they were")
		err = nil
	}
	if err != nil {
		log.Warn().Err(err).Str("player_uuid", player).Msg("game finished but stats were not saved")
		out.Success = false
		out.Error = "Game finished, but failed to save stats."
		writeJSON(w, http.StatusInternalServerError, out)
		return
	}
	summary := updated.Summary(gameDate)
	out.Stats = &summary
	out.StatsSaved = true
	writeJSON(w, http.StatusOK, out)
}

// handleGetEmoji reveals the emoji only for the riddle the session is playing.
func (s *Server) handleGetEmoji(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "riddleID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Riddle not found"})
		return
	}

	st, err := s.sessions.Load(r)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("load session")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal_error"})
		return
	}
	if g := st.ActiveGame(); g == nil || g.RiddleID != id {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "Not authorized or invalid riddle ID"})
		return
	}

	riddle, err := s.riddles.Get(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Riddle not found"})
		return
	}
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Int64("riddle_id", id).Msg("load riddle")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal_error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"emoji": riddle.Emoji})
}
