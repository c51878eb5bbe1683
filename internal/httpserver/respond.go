package httpserver

import (
	"encoding/json"
	"net/http"
)

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// guessError is the failure shape of POST /guess.
type guessError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeGuessError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, guessError{Success: false, Error: msg})
}
