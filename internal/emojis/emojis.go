// internal/emojis/emojis.go
//
// Master emoji list management for the catalog initializer.
//
// Responsibilities:
//   - Load the list from a file path or fall back to the embedded default.
//   - Validate entries (three tab-separated fields, a guessable name).
//
// File format (one entry per line, blank lines and # comments skipped):
//   <emoji>\t<official name>\t<category>
//
// Order is significant: the initializer rotates through the list in file order.

package emojis

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/robalobadob/emojile/assets"
)

// Emoji is one entry of the master list.
type Emoji struct {
	Emoji    string
	Name     string
	Category string
}

var ErrEmptyList = errors.New("emojis: list is empty")

// Load reads the master list from path, or the embedded default when path is "".
func Load(path string) ([]Emoji, error) {
	var r io.ReadCloser
	var err error
	if path == "" {
		r, err = assets.EmojiList()
	} else {
		r, err = os.Open(path)
	}
	if err != nil {
		return nil, fmt.Errorf("open emoji list: %w", err)
	}
	defer r.Close()
	return Parse(r)
}

// Parse reads entries from r. Duplicate emoji are rejected.
func Parse(r io.Reader) ([]Emoji, error) {
	var out []Emoji
	seen := make(map[string]int)
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: want 3 tab-separated fields, got %d", lineNo, len(fields))
		}
		e := Emoji{
			Emoji:    strings.TrimSpace(fields[0]),
			Name:     strings.TrimSpace(fields[1]),
			Category: strings.TrimSpace(fields[2]),
		}
		if e.Emoji == "" || e.Category == "" {
			return nil, fmt.Errorf("line %d: empty field", lineNo)
		}
		if !hasLetter(e.Name) {
			return nil, fmt.Errorf("line %d: name %q has no guessable letters", lineNo, e.Name)
		}
		if prev, ok := seen[e.Emoji]; ok {
			return nil, fmt.Errorf("line %d: %s already listed on line %d", lineNo, e.Emoji, prev)
		}
		seen[e.Emoji] = lineNo
		out = append(out, e)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrEmptyList
	}
	return out, nil
}

// hasLetter reports whether s contains an ASCII letter.
func hasLetter(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			return true
		}
	}
	return false
}
