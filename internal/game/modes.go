package game

// Mode names a game variant. Values are stored in the database.
type Mode string

const (
	Classic   Mode = "Classic"
	Pixelated Mode = "Pixelated"
)

// DefaultMode is used when no or an unknown mode is requested.
const DefaultMode = Classic

// ModeInfo is the display metadata of a mode.
type ModeInfo struct {
	Mode        Mode
	DisplayName string
	Description string
	Pixelated   bool
}

// modes is ordered; a mode's index is its catalog offset.
var modes = []ModeInfo{
	{Mode: Classic, DisplayName: "Classic", Description: "Guess the name of the emoji of the day."},
	{Mode: Pixelated, DisplayName: "Pixelated", Description: "The emoji starts blurred and sharpens as you guess.", Pixelated: true},
}

// Modes returns every mode in fixed order.
func Modes() []ModeInfo {
	out := make([]ModeInfo, len(modes))
	copy(out, modes)
	return out
}

// ModeList returns the mode identifiers in fixed order.
func ModeList() []Mode {
	out := make([]Mode, len(modes))
	for i, m := range modes {
		out[i] = m.Mode
	}
	return out
}

// ParseMode resolves s to a known mode. Empty input yields the default and ok.
func ParseMode(s string) (Mode, bool) {
	if s == "" {
		return DefaultMode, true
	}
	for _, m := range modes {
		if string(m.Mode) == s {
			return m.Mode, true
		}
	}
	return DefaultMode, false
}

// Info returns display metadata for m, or the default mode's.
func (m Mode) Info() ModeInfo {
	for _, info := range modes {
		if info.Mode == m {
			return info
		}
	}
	return modes[0]
}
