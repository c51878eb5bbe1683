// Package assets holds files compiled into the binary.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed emojis.tsv
var FS embed.FS

// EmojiList opens the embedded master emoji list.
func EmojiList() (fs.File, error) {
	return FS.Open("emojis.tsv")
}
