package loader

import (
	"path/filepath"
	"strings"
)

// Category classifies a batch input by filename suffix, not content.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryScript
	CategoryAudio
)

func (c Category) String() string {
	switch c {
	case CategoryScript:
		return "script"
	case CategoryAudio:
		return "audio"
	default:
		return "unknown"
	}
}

// Classify maps a filename to its input category. Matching is
// case-insensitive on the extension.
func Classify(name string) Category {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return CategoryScript
	case ".mp3":
		return CategoryAudio
	default:
		return CategoryUnknown
	}
}
