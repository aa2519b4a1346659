package tui

import (
	"strings"

	"focustab/internal/store"
)

type glyphSet struct {
	Cursor   string
	Bullet   string
	Check    string
	Lock     string
	Unlock   string
	Active   string
	Priority string
}

var unicodeGlyphs = glyphSet{
	Cursor:   "❯",
	Bullet:   "•",
	Check:    "✓",
	Lock:     "🔒",
	Unlock:   "🔓",
	Active:   "●",
	Priority: "▲",
}

var asciiGlyphs = glyphSet{
	Cursor:   ">",
	Bullet:   "*",
	Check:    "x",
	Lock:     "[L]",
	Unlock:   "[ ]",
	Active:   "*",
	Priority: "^",
}

func glyphsFor(cfg *store.GlobalConfig) glyphSet {
	if cfg != nil && cfg.TUI != nil {
		if strings.EqualFold(strings.TrimSpace(cfg.TUI.Glyphs), "ascii") {
			return asciiGlyphs
		}
	}
	return unicodeGlyphs
}
