package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"focustab/internal/model"
	"focustab/internal/store"
)

// palette is the style set for one app theme. The four themes mirror the
// classified background families: two light-on-dark, two dark-on-light.
type palette struct {
	Fg       lipgloss.Color
	Muted    lipgloss.Color
	Accent   lipgloss.Color
	Selected lipgloss.Color

	PriorityHigh   lipgloss.Color
	PriorityMedium lipgloss.Color
	PriorityLow    lipgloss.Color

	Overdue lipgloss.Color
	Today   lipgloss.Color
}

func paletteFor(theme model.Theme) palette {
	switch theme {
	case model.ThemeBlack:
		return palette{
			Fg:       lipgloss.Color("255"),
			Muted:    lipgloss.Color("245"),
			Accent:   lipgloss.Color("75"),
			Selected: lipgloss.Color("238"),

			PriorityHigh:   lipgloss.Color("203"),
			PriorityMedium: lipgloss.Color("221"),
			PriorityLow:    lipgloss.Color("114"),

			Overdue: lipgloss.Color("203"),
			Today:   lipgloss.Color("221"),
		}
	case model.ThemeSkyblue:
		return palette{
			Fg:       lipgloss.Color("195"),
			Muted:    lipgloss.Color("110"),
			Accent:   lipgloss.Color("117"),
			Selected: lipgloss.Color("31"),

			PriorityHigh:   lipgloss.Color("210"),
			PriorityMedium: lipgloss.Color("223"),
			PriorityLow:    lipgloss.Color("157"),

			Overdue: lipgloss.Color("210"),
			Today:   lipgloss.Color("223"),
		}
	case model.ThemeSepia:
		return palette{
			Fg:       lipgloss.Color("52"),
			Muted:    lipgloss.Color("95"),
			Accent:   lipgloss.Color("130"),
			Selected: lipgloss.Color("223"),

			PriorityHigh:   lipgloss.Color("124"),
			PriorityMedium: lipgloss.Color("130"),
			PriorityLow:    lipgloss.Color("64"),

			Overdue: lipgloss.Color("124"),
			Today:   lipgloss.Color("130"),
		}
	default: // white
		return palette{
			Fg:       lipgloss.Color("235"),
			Muted:    lipgloss.Color("243"),
			Accent:   lipgloss.Color("27"),
			Selected: lipgloss.Color("253"),

			PriorityHigh:   lipgloss.Color("160"),
			PriorityMedium: lipgloss.Color("172"),
			PriorityLow:    lipgloss.Color("28"),

			Overdue: lipgloss.Color("160"),
			Today:   lipgloss.Color("172"),
		}
	}
}

// applyColorProfilePreference sets Lip Gloss's color profile for the
// interactive TUI.
//
// Note: termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE, which is
// useful for non-interactive CLI output but can accidentally disable colors in
// a TUI. Here we honor an explicit config override and NO_COLOR, and otherwise
// follow the terminal's capabilities.
func applyColorProfilePreference(cfg *store.GlobalConfig) {
	if cfg != nil && cfg.TUI != nil {
		switch strings.ToLower(strings.TrimSpace(cfg.TUI.ColorProfile)) {
		case "ascii":
			lipgloss.SetColorProfile(termenv.Ascii)
			return
		case "ansi":
			lipgloss.SetColorProfile(termenv.ANSI)
			return
		case "ansi256":
			lipgloss.SetColorProfile(termenv.ANSI256)
			return
		case "truecolor":
			lipgloss.SetColorProfile(termenv.TrueColor)
			return
		}
	}

	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") {
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}
	lipgloss.SetColorProfile(profile)
}
