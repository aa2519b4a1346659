package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"focustab/internal/engine"
	"focustab/internal/store"
)

func Run(eng *engine.Engine, cfg *store.GlobalConfig) error {
	applyColorProfilePreference(cfg)
	m := newAppModel(eng, glyphsFor(cfg))
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
