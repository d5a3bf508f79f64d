package tui

import (
	"kanbo/internal/board"
	"kanbo/internal/config"
	"kanbo/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive board UI on an already-opened engine.
func Run(eng *board.Engine, s store.Store, cfg *config.Config) error {
	applyColorProfilePreference()
	applyThemePreference(cfg.Theme)

	m := newAppModel(eng, s, cfg)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
