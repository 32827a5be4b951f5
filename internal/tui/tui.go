package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"shiftclock/internal/models"
	"shiftclock/internal/tracker"
)

// RunStatusTUI starts the live tracking status view for one location
func RunStatusTUI(trk *tracker.Tracker, location *models.UserLocation, grace time.Duration) error {
	model := NewStatusModel(trk, location, grace)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
