package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ayaskarov/timekeep/internal/models"
	"github.com/ayaskarov/timekeep/internal/tracker"
)

// RunTimer shows the live timer for an already started session. It
// returns the stopped session when the user stopped it from the
// timer, or nil when they left it running.
func RunTimer(engine *tracker.Tracker, ownerID int64, session *models.Session) (*tracker.StoppedSession, error) {
	model := NewTimerModel(engine, ownerID, session)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	if m, ok := finalModel.(TimerModel); ok {
		if m.err != nil {
			return nil, m.err
		}
		return m.stopped, nil
	}
	return nil, nil
}
