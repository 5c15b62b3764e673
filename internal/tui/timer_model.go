package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ayaskarov/timekeep/internal/models"
	"github.com/ayaskarov/timekeep/internal/timeutil"
	"github.com/ayaskarov/timekeep/internal/tracker"
)

// TimerModel is the live timer view shown while a session runs.
type TimerModel struct {
	width  int
	height int

	engine  *tracker.Tracker
	ownerID int64
	session *models.Session

	elapsed time.Duration
	spin    spinner.Model

	// Set when the user stopped the session from the timer.
	stopped *tracker.StoppedSession
	err     error

	stopping bool // user pressed S, stop the session on quit
	exiting  bool // user pressed ESC/Q, leave the session running
}

// timerTickMsg is sent every second to update the timer
type timerTickMsg struct{}

// NewTimerModel creates a new timer TUI model
func NewTimerModel(engine *tracker.Tracker, ownerID int64, session *models.Session) TimerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	return TimerModel{
		engine:  engine,
		ownerID: ownerID,
		session: session,
		elapsed: time.Since(session.StartTime),
		spin:    s,
	}
}

// Init initializes the timer model
func (m TimerModel) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		tea.Tick(time.Second, func(t time.Time) tea.Msg {
			return timerTickMsg{}
		}),
	)
}

// Update handles messages
func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		m.elapsed = time.Since(m.session.StartTime)
		if !m.stopping && !m.exiting {
			return m, tea.Tick(time.Second, func(t time.Time) tea.Msg {
				return timerTickMsg{}
			})
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "s", "S":
			m.stopping = true
			m.stopped, m.err = m.engine.StopSession(m.ownerID)
			return m, tea.Quit
		case "ctrl+c", "esc", "q":
			// Exit without stopping
			m.exiting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the timer TUI
func (m TimerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)
	nameStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true)
	clockStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSuccess)).
		Bold(true)
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText))

	clock := timeutil.FormatDuration(int64(m.elapsed.Seconds()))

	panel := lipgloss.JoinVertical(
		lipgloss.Center,
		headerStyle.Render(fmt.Sprintf("%s TRACKING TIME", m.spin.View())),
		"",
		nameStyle.Render(m.session.Task.Name),
		"",
		clockStyle.Render(clock),
	)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1, 4).
		Render(panel)

	helpBar := helpStyle.Render("s stop and save • q leave running")

	content := lipgloss.JoinVertical(lipgloss.Center, box, "", helpBar)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
