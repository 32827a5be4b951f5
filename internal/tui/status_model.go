package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"shiftclock/internal/models"
	"shiftclock/internal/tracker"
)

// StatusModel is the live tracking view for one location
type StatusModel struct {
	width  int
	height int

	tracker  *tracker.Tracker
	location *models.UserLocation
	grace    time.Duration

	session *models.TrackingSession
	err     error
	spin    spinner.Model
}

// statusTickMsg triggers a session refresh every second
type statusTickMsg struct{}

// NewStatusModel creates the live status TUI model
func NewStatusModel(trk *tracker.Tracker, location *models.UserLocation, grace time.Duration) StatusModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	return StatusModel{
		tracker:  trk,
		location: location,
		grace:    grace,
		spin:     sp,
	}
}

// Init starts the refresh ticker and the spinner
func (m StatusModel) Init() tea.Cmd {
	return tea.Batch(
		m.refresh(),
		m.spin.Tick,
		tea.Tick(time.Second, func(t time.Time) tea.Msg {
			return statusTickMsg{}
		}),
	)
}

// refresh re-reads the open session; this also runs the tracker's
// opportunistic grace-period check.
func (m StatusModel) refresh() tea.Cmd {
	return func() tea.Msg {
		session, err := m.tracker.ActiveSession(m.location.ID)
		if err != nil {
			return err
		}
		return session
	}
}

// Update handles messages
func (m StatusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusTickMsg:
		return m, tea.Batch(
			m.refresh(),
			tea.Tick(time.Second, func(t time.Time) tea.Msg {
				return statusTickMsg{}
			}),
		)

	case *models.TrackingSession:
		m.session = msg
		m.err = nil
		return m, nil

	case error:
		m.err = msg
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
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the live status panel
func (m StatusModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	panelWidth := m.width - 4
	if panelWidth > 64 {
		panelWidth = 64
	}

	var lines []string

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true).
		Align(lipgloss.Center).
		Width(panelWidth)
	lines = append(lines, titleStyle.Render(m.location.Name))

	if m.err != nil {
		errStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			Align(lipgloss.Center).
			Width(panelWidth)
		lines = append(lines, "", errStyle.Render(fmt.Sprintf("error: %v", m.err)))
	} else {
		lines = append(lines, "", m.renderSession(panelWidth))
	}

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText))
	help := helpStyle.Render("q/esc: quit")

	return lipgloss.JoinVertical(lipgloss.Left, panel, help)
}

func (m StatusModel) renderSession(width int) string {
	center := lipgloss.NewStyle().Align(lipgloss.Center).Width(width)

	if m.session == nil {
		idle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Render("Not clocked in")
		return center.Render(idle)
	}

	elapsed := time.Since(m.session.ClockIn).Round(time.Second)
	clockStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)
	clock := clockStyle.Render(formatClock(elapsed))

	stateLine := m.spin.View() + " tracking (" + m.session.TrackingMethod + ")"
	stateStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))

	if m.session.State == models.SessionPendingExit && m.session.PendingExitAt != nil {
		remaining := m.grace - time.Since(*m.session.PendingExitAt)
		if remaining < 0 {
			remaining = 0
		}
		stateLine = fmt.Sprintf("⚠ leaving - clock-out in %s unless you return", formatClock(remaining.Round(time.Second)))
		stateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		center.Render(clock),
		"",
		center.Render(stateStyle.Render(stateLine)),
		center.Render(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Render("since "+m.session.ClockIn.Format("15:04:05"))),
	)
}

func formatClock(d time.Duration) string {
	h := int(d.Hours())
	mi := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, mi, s)
}
