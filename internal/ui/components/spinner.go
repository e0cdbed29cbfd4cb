package components

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nsharma/lingua/internal/ui/theme"
)

// SpinnerTickMsg advances the spinner animation by one frame.
type SpinnerTickMsg time.Time

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 90 * time.Millisecond

// Spinner is a small loading indicator. Screens that show one schedule
// Tick from Init and again on each SpinnerTickMsg.
type Spinner struct {
	frame int
}

// Tick schedules the next animation frame.
func (s Spinner) Tick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return SpinnerTickMsg(t)
	})
}

// Advance moves to the next frame.
func (s Spinner) Advance() Spinner {
	s.frame = (s.frame + 1) % len(spinnerFrames)
	return s
}

// View renders the current frame.
func (s Spinner) View() string {
	return lipgloss.NewStyle().Foreground(theme.Secondary).Render(spinnerFrames[s.frame])
}
