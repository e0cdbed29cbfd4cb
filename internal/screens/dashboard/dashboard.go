// Package dashboard shows the user's profile and learning progress,
// fetched fresh from the backend on every visit. Without a cached user
// id there is nothing to fetch; the screen offers onboarding instead.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nsharma/lingua/internal/api"
	"github.com/nsharma/lingua/internal/profile"
	"github.com/nsharma/lingua/internal/router"
	"github.com/nsharma/lingua/internal/screen"
	"github.com/nsharma/lingua/internal/screens/onboarding"
	"github.com/nsharma/lingua/internal/store"
	"github.com/nsharma/lingua/internal/ui/components"
	"github.com/nsharma/lingua/internal/ui/layout"
	"github.com/nsharma/lingua/internal/ui/theme"
)

// profileMsg carries the fetched user record.
type profileMsg struct {
	user *api.User
	err  error
}

// progressMsg carries the fetched progress summary.
type progressMsg struct {
	progress *api.Progress
	err      error
}

// DashboardScreen renders profile and progress side by side.
type DashboardScreen struct {
	client   *api.Client
	identity store.IdentityRepo
	userID   string

	user     *api.User
	progress *api.Progress

	loading     int
	spin        components.Spinner
	profileErr  string
	progressErr string
}

var _ screen.Screen = (*DashboardScreen)(nil)

// New creates the dashboard for the cached user id. An empty id means
// the user has not onboarded yet.
func New(client *api.Client, identity store.IdentityRepo, userID string) *DashboardScreen {
	return &DashboardScreen{
		client:   client,
		identity: identity,
		userID:   userID,
	}
}

func (s *DashboardScreen) Title() string {
	return "Dashboard"
}

// Init fires both fetches concurrently.
func (s *DashboardScreen) Init() tea.Cmd {
	if s.userID == "" {
		return nil
	}

	s.loading = 2
	client := s.client
	userID := s.userID

	fetchProfile := func() tea.Msg {
		user, err := client.GetProfile(context.Background(), userID)
		return profileMsg{user: user, err: err}
	}
	fetchProgress := func() tea.Msg {
		progress, err := client.GetProgress(context.Background(), userID)
		return progressMsg{progress: progress, err: err}
	}

	return tea.Batch(fetchProfile, fetchProgress, s.spin.Tick())
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.SpinnerTickMsg:
		if s.loading == 0 {
			return s, nil
		}
		s.spin = s.spin.Advance()
		return s, s.spin.Tick()

	case profileMsg:
		s.loading--
		if msg.err != nil {
			s.profileErr = fmt.Sprintf("Profile unavailable: %v", msg.err)
		} else {
			s.user = msg.user
		}
		return s, nil

	case progressMsg:
		s.loading--
		if msg.err != nil {
			s.progressErr = fmt.Sprintf("Progress unavailable: %v", msg.err)
		} else {
			s.progress = msg.progress
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "enter":
			if s.userID == "" {
				next := onboarding.New(s.client, s.identity, nil, "")
				return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
			}
		case "r":
			if s.loading == 0 && s.userID != "" {
				s.profileErr = ""
				s.progressErr = ""
				return s, s.Init()
			}
		}
	}

	return s, nil
}

func (s *DashboardScreen) View(width, height int) string {
	if s.userID == "" {
		start := components.NewButton("Start onboarding", true, nil)
		prompt := theme.Title.Render("No profile yet") + "\n\n" +
			theme.Body.Render("Set up your learning profile to track progress.") + "\n\n" +
			start.View()
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, prompt)
	}

	if s.loading > 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			s.spin.View()+" Loading your dashboard...")
	}

	cards := []string{s.profileCard(), s.progressCard(width)}
	content := lipgloss.JoinVertical(lipgloss.Left, cards...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *DashboardScreen) profileCard() string {
	if s.profileErr != "" {
		return theme.Card.Render(theme.ErrorText.Render(s.profileErr))
	}
	if s.user == nil {
		return ""
	}

	p := s.user.Preferences
	var b strings.Builder
	b.WriteString(theme.Title.Render(s.user.Name) + "\n")
	if s.user.Email != "" {
		b.WriteString(theme.Subtitle.Render(s.user.Email) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(row("Learning", p.TargetLanguage))
	b.WriteString(row("Level", levelLabel(p.ProficiencyLevel)))
	b.WriteString(row("Daily goal", fmt.Sprintf("%d min", p.DailyGoalMinutes)))
	b.WriteString(row("Focus", strings.Join(p.FocusAreas, ", ")))

	return theme.Card.Render(strings.TrimRight(b.String(), "\n"))
}

func (s *DashboardScreen) progressCard(width int) string {
	if s.progressErr != "" {
		return theme.Card.Render(theme.ErrorText.Render(s.progressErr))
	}
	if s.progress == nil {
		return ""
	}

	p := s.progress
	var b strings.Builder
	b.WriteString(row("Minutes practiced", fmt.Sprintf("%d", p.TotalLearningMinutes)))
	b.WriteString(row("Conversations", fmt.Sprintf("%d", p.ConversationsCompleted)))
	b.WriteString(row("Current streak", fmt.Sprintf("%d days", p.CurrentStreak)))
	b.WriteString(row("Longest streak", fmt.Sprintf("%d days", p.LongestStreak)))
	b.WriteString(row("Vocabulary", fmt.Sprintf("%d words", p.VocabularyLearned)))
	if p.LastActiveDate != "" {
		b.WriteString(row("Last active", p.LastActiveDate))
	}
	b.WriteString("\n")

	// The backend reports weekly goal progress as a 0-100 percentage.
	pct := p.WeeklyGoalProgress / 100
	if pct > 1 {
		pct = 1
	}
	if pct < 0 {
		pct = 0
	}
	barWidth := 30
	if width < 50 {
		barWidth = width - 20
	}
	bar := components.NewProgressBar("Weekly goal", pct, true, barWidth)
	b.WriteString(bar.View())

	return theme.Card.Render(b.String())
}

func row(k, v string) string {
	if v == "" {
		v = "-"
	}
	return theme.Subtitle.Render(fmt.Sprintf("%-18s", k)) + theme.Body.Render(v) + "\n"
}

// levelLabel maps a proficiency value to its display label.
func levelLabel(value string) string {
	for _, opt := range profile.ProficiencyLevels {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	if s.userID == "" {
		return []layout.KeyHint{
			{Key: "enter", Description: "onboard"},
			{Key: "esc", Description: "back"},
		}
	}
	return []layout.KeyHint{
		{Key: "r", Description: "refresh"},
		{Key: "esc", Description: "back"},
	}
}
