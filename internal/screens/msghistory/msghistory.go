// Package msghistory lists past conversation messages grouped by
// session. The listing endpoint needs a signed-in identity; without one
// the screen offers the login form and retries after it succeeds.
package msghistory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nsharma/lingua/internal/api"
	"github.com/nsharma/lingua/internal/auth"
	"github.com/nsharma/lingua/internal/chat"
	"github.com/nsharma/lingua/internal/router"
	"github.com/nsharma/lingua/internal/screen"
	"github.com/nsharma/lingua/internal/screens/login"
	"github.com/nsharma/lingua/internal/ui/components"
	"github.com/nsharma/lingua/internal/ui/layout"
	"github.com/nsharma/lingua/internal/ui/theme"
)

// historyMsg carries the fetched message list.
type historyMsg struct {
	groups    []chat.SessionGroup
	noSession bool
	err       error
}

// HistoryScreen is the grouped past-conversation browser.
type HistoryScreen struct {
	client   *api.Client
	provider auth.Provider

	groups    []chat.SessionGroup
	loaded    bool
	noSession bool
	loading   bool
	spin      components.Spinner
	errMsg    string
	scroll    int
}

var _ screen.Screen = (*HistoryScreen)(nil)

// New creates the history screen.
func New(client *api.Client, provider auth.Provider) *HistoryScreen {
	return &HistoryScreen{client: client, provider: provider}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.fetch()
}

// fetch resolves the session token and lists messages.
func (s *HistoryScreen) fetch() tea.Cmd {
	s.loading = true
	s.errMsg = ""
	client := s.client
	provider := s.provider

	call := func() tea.Msg {
		ctx := context.Background()
		token, err := provider.SessionToken(ctx)
		if err != nil {
			if errors.Is(err, auth.ErrNoSession) {
				return historyMsg{noSession: true}
			}
			return historyMsg{err: err}
		}
		messages, err := client.Messages(ctx, token)
		if err != nil {
			return historyMsg{err: err}
		}
		return historyMsg{groups: chat.GroupBySession(messages)}
	}

	return tea.Batch(call, s.spin.Tick())
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.SpinnerTickMsg:
		if !s.loading {
			return s, nil
		}
		s.spin = s.spin.Advance()
		return s, s.spin.Tick()

	case historyMsg:
		s.loading = false
		s.loaded = true
		s.noSession = msg.noSession
		if msg.err != nil {
			s.errMsg = fmt.Sprintf("Could not load history: %v", msg.err)
			return s, nil
		}
		s.groups = msg.groups
		return s, nil

	case screen.RefreshMsg:
		// Back from a successful login; try again with the new session.
		return s, s.fetch()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "enter":
			if s.noSession {
				return s, func() tea.Msg {
					return router.PushScreenMsg{Screen: login.New(s.provider)}
				}
			}
		case "r":
			if !s.loading {
				return s, s.fetch()
			}
		case "up", "k":
			s.scroll++
		case "down", "j":
			if s.scroll > 0 {
				s.scroll--
			}
		}
	}

	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.loading {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			s.spin.View()+" Loading history...")
	}

	if s.noSession {
		prompt := theme.Title.Render("Sign in required") + "\n\n" +
			theme.Body.Render("Past conversations are tied to your account.") + "\n\n" +
			theme.Hint.Render("enter to sign in")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, prompt)
	}

	if s.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.ErrorText.Render(s.errMsg)+"\n\n"+theme.Hint.Render("r to retry"))
	}

	if s.loaded && len(s.groups) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Subtitle.Render("No past conversations yet."))
	}

	var lines []string
	for _, g := range s.groups {
		header := theme.Selected.Render("· " + chat.DisplayID(g.SessionID))
		if len(g.Messages) > 0 {
			header += theme.Subtitle.Render("  " + g.Messages[0].CreatedAt.Format("Jan 2, 2006 15:04"))
		}
		lines = append(lines, header)
		for _, m := range g.Messages {
			who := "You"
			style := theme.Body
			if m.Role == "assistant" {
				who = "Tutor"
				style = theme.Subtitle
			}
			lines = append(lines, "  "+style.Render(who+": "+m.Content))
		}
		lines = append(lines, "")
	}

	visible := height - 2
	if visible < 3 {
		visible = 3
	}
	maxScroll := len(lines) - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	if s.scroll > maxScroll {
		s.scroll = maxScroll
	}
	start := s.scroll
	end := start + visible
	if end > len(lines) {
		end = len(lines)
	}

	return strings.Join(lines[start:end], "\n")
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	if s.noSession {
		return []layout.KeyHint{
			{Key: "enter", Description: "sign in"},
			{Key: "esc", Description: "back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "scroll"},
		{Key: "r", Description: "refresh"},
		{Key: "esc", Description: "back"},
	}
}
