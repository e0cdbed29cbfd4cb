// Package home is the main menu. It reads the cached identity to
// personalize labels and routes into every other screen.
package home

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/nsharma/lingua/internal/api"
	"github.com/nsharma/lingua/internal/audio"
	"github.com/nsharma/lingua/internal/auth"
	"github.com/nsharma/lingua/internal/profile"
	"github.com/nsharma/lingua/internal/router"
	"github.com/nsharma/lingua/internal/screen"
	"github.com/nsharma/lingua/internal/screens/dashboard"
	"github.com/nsharma/lingua/internal/screens/login"
	"github.com/nsharma/lingua/internal/screens/msghistory"
	"github.com/nsharma/lingua/internal/screens/onboarding"
	"github.com/nsharma/lingua/internal/screens/textchat"
	"github.com/nsharma/lingua/internal/screens/voicechat"
	"github.com/nsharma/lingua/internal/store"
	"github.com/nsharma/lingua/internal/ui/components"
	"github.com/nsharma/lingua/internal/ui/theme"
	"github.com/nsharma/lingua/internal/voice"
)

const banner = `
 ██╗     ██╗███╗   ██╗ ██████╗ ██╗   ██╗ █████╗
 ██║     ██║████╗  ██║██╔════╝ ██║   ██║██╔══██╗
 ██║     ██║██╔██╗ ██║██║  ███╗██║   ██║███████║
 ██║     ██║██║╚██╗██║██║   ██║██║   ██║██╔══██║
 ███████╗██║██║ ╚████║╚██████╔╝╚██████╔╝██║  ██║
 ╚══════╝╚═╝╚═╝  ╚═══╝ ╚═════╝  ╚═════╝ ╚═╝  ╚═╝`

// sessionStateMsg reports whether a signed-in identity session exists.
type sessionStateMsg struct {
	signedIn bool
}

// logoutDoneMsg reports the outcome of signing out.
type logoutDoneMsg struct {
	err error
}

// HomeScreen is the application's main menu.
type HomeScreen struct {
	client   *api.Client
	provider auth.Provider
	identity store.IdentityRepo
	events   store.EventRepo
	rooms    voice.RoomClient
	sounds   *audio.Manager

	menu     components.Menu
	userID   string
	cached   *profile.Profile
	signedIn bool
	status   string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen and reads the cached identity.
func New(client *api.Client, provider auth.Provider, identity store.IdentityRepo, events store.EventRepo, rooms voice.RoomClient, sounds *audio.Manager) *HomeScreen {
	h := &HomeScreen{
		client:   client,
		provider: provider,
		identity: identity,
		events:   events,
		rooms:    rooms,
		sounds:   sounds,
	}
	h.reload()
	return h
}

// reload re-reads the cached identity and rebuilds the menu around it.
func (h *HomeScreen) reload() {
	ctx := context.Background()
	h.userID = ""
	if id, ok := h.identity.UserID(ctx); ok {
		h.userID = id
	}
	h.cached = nil
	if p, ok := h.identity.Profile(ctx); ok {
		h.cached = p
	}
	h.buildMenu()
}

func (h *HomeScreen) buildMenu() {
	profileLabel := "CREATE PROFILE"
	if h.cached != nil {
		profileLabel = "EDIT PREFERENCES"
	}
	accountLabel := "SIGN IN"
	if h.signedIn {
		accountLabel = "SIGN OUT"
	}

	items := []components.MenuItem{
		{Label: "TEXT CHAT", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: textchat.New(h.client, h.events, h.sounds, h.userID, h.cached),
				}
			}
		}},
		{Label: "VOICE CHAT", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: voicechat.New(h.client, h.rooms, h.events, h.voiceUserID(), h.cached),
				}
			}
		}},
		{Label: "DASHBOARD", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: dashboard.New(h.client, h.identity, h.userID),
				}
			}
		}},
		{Label: "HISTORY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: msghistory.New(h.client, h.provider),
				}
			}
		}},
		{Label: profileLabel, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: onboarding.New(h.client, h.identity, h.cached, h.userID),
				}
			}
		}},
		{Label: accountLabel, Action: func() tea.Cmd {
			if h.signedIn {
				return h.logout()
			}
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: login.New(h.provider)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	selected := h.menu.Selected
	h.menu = components.NewMenu(items)
	if selected > 0 && selected < len(items) {
		h.menu.Selected = selected
	}
}

// voiceUserID returns the cached user id, or a throwaway guest id so a
// voice session can start without a profile.
func (h *HomeScreen) voiceUserID() string {
	if h.userID != "" {
		return h.userID
	}
	return "guest_" + uuid.NewString()
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.checkSession()
}

// checkSession probes the identity service for a live session so the
// account menu entry reads correctly.
func (h *HomeScreen) checkSession() tea.Cmd {
	provider := h.provider
	return func() tea.Msg {
		_, err := provider.SessionToken(context.Background())
		return sessionStateMsg{signedIn: err == nil}
	}
}

func (h *HomeScreen) logout() tea.Cmd {
	provider := h.provider
	return func() tea.Msg {
		return logoutDoneMsg{err: provider.Logout(context.Background())}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionStateMsg:
		h.signedIn = msg.signedIn
		h.buildMenu()
		return h, nil

	case logoutDoneMsg:
		if msg.err != nil {
			h.status = "Sign out failed: " + auth.UserMessage(msg.err)
			if errors.Is(msg.err, auth.ErrNoSession) {
				h.signedIn = false
				h.status = ""
			}
		} else {
			h.signedIn = false
			h.status = "Signed out"
		}
		h.buildMenu()
		return h, nil

	case screen.RefreshMsg:
		h.reload()
		return h, h.checkSession()
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, theme.Title.Render(banner))

	greeting := "Your language tutor, in the terminal"
	if h.cached != nil && h.cached.Name != "" {
		greeting = "Welcome back, " + h.cached.Name
		if h.cached.Preferences.TargetLanguage != "" {
			greeting += "  ·  " + h.cached.Preferences.TargetLanguage
		}
	}
	sections = append(sections, theme.Subtitle.Render(greeting))
	sections = append(sections, "")
	sections = append(sections, h.menu.View())

	if h.status != "" {
		sections = append(sections, theme.Hint.Render(h.status))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
