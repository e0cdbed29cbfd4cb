// Package app owns the root Bubble Tea model: window sizing, the
// screen router, the shared header and footer, and teardown of screens
// still holding resources when the program exits.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nsharma/lingua/internal/api"
	"github.com/nsharma/lingua/internal/audio"
	"github.com/nsharma/lingua/internal/auth"
	"github.com/nsharma/lingua/internal/router"
	"github.com/nsharma/lingua/internal/screen"
	"github.com/nsharma/lingua/internal/screens/home"
	"github.com/nsharma/lingua/internal/store"
	"github.com/nsharma/lingua/internal/ui/layout"
	"github.com/nsharma/lingua/internal/voice"
)

// Options carries the wired dependencies for the TUI.
type Options struct {
	Client   *api.Client
	Provider auth.Provider
	Identity store.IdentityRepo
	Events   store.EventRepo
	Rooms    voice.RoomClient
	Sounds   *audio.Manager
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	identity store.IdentityRepo
	userName string
	width    int
	height   int
}

// newAppModel creates the root model with the home screen on the stack.
func newAppModel(opts Options) AppModel {
	homeScreen := home.New(opts.Client, opts.Provider, opts.Identity, opts.Events, opts.Rooms, opts.Sounds)
	m := AppModel{
		router:   router.New(homeScreen),
		identity: opts.Identity,
	}
	m.readUserName()
	return m
}

// readUserName pulls the cached display name for the header.
func (m *AppModel) readUserName() {
	m.userName = ""
	if p, ok := m.identity.Profile(context.Background()); ok {
		m.userName = p.Name
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.RefreshMsg:
		m.readUserName()
		// Fall through to the router so the active screen refreshes too.

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.userName, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program and tears down any screens still
// holding resources once it exits.
func Run(opts Options) error {
	m := newAppModel(opts)
	p := tea.NewProgram(m)
	_, err := p.Run()
	m.router.TeardownAll()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
