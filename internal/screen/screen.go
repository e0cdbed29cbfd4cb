package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/nsharma/lingua/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// RefreshMsg tells a screen that shared state it rendered from (the
// cached identity, for one) may have changed underneath it.
type RefreshMsg struct{}

// Teardown is an optional interface for screens holding resources that
// must be released when the screen leaves the stack or the app exits,
// such as an open voice session or audio playback.
type Teardown interface {
	Teardown()
}
