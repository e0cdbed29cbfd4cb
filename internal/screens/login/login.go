// Package login implements email/password sign-in against the identity
// service, plus account creation and password recovery.
package login

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nsharma/lingua/internal/auth"
	"github.com/nsharma/lingua/internal/router"
	"github.com/nsharma/lingua/internal/screen"
	"github.com/nsharma/lingua/internal/ui/components"
	"github.com/nsharma/lingua/internal/ui/layout"
	"github.com/nsharma/lingua/internal/ui/theme"
)

// Mode is the form the screen currently shows.
type Mode int

const (
	ModeLogin Mode = iota
	ModeSignup
	ModeReset
)

const minPasswordLen = 8

// authDoneMsg carries the outcome of an auth call.
type authDoneMsg struct {
	mode Mode
	err  error
}

// LoginScreen is the sign-in form. A successful login or signup pops
// back to the caller; recovery stays and reports.
type LoginScreen struct {
	provider auth.Provider
	mode     Mode

	email    components.TextInput
	password components.TextInput
	confirm  components.TextInput
	focus    int

	busy    bool
	spin    components.Spinner
	errMsg  string
	infoMsg string
}

var _ screen.Screen = (*LoginScreen)(nil)

// New creates the login screen.
func New(provider auth.Provider) *LoginScreen {
	s := &LoginScreen{provider: provider}
	s.email = components.NewTextInput("Email", false, 80)
	s.password = components.NewTextInput("Password", false, 80)
	s.password.Model.EchoMode = textinput.EchoPassword
	s.confirm = components.NewTextInput("Confirm password", false, 80)
	s.confirm.Model.EchoMode = textinput.EchoPassword
	return s
}

func (s *LoginScreen) Title() string {
	switch s.mode {
	case ModeSignup:
		return "Sign Up"
	case ModeReset:
		return "Reset Password"
	default:
		return "Sign In"
	}
}

func (s *LoginScreen) Init() tea.Cmd {
	return nil
}

func (s *LoginScreen) fieldCount() int {
	switch s.mode {
	case ModeSignup:
		return 3
	case ModeReset:
		return 1
	default:
		return 2
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.SpinnerTickMsg:
		if !s.busy {
			return s, nil
		}
		s.spin = s.spin.Advance()
		return s, s.spin.Tick()

	case authDoneMsg:
		s.busy = false
		if msg.err != nil {
			s.errMsg = auth.UserMessage(msg.err)
			return s, nil
		}
		if msg.mode == ModeReset {
			s.infoMsg = "Recovery email sent, check your inbox"
			s.mode = ModeLogin
			s.focus = 0
			return s, nil
		}
		return s, tea.Sequence(
			func() tea.Msg { return router.PopScreenMsg{} },
			func() tea.Msg { return screen.RefreshMsg{} },
		)

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *LoginScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "tab":
		s.focus = (s.focus + 1) % s.fieldCount()
		return s, nil
	case "ctrl+s":
		s.switchMode(ModeSignup, ModeLogin)
		return s, nil
	case "ctrl+r":
		s.switchMode(ModeReset, ModeLogin)
		return s, nil
	case "enter":
		return s, s.submit()
	}

	switch s.focus {
	case 0:
		s.email, _ = s.email.Update(msg)
	case 1:
		s.password, _ = s.password.Update(msg)
	case 2:
		s.confirm, _ = s.confirm.Update(msg)
	}
	return s, nil
}

// switchMode toggles to the target mode, or back to fallback when
// already there.
func (s *LoginScreen) switchMode(target, fallback Mode) {
	if s.mode == target {
		s.mode = fallback
	} else {
		s.mode = target
	}
	s.focus = 0
	s.errMsg = ""
	s.infoMsg = ""
}

// submit validates locally first; nothing is sent while the form is
// incomplete or the passwords disagree.
func (s *LoginScreen) submit() tea.Cmd {
	email := strings.TrimSpace(s.email.Value())
	password := s.password.Value()

	if email == "" || !strings.Contains(email, "@") {
		s.errMsg = "Enter a valid email address"
		return nil
	}
	if s.mode != ModeReset {
		if len(password) < minPasswordLen {
			s.errMsg = "Password must be at least 8 characters"
			return nil
		}
	}
	if s.mode == ModeSignup && password != s.confirm.Value() {
		s.errMsg = "Passwords do not match"
		return nil
	}

	s.errMsg = ""
	s.infoMsg = ""
	s.busy = true
	mode := s.mode
	provider := s.provider

	call := func() tea.Msg {
		ctx := context.Background()
		var err error
		switch mode {
		case ModeSignup:
			err = provider.Signup(ctx, email, password)
		case ModeReset:
			err = provider.ResetPassword(ctx, email)
		default:
			err = provider.Login(ctx, email, password)
		}
		return authDoneMsg{mode: mode, err: err}
	}

	return tea.Batch(call, s.spin.Tick())
}

func (s *LoginScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render(s.Title()))
	b.WriteString("\n\n")

	label := func(i int, text string) string {
		if i == s.focus {
			return theme.Selected.Render("» " + text)
		}
		return theme.Subtitle.Render("  " + text)
	}

	b.WriteString(label(0, "Email") + "\n" + s.email.View() + "\n")
	if s.mode != ModeReset {
		b.WriteString("\n" + label(1, "Password") + "\n" + s.password.View() + "\n")
	}
	if s.mode == ModeSignup {
		b.WriteString("\n" + label(2, "Confirm") + "\n" + s.confirm.View() + "\n")
	}

	if s.busy {
		b.WriteString("\n" + s.spin.View() + " Contacting the identity service...")
	}
	if s.errMsg != "" {
		b.WriteString("\n" + theme.ErrorText.Render(s.errMsg))
	}
	if s.infoMsg != "" {
		b.WriteString("\n" + theme.SuccessText.Render(s.infoMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "enter", Description: "submit"},
		{Key: "tab", Description: "field"},
		{Key: "ctrl+s", Description: "sign up"},
		{Key: "ctrl+r", Description: "reset"},
		{Key: "esc", Description: "back"},
	}
}
