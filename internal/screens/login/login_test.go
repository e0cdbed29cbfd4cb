package login

import (
	"testing"

	"github.com/nsharma/lingua/internal/auth"
)

func TestSubmitValidatesLocally(t *testing.T) {
	tests := []struct {
		name     string
		mode     Mode
		email    string
		password string
		confirm  string
		wantErr  string
	}{
		{"empty email", ModeLogin, "", "password123", "", "Enter a valid email address"},
		{"no at sign", ModeLogin, "maya.example.com", "password123", "", "Enter a valid email address"},
		{"short password", ModeLogin, "maya@example.com", "short", "", "Password must be at least 8 characters"},
		{"signup mismatch", ModeSignup, "maya@example.com", "password123", "different", "Passwords do not match"},
		{"reset skips password check", ModeReset, "bad-email", "", "", "Enter a valid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &auth.MockProvider{}
			s := New(provider)
			s.mode = tt.mode
			s.email.Model.SetValue(tt.email)
			s.password.Model.SetValue(tt.password)
			s.confirm.Model.SetValue(tt.confirm)

			cmd := s.submit()

			if cmd != nil {
				t.Error("invalid form produced a command")
			}
			if s.errMsg != tt.wantErr {
				t.Errorf("errMsg = %q, want %q", s.errMsg, tt.wantErr)
			}
			// Nothing reaches the provider while validation fails.
			if len(provider.Calls) != 0 {
				t.Errorf("provider calls = %v", provider.Calls)
			}
		})
	}
}

func TestSubmitMarksBusy(t *testing.T) {
	s := New(&auth.MockProvider{})
	s.email.Model.SetValue("maya@example.com")
	s.password.Model.SetValue("password123")

	cmd := s.submit()
	if cmd == nil {
		t.Fatal("valid form produced no command")
	}
	if !s.busy {
		t.Error("screen not marked busy")
	}
	if s.errMsg != "" {
		t.Errorf("errMsg = %q", s.errMsg)
	}
}

func TestAuthDoneError(t *testing.T) {
	s := New(&auth.MockProvider{})
	s.busy = true

	updated, cmd := s.Update(authDoneMsg{
		mode: ModeLogin,
		err:  &auth.ProviderError{Message: "Invalid credentials", Status: 401},
	})

	got := updated.(*LoginScreen)
	if got.busy {
		t.Error("still busy after failure")
	}
	if got.errMsg != "Invalid credentials" {
		t.Errorf("errMsg = %q", got.errMsg)
	}
	if cmd != nil {
		t.Error("failure produced a navigation command")
	}
}

func TestAuthDoneLoginPops(t *testing.T) {
	s := New(&auth.MockProvider{})
	s.busy = true

	updated, cmd := s.Update(authDoneMsg{mode: ModeLogin})

	if updated.(*LoginScreen).busy {
		t.Error("still busy after success")
	}
	if cmd == nil {
		t.Error("success produced no navigation command")
	}
}

func TestAuthDoneResetStays(t *testing.T) {
	s := New(&auth.MockProvider{})
	s.mode = ModeReset
	s.busy = true

	updated, cmd := s.Update(authDoneMsg{mode: ModeReset})

	got := updated.(*LoginScreen)
	if cmd != nil {
		t.Error("recovery produced a navigation command")
	}
	if got.mode != ModeLogin {
		t.Errorf("mode = %v, want login", got.mode)
	}
	if got.infoMsg == "" {
		t.Error("no confirmation message shown")
	}
}

func TestSwitchModeToggles(t *testing.T) {
	s := New(&auth.MockProvider{})

	s.switchMode(ModeSignup, ModeLogin)
	if s.mode != ModeSignup {
		t.Errorf("mode = %v", s.mode)
	}

	// Toggling again falls back.
	s.switchMode(ModeSignup, ModeLogin)
	if s.mode != ModeLogin {
		t.Errorf("mode = %v", s.mode)
	}

	s.errMsg = "stale"
	s.switchMode(ModeReset, ModeLogin)
	if s.errMsg != "" {
		t.Error("mode switch kept a stale error")
	}
}

func TestFieldCount(t *testing.T) {
	s := New(&auth.MockProvider{})

	tests := []struct {
		mode Mode
		want int
	}{
		{ModeLogin, 2},
		{ModeSignup, 3},
		{ModeReset, 1},
	}
	for _, tt := range tests {
		s.mode = tt.mode
		if got := s.fieldCount(); got != tt.want {
			t.Errorf("fieldCount(%v) = %d, want %d", tt.mode, got, tt.want)
		}
	}
}
