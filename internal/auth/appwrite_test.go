package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nsharma/lingua/internal/config"
)

func testProvider(t *testing.T, handler http.HandlerFunc) *AppwriteProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewAppwriteProvider(config.AuthConfig{Endpoint: server.URL, Project: "proj-1"})
	if err != nil {
		t.Fatalf("NewAppwriteProvider: %v", err)
	}
	return p
}

func TestNewAppwriteProviderRequiresEndpoint(t *testing.T) {
	if _, err := NewAppwriteProvider(config.AuthConfig{}); err == nil {
		t.Fatal("expected error for empty endpoint")
	}
}

func TestLogin(t *testing.T) {
	var got map[string]string
	p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/account/sessions/email" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-Appwrite-Project") != "proj-1" {
			t.Errorf("project header = %q", r.Header.Get("X-Appwrite-Project"))
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{}`))
	})

	if err := p.Login(context.Background(), "maya@example.com", "hunter22"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got["email"] != "maya@example.com" || got["password"] != "hunter22" {
		t.Errorf("request body = %v", got)
	}
}

func TestSignupLogsIn(t *testing.T) {
	var paths []string
	p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		_, _ = w.Write([]byte(`{}`))
	})

	if err := p.Signup(context.Background(), "maya@example.com", "hunter22"); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if len(paths) != 2 || paths[0] != "POST /account" || paths[1] != "POST /account/sessions/email" {
		t.Errorf("requests = %v", paths)
	}
}

func TestLoginProviderError(t *testing.T) {
	p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid credentials. Please check the email and password."}`))
	})

	err := p.Login(context.Background(), "maya@example.com", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}

	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("error type = %T", err)
	}
	if pe.Status != http.StatusUnauthorized {
		t.Errorf("Status = %d", pe.Status)
	}
	if !errors.Is(err, ErrAuthFailed) {
		t.Error("provider error does not unwrap to ErrAuthFailed")
	}
	if got := UserMessage(err); got != "Invalid credentials. Please check the email and password." {
		t.Errorf("UserMessage = %q", got)
	}
}

func TestSessionToken(t *testing.T) {
	p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/account/sessions/current" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"providerAccessToken":"tok-9"}`))
	})

	tok, err := p.SessionToken(context.Background())
	if err != nil {
		t.Fatalf("SessionToken: %v", err)
	}
	if tok != "tok-9" {
		t.Errorf("token = %q", tok)
	}
}

func TestSessionTokenNoSession(t *testing.T) {
	p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"User (role: guests) missing scope (account)"}`))
	})

	_, err := p.SessionToken(context.Background())
	if !errors.Is(err, ErrNoSession) {
		t.Errorf("err = %v, want ErrNoSession", err)
	}
}

func TestLogout(t *testing.T) {
	var method, path string
	p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	if err := p.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if method != http.MethodDelete || path != "/account/sessions/current" {
		t.Errorf("request = %s %s", method, path)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"provider message", &ProviderError{Message: "Rate limit exceeded", Status: 429}, "Rate limit exceeded"},
		{"provider no message", &ProviderError{Status: 500}, "Authentication failed"},
		{"plain error", errors.New("dial tcp: timeout"), "dial tcp: timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage = %q, want %q", got, tt.want)
			}
		})
	}
}
