// Package auth wraps the third-party identity service behind a
// capability interface so screens can be tested without a live network.
package auth

import (
	"context"
	"errors"
	"fmt"
)

// ErrAuthFailed is the generic failure reported to the user when the
// provider gives nothing more specific.
var ErrAuthFailed = errors.New("authentication failed")

// ErrNoSession indicates no current session exists.
var ErrNoSession = errors.New("no active session")

// Provider is the identity-service abstraction: session-based
// email/password auth plus recovery and token retrieval. A single
// failed attempt is reported as-is; no operation retries.
type Provider interface {
	// Login creates an email/password session.
	Login(ctx context.Context, email, password string) error

	// Signup creates an account and then logs it in.
	Signup(ctx context.Context, email, password string) error

	// Logout deletes the current session.
	Logout(ctx context.Context) error

	// ResetPassword sends a recovery email.
	ResetPassword(ctx context.Context, email string) error

	// SessionToken returns the current session's access token, or
	// ErrNoSession when logged out.
	SessionToken(ctx context.Context) (string, error)
}

// ProviderError carries the service's own message when it supplied one.
type ProviderError struct {
	Message string
	Status  int
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%v (HTTP %d)", ErrAuthFailed, e.Status)
}

func (e *ProviderError) Unwrap() error { return ErrAuthFailed }

// UserMessage renders an auth error for display: the provider's own
// message when present, otherwise the generic one.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var pe *ProviderError
	if errors.As(err, &pe) && pe.Message != "" {
		return pe.Message
	}
	if errors.Is(err, ErrAuthFailed) {
		return "Authentication failed"
	}
	return err.Error()
}
