package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/nsharma/lingua/internal/config"
)

// AppwriteProvider implements Provider against an Appwrite-style
// account API. Sessions are cookie-based; the jar keeps the session
// cookie for the lifetime of the process.
type AppwriteProvider struct {
	endpoint string
	project  string
	http     *http.Client
}

var _ Provider = (*AppwriteProvider)(nil)

// NewAppwriteProvider creates a provider from config.
func NewAppwriteProvider(cfg config.AuthConfig) (*AppwriteProvider, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("auth endpoint is required")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	return &AppwriteProvider{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		project:  cfg.Project,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
	}, nil
}

func (p *AppwriteProvider) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	return p.do(ctx, http.MethodPost, "/account/sessions/email", body, nil)
}

func (p *AppwriteProvider) Signup(ctx context.Context, email, password string) error {
	body := map[string]string{
		"userId":   "unique()",
		"email":    email,
		"password": password,
	}
	if err := p.do(ctx, http.MethodPost, "/account", body, nil); err != nil {
		return err
	}
	return p.Login(ctx, email, password)
}

func (p *AppwriteProvider) Logout(ctx context.Context) error {
	return p.do(ctx, http.MethodDelete, "/account/sessions/current", nil, nil)
}

func (p *AppwriteProvider) ResetPassword(ctx context.Context, email string) error {
	body := map[string]string{
		"email": email,
		"url":   p.endpoint + "/reset-password",
	}
	return p.do(ctx, http.MethodPost, "/account/recovery", body, nil)
}

func (p *AppwriteProvider) SessionToken(ctx context.Context) (string, error) {
	var session struct {
		ProviderAccessToken string `json:"providerAccessToken"`
	}
	if err := p.do(ctx, http.MethodGet, "/account/sessions/current", nil, &session); err != nil {
		// Absence of a session is expected for guests.
		return "", ErrNoSession
	}
	return session.ProviderAccessToken, nil
}

func (p *AppwriteProvider) do(ctx context.Context, method, path string, reqBody, out any) error {
	var reader io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.endpoint+path, reader)
	if err != nil {
		return err
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if p.project != "" {
		req.Header.Set("X-Appwrite-Project", p.project)
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return providerError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrAuthFailed, err)
	}
	return nil
}

// providerError extracts the service's message when the body carries
// one, falling back to the generic failure.
func providerError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var payload struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(data, &payload)

	return &ProviderError{Message: payload.Message, Status: resp.StatusCode}
}
