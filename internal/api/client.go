// Package api is the HTTP client for the language-assistant backend.
// All conversation generation, TTS, voice session negotiation and
// profile persistence live server-side; this package only moves
// requests and responses.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nsharma/lingua/internal/profile"
)

// Client talks to one backend origin. Zero-value is not usable; use New.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the given backend origin.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the configured backend origin.
func (c *Client) BaseURL() string { return c.baseURL }

// SendMessage forwards one user message plus the rolling history to the
// conversation endpoint and returns the assistant reply.
func (c *Client) SendMessage(ctx context.Context, req SendMessageRequest) (*SendMessageResponse, error) {
	if req.History == nil {
		req.History = []HistoryEntry{}
	}
	var resp SendMessageResponse
	if err := c.postJSON(ctx, "/api/conversation/test-cerebras", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Synthesize requests spoken audio for arbitrary text and returns the
// raw audio bytes.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/conversation/tts", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("tts request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, readStatusError(httpResp)
	}
	return io.ReadAll(httpResp.Body)
}

// StartVoiceSession negotiates a realtime session and returns its
// descriptor (token, server URL, room name, session id).
func (c *Client) StartVoiceSession(ctx context.Context, req StartSessionRequest) (*VoiceSessionInfo, error) {
	var info VoiceSessionInfo
	if err := c.postJSON(ctx, "/api/conversation/start", req, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// EndVoiceSession notifies the backend that a realtime session is over.
// Callers treat this as best-effort; the session is torn down
// client-side regardless of the outcome.
func (c *Client) EndVoiceSession(ctx context.Context, sessionID string) error {
	path := fmt.Sprintf("/api/conversation/%s/end", url.PathEscape(sessionID))
	return c.postJSON(ctx, path, nil, nil)
}

// Messages fetches all stored messages for the caller. The bearer
// token is attached when non-empty.
func (c *Client) Messages(ctx context.Context, bearer string) ([]StoredMessage, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/conversation/messages", nil)
	if err != nil {
		return nil, err
	}
	if bearer != "" {
		httpReq.Header.Set("Authorization", "Bearer "+bearer)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("fetch messages: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, readStatusError(httpResp)
	}

	var payload struct {
		Messages []StoredMessage `json:"messages"`
	}
	if err := json.NewDecoder(httpResp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	return payload.Messages, nil
}

// CreateProfile creates a backend user from name, email and the full
// preference object, returning the created user with its identifier.
func (c *Client) CreateProfile(ctx context.Context, name, email string, prefs profile.Preferences) (*User, error) {
	req := struct {
		Name        string              `json:"name"`
		Email       string              `json:"email,omitempty"`
		Preferences profile.Preferences `json:"preferences"`
	}{Name: name, Email: email, Preferences: prefs}

	var payload struct {
		User User `json:"user"`
	}
	if err := c.postJSON(ctx, "/api/users/profile", req, &payload); err != nil {
		return nil, err
	}
	return &payload.User, nil
}

// UpdatePreferences replaces a user's server-side preferences wholesale.
func (c *Client) UpdatePreferences(ctx context.Context, userID string, prefs profile.Preferences) (*UpdateResult, error) {
	req := struct {
		UserID      string              `json:"userId"`
		Preferences profile.Preferences `json:"preferences"`
	}{UserID: userID, Preferences: prefs}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/api/users/preferences", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("update preferences: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, readStatusError(httpResp)
	}

	var result UpdateResult
	if err := json.NewDecoder(httpResp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode update result: %w", err)
	}
	return &result, nil
}

// GetProfile reads a saved user profile.
func (c *Client) GetProfile(ctx context.Context, userID string) (*User, error) {
	var payload struct {
		User User `json:"user"`
	}
	if err := c.getJSON(ctx, "/api/users/profile/"+url.PathEscape(userID), &payload); err != nil {
		return nil, err
	}
	return &payload.User, nil
}

// GetProgress reads a user's progress summary.
func (c *Client) GetProgress(ctx context.Context, userID string) (*Progress, error) {
	var payload struct {
		Progress Progress `json:"progress"`
	}
	if err := c.getJSON(ctx, "/api/users/progress/"+url.PathEscape(userID), &payload); err != nil {
		return nil, err
	}
	return &payload.Progress, nil
}

func (c *Client) postJSON(ctx context.Context, path string, reqBody, out any) error {
	var reader io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if reqBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return readStatusError(httpResp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(httpResp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return readStatusError(httpResp)
	}
	if err := json.NewDecoder(httpResp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func readStatusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &StatusError{Status: resp.StatusCode, Body: string(body)}
}
