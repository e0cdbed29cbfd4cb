package auth

import (
	"context"
	"sync"
)

// MockProvider is a deterministic Provider for testing. It records
// calls and keeps a single in-memory account/session.
type MockProvider struct {
	mu sync.Mutex

	// Err, when set, is returned by every operation.
	Err error

	// Token is returned by SessionToken while logged in.
	Token string

	email     string
	password  string
	loggedIn  bool
	Calls     []string
	Recovered []string
}

var _ Provider = (*MockProvider)(nil)

func (m *MockProvider) record(op string) {
	m.Calls = append(m.Calls, op)
}

func (m *MockProvider) Login(_ context.Context, email, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("login")
	if m.Err != nil {
		return m.Err
	}
	if m.email != "" && (email != m.email || password != m.password) {
		return &ProviderError{Message: "Invalid credentials", Status: 401}
	}
	m.email, m.password = email, password
	m.loggedIn = true
	return nil
}

func (m *MockProvider) Signup(_ context.Context, email, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("signup")
	if m.Err != nil {
		return m.Err
	}
	m.email, m.password = email, password
	m.loggedIn = true
	return nil
}

func (m *MockProvider) Logout(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("logout")
	if m.Err != nil {
		return m.Err
	}
	m.loggedIn = false
	return nil
}

func (m *MockProvider) ResetPassword(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("reset")
	if m.Err != nil {
		return m.Err
	}
	m.Recovered = append(m.Recovered, email)
	return nil
}

func (m *MockProvider) SessionToken(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("token")
	if !m.loggedIn {
		return "", ErrNoSession
	}
	return m.Token, nil
}
