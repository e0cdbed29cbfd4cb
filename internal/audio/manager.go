package audio

import (
	"context"
	"errors"
	"sync"
)

// ErrNoPlayer means no playback backend is available on this system.
var ErrNoPlayer = errors.New("no audio player available")

// Manager enforces the single shared playback handle: starting a new
// playback always stops the previous one first.
type Manager struct {
	player Player

	mu      sync.Mutex
	current Playback
}

// NewManager wraps a Player with the one-at-a-time discipline.
func NewManager(player Player) *Manager {
	return &Manager{player: player}
}

// Play stops any active playback and starts a new one. The returned
// Playback belongs to the caller for completion tracking; Stop should
// still go through the Manager.
func (m *Manager) Play(ctx context.Context, audio []byte) (Playback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.player == nil {
		return nil, ErrNoPlayer
	}

	if m.current != nil {
		m.current.Stop()
		m.current = nil
	}

	pb, err := m.player.Start(ctx, audio)
	if err != nil {
		return nil, err
	}
	m.current = pb
	return pb, nil
}

// Stop terminates the active playback, if any.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		m.current.Stop()
		m.current = nil
	}
}
