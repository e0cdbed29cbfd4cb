package voice

import (
	"context"
	"sync"
	"time"

	"github.com/nsharma/lingua/internal/api"
	"github.com/nsharma/lingua/internal/store"
)

// SessionEnder is the slice of the backend client a Session needs.
type SessionEnder interface {
	EndVoiceSession(ctx context.Context, sessionID string) error
}

// Session tracks one started voice session and guarantees the backend
// end-of-session call happens exactly once, whether triggered by
// explicit disconnect, screen teardown, or app exit.
type Session struct {
	Info api.VoiceSessionInfo

	ender  SessionEnder
	events store.EventRepo
	once   sync.Once
}

// NewSession wraps a started session descriptor. events may be nil.
func NewSession(info api.VoiceSessionInfo, ender SessionEnder, events store.EventRepo) *Session {
	return &Session{Info: info, ender: ender, events: events}
}

// End notifies the backend that the session is over. Best-effort: the
// session is considered torn down client-side regardless of the
// outcome, and errors go to the local event log only. Subsequent calls
// are no-ops.
func (s *Session) End() {
	s.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := s.ender.EndVoiceSession(ctx, s.Info.SessionID)

		if s.events == nil {
			return
		}
		data := store.VoiceSessionData{
			SessionID:   s.Info.SessionID,
			RoomName:    s.Info.RoomName,
			EndNotified: err == nil,
		}
		if err != nil {
			data.ErrorMessage = err.Error()
		}
		_ = s.events.AppendVoiceSession(ctx, store.KindVoiceSessionEnd, data)
	})
}
