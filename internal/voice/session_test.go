package voice

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/nsharma/lingua/internal/api"
	"github.com/nsharma/lingua/internal/store"
)

type fakeEnder struct {
	calls []string
	err   error
}

func (f *fakeEnder) EndVoiceSession(ctx context.Context, sessionID string) error {
	f.calls = append(f.calls, sessionID)
	return f.err
}

func openTestEvents(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s.EventRepo()
}

func TestEndCallsBackendOnce(t *testing.T) {
	ender := &fakeEnder{}
	s := NewSession(api.VoiceSessionInfo{SessionID: "s-1", RoomName: "room-1"}, ender, nil)

	s.End()
	s.End()
	s.End()

	if len(ender.calls) != 1 {
		t.Fatalf("backend called %d times, want 1", len(ender.calls))
	}
	if ender.calls[0] != "s-1" {
		t.Errorf("ended session %q", ender.calls[0])
	}
}

func TestEndLogsOutcome(t *testing.T) {
	events := openTestEvents(t)
	ender := &fakeEnder{}
	s := NewSession(api.VoiceSessionInfo{SessionID: "s-2", RoomName: "room-2"}, ender, events)

	s.End()

	recs, err := events.Recent(context.Background(), store.KindVoiceSessionEnd, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d end events, want 1", len(recs))
	}

	var data store.VoiceSessionData
	if err := json.Unmarshal(recs[0].Data, &data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if data.SessionID != "s-2" || !data.EndNotified {
		t.Errorf("data = %+v", data)
	}
}

func TestEndLogsBackendFailure(t *testing.T) {
	events := openTestEvents(t)
	ender := &fakeEnder{err: errors.New("backend unreachable")}
	s := NewSession(api.VoiceSessionInfo{SessionID: "s-3"}, ender, events)

	// End never panics or surfaces the error.
	s.End()

	recs, err := events.Recent(context.Background(), store.KindVoiceSessionEnd, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d end events, want 1", len(recs))
	}

	var data store.VoiceSessionData
	if err := json.Unmarshal(recs[0].Data, &data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if data.EndNotified {
		t.Error("EndNotified set despite backend failure")
	}
	if data.ErrorMessage == "" {
		t.Error("backend error not recorded")
	}
}
