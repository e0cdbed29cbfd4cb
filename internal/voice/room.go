// Package voice manages the realtime voice session lifecycle. The
// actual media transport, turn-taking and speech detection live in the
// realtime room service; this package negotiates sessions with the
// backend, consumes the room's event stream, and guarantees session
// teardown is reported exactly once.
package voice

import (
	"context"

	"github.com/nsharma/lingua/internal/api"
)

// AssistantState is the room-reported state of the AI assistant.
type AssistantState string

const (
	StateIdle      AssistantState = "idle"
	StateListening AssistantState = "listening"
	StateThinking  AssistantState = "thinking"
	StateSpeaking  AssistantState = "speaking"
)

// Event is anything the room emits. Screens consume these from a
// single channel.
type Event interface{ isEvent() }

// ConnectedEvent fires once the room connection is established.
type ConnectedEvent struct {
	RoomName string
}

// StateEvent reports an assistant state change.
type StateEvent struct {
	State AssistantState
}

// LocalTrackEvent reports that the local participant published an
// audio track. Track ids collected from these events drive transcript
// attribution.
type LocalTrackEvent struct {
	TrackID string
}

// TranscriptionEvent is one live transcript line, attributed by its
// source audio track.
type TranscriptionEvent struct {
	Text    string
	TrackID string
	Final   bool
}

// DisconnectedEvent fires when the room connection ends. Err is nil on
// a clean disconnect.
type DisconnectedEvent struct {
	Err error
}

func (ConnectedEvent) isEvent()     {}
func (StateEvent) isEvent()         {}
func (LocalTrackEvent) isEvent()    {}
func (TranscriptionEvent) isEvent() {}
func (DisconnectedEvent) isEvent()  {}

// Room is an established realtime connection.
type Room interface {
	// Events streams room events. Closed when the room disconnects.
	Events() <-chan Event

	// Close tears down the connection. Safe to call more than once.
	Close() error
}

// RoomClient connects to the realtime room service using a session
// descriptor issued by the backend. It is a capability interface so
// screens can be tested with a scripted fake.
type RoomClient interface {
	Connect(ctx context.Context, info api.VoiceSessionInfo) (Room, error)
}
