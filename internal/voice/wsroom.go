package voice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/nsharma/lingua/internal/api"
)

// WSRoomClient speaks the room service's websocket signaling protocol:
// a token-authenticated connection carrying JSON events for assistant
// state, published tracks and live transcription. Media transport and
// turn-taking stay inside the service.
type WSRoomClient struct {
	dialer *websocket.Dialer
}

var _ RoomClient = (*WSRoomClient)(nil)

// NewWSRoomClient creates a room client with default dialer settings.
func NewWSRoomClient() *WSRoomClient {
	return &WSRoomClient{dialer: websocket.DefaultDialer}
}

func (c *WSRoomClient) Connect(ctx context.Context, info api.VoiceSessionInfo) (Room, error) {
	u, err := url.Parse(info.URL)
	if err != nil {
		return nil, fmt.Errorf("parse room URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	q := u.Query()
	q.Set("access_token", info.Token)
	q.Set("room", info.RoomName)
	u.RawQuery = q.Encode()

	conn, resp, err := c.dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("connect room (HTTP %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("connect room: %w", err)
	}

	r := &wsRoom{
		conn:   conn,
		name:   info.RoomName,
		events: make(chan Event, 16),
	}
	go r.readLoop()
	return r, nil
}

type wsRoom struct {
	conn   *websocket.Conn
	name   string
	events chan Event

	// Written by Close on the UI goroutine, read by readLoop.
	closed atomic.Bool
}

func (r *wsRoom) Events() <-chan Event { return r.events }

func (r *wsRoom) Close() error {
	if r.closed.Swap(true) {
		return nil
	}
	_ = r.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return r.conn.Close()
}

// wsEvent is the wire shape of a room event.
type wsEvent struct {
	Type    string `json:"type"`
	State   string `json:"state,omitempty"`
	TrackID string `json:"trackId,omitempty"`
	Text    string `json:"text,omitempty"`
	Final   bool   `json:"final,omitempty"`
	Room    string `json:"room,omitempty"`
}

func (r *wsRoom) readLoop() {
	defer close(r.events)

	r.events <- ConnectedEvent{RoomName: r.name}

	for {
		_, data, err := r.conn.ReadMessage()
		if err != nil {
			if r.closed.Load() || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				r.events <- DisconnectedEvent{}
			} else {
				r.events <- DisconnectedEvent{Err: err}
			}
			return
		}

		var ev wsEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			continue
		}

		switch strings.ToLower(ev.Type) {
		case "state":
			r.events <- StateEvent{State: AssistantState(ev.State)}
		case "local_track":
			r.events <- LocalTrackEvent{TrackID: ev.TrackID}
		case "transcription":
			r.events <- TranscriptionEvent{Text: ev.Text, TrackID: ev.TrackID, Final: ev.Final}
		}
	}
}
