package voice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nsharma/lingua/internal/api"
)

func roomServer(t *testing.T, handler func(*websocket.Conn)) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("room"); got != "room-1" {
			t.Errorf("room query = %q", got)
		}
		if got := r.URL.Query().Get("access_token"); got != "tok" {
			t.Errorf("access_token query = %q", got)
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		handler(conn)
	}))
	t.Cleanup(server.Close)
	return server
}

func connectRoom(t *testing.T, server *httptest.Server) Room {
	t.Helper()
	client := NewWSRoomClient()
	room, err := client.Connect(context.Background(), api.VoiceSessionInfo{
		Token:    "tok",
		URL:      server.URL,
		RoomName: "room-1",
	})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	return room
}

func TestWSRoomEventStream(t *testing.T) {
	server := roomServer(t, func(conn *websocket.Conn) {
		msgs := []string{
			`{"type":"state","state":"listening"}`,
			`{"type":"local_track","trackId":"TR1"}`,
			`{"type":"transcription","text":"hola","trackId":"TR1","final":true}`,
		}
		for _, m := range msgs {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(m))
		}
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = conn.Close()
	})

	room := connectRoom(t, server)
	defer func() { _ = room.Close() }()

	var got []Event
	for ev := range room.Events() {
		got = append(got, ev)
	}

	if len(got) != 5 {
		t.Fatalf("got %d events: %+v", len(got), got)
	}
	if ce, ok := got[0].(ConnectedEvent); !ok || ce.RoomName != "room-1" {
		t.Errorf("first event = %+v", got[0])
	}
	if se, ok := got[1].(StateEvent); !ok || se.State != StateListening {
		t.Errorf("second event = %+v", got[1])
	}
	if lt, ok := got[2].(LocalTrackEvent); !ok || lt.TrackID != "TR1" {
		t.Errorf("third event = %+v", got[2])
	}
	if tr, ok := got[3].(TranscriptionEvent); !ok || tr.Text != "hola" || !tr.Final {
		t.Errorf("fourth event = %+v", got[3])
	}
	if de, ok := got[4].(DisconnectedEvent); !ok || de.Err != nil {
		t.Errorf("last event = %+v", got[4])
	}
}

func TestWSRoomCloseDuringServerDrop(t *testing.T) {
	dropped := make(chan struct{})
	server := roomServer(t, func(conn *websocket.Conn) {
		// Drop the connection without a close handshake.
		_ = conn.Close()
		close(dropped)
	})

	room := connectRoom(t, server)
	<-dropped

	// Close races with the read loop observing the dropped connection.
	go func() { _ = room.Close() }()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-room.Events():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("event stream never terminated")
		}
	}
}

func TestWSRoomCloseIdempotent(t *testing.T) {
	server := roomServer(t, func(conn *websocket.Conn) {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = conn.Close()
	})

	room := connectRoom(t, server)
	for range room.Events() {
	}

	if err := room.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := room.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
