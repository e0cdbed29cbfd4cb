package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Event kinds recorded in the local log.
const (
	KindChatExchange      = "chat_exchange"
	KindVoiceSessionStart = "voice_session_start"
	KindVoiceSessionEnd   = "voice_session_end"
)

// ChatExchangeData captures one chat round trip for local telemetry.
type ChatExchangeData struct {
	Difficulty    string  `json:"difficulty"`
	Topic         string  `json:"topic,omitempty"`
	HistoryLen    int     `json:"historyLen"`
	Compacted     bool    `json:"compacted"`
	TotalTokens   int     `json:"totalTokens"`
	EstimatedCost float64 `json:"estimatedCost"`
	Success       bool    `json:"success"`
	ErrorMessage  string  `json:"errorMessage,omitempty"`
}

// VoiceSessionData captures a voice session start or end.
type VoiceSessionData struct {
	SessionID    string `json:"sessionId"`
	RoomName     string `json:"roomName,omitempty"`
	Difficulty   string `json:"difficulty,omitempty"`
	EndNotified  bool   `json:"endNotified,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// EventRecord is one row of the local event log.
type EventRecord struct {
	ID        int64
	Timestamp time.Time
	Kind      string
	Data      json.RawMessage
}

// EventRepo appends best-effort telemetry events. Append failures are
// reported to callers but must never surface to the user.
type EventRepo interface {
	AppendChatExchange(ctx context.Context, data ChatExchangeData) error
	AppendVoiceSession(ctx context.Context, kind string, data VoiceSessionData) error

	// Recent returns up to limit most recent events of the given kind,
	// newest first. An empty kind matches all events.
	Recent(ctx context.Context, kind string, limit int) ([]EventRecord, error)
}

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) append(ctx context.Context, kind string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", kind, err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO events (timestamp, kind, data) VALUES (?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339Nano), kind, string(raw))
	if err != nil {
		return fmt.Errorf("append %s event: %w", kind, err)
	}
	return nil
}

func (r *eventRepo) AppendChatExchange(ctx context.Context, data ChatExchangeData) error {
	return r.append(ctx, KindChatExchange, data)
}

func (r *eventRepo) AppendVoiceSession(ctx context.Context, kind string, data VoiceSessionData) error {
	if kind != KindVoiceSessionStart && kind != KindVoiceSessionEnd {
		return fmt.Errorf("unknown voice session event kind %q", kind)
	}
	return r.append(ctx, kind, data)
}

func (r *eventRepo) Recent(ctx context.Context, kind string, limit int) ([]EventRecord, error) {
	query := `SELECT id, timestamp, kind, data FROM events`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []EventRecord
	for rows.Next() {
		var (
			rec EventRecord
			ts  string
			raw string
		)
		if err := rows.Scan(&rec.ID, &ts, &rec.Kind, &raw); err != nil {
			return nil, err
		}
		rec.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		rec.Data = json.RawMessage(raw)
		out = append(out, rec)
	}
	return out, rows.Err()
}
