// Package chat holds the in-memory state of a text chat: the ordered
// transcript, the rolling history echoed back to the backend, and the
// cosmetic usage telemetry. It owns no I/O.
package chat

import (
	"time"

	"github.com/nsharma/lingua/internal/api"
)

// Role of a transcript message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one transcript entry. Transcripts live only for the
// current screen session and are never persisted client-side.
type Message struct {
	Role      Role
	Content   string
	Timestamp time.Time
}

// Telemetry accumulates cosmetic counters across exchanges. It informs
// the footer display only, never control decisions.
type Telemetry struct {
	TotalTokens    int
	EstimatedCost  float64
	CompactedCount int
	Exchanges      int
}

// Conversation is the state of one chat screen session.
type Conversation struct {
	Messages  []Message
	History   []api.HistoryEntry
	Telemetry Telemetry
}

// AppendUser optimistically appends the user's message before the
// backend round trip. It stays in the transcript even if the call
// later fails.
func (c *Conversation) AppendUser(content string) {
	c.Messages = append(c.Messages, Message{
		Role:      RoleUser,
		Content:   content,
		Timestamp: time.Now(),
	})
}

// ApplyReply appends the assistant reply, replaces the rolling history
// with the backend-returned value, and accumulates telemetry.
func (c *Conversation) ApplyReply(resp *api.SendMessageResponse) {
	c.Messages = append(c.Messages, Message{
		Role:      RoleAssistant,
		Content:   resp.AIResponse,
		Timestamp: time.Now(),
	})

	// The backend owns the history buffer; replace, never merge.
	c.History = resp.History
	if c.History == nil {
		c.History = []api.HistoryEntry{}
	}

	c.Telemetry.Exchanges++
	if resp.Compacted {
		c.Telemetry.CompactedCount++
	}
	if resp.TokenUsage != nil {
		c.Telemetry.TotalTokens += resp.TokenUsage.TotalTokens
		c.Telemetry.EstimatedCost += resp.TokenUsage.EstimatedCost
	}
}

// LastAssistant returns the most recent assistant message, if any.
func (c *Conversation) LastAssistant() (Message, bool) {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleAssistant {
			return c.Messages[i], true
		}
	}
	return Message{}, false
}

// Clear resets transcript, history and telemetry.
func (c *Conversation) Clear() {
	c.Messages = nil
	c.History = nil
	c.Telemetry = Telemetry{}
}
