package api

import (
	"time"

	"github.com/nsharma/lingua/internal/profile"
)

// HistoryEntry is one role/content pair of the rolling conversation
// history. The backend owns its shrinking (compaction); the client only
// echoes the list back verbatim on the next call.
type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TokenUsage reports per-exchange token consumption and estimated cost.
// Purely informational; never used for control decisions.
type TokenUsage struct {
	TotalTokens   int     `json:"totalTokens"`
	EstimatedCost float64 `json:"estimatedCost"`
}

// SendMessageRequest is the body for the conversation endpoint.
type SendMessageRequest struct {
	Message         string               `json:"message"`
	Difficulty      string               `json:"difficulty"`
	Topic           string               `json:"topic,omitempty"`
	History         []HistoryEntry       `json:"history"`
	UserID          string               `json:"userId,omitempty"`
	UserPreferences *profile.Preferences `json:"userPreferences,omitempty"`
	UserName        string               `json:"userName,omitempty"`
}

// SendMessageResponse carries the assistant reply plus the replaced
// rolling history and optional cost telemetry.
type SendMessageResponse struct {
	AIResponse string         `json:"aiResponse"`
	History    []HistoryEntry `json:"history"`
	Compacted  bool           `json:"compacted"`
	TokenUsage *TokenUsage    `json:"tokenUsage,omitempty"`
}

// StartSessionRequest is the body for the voice session endpoint.
type StartSessionRequest struct {
	Type       string `json:"type"`
	Difficulty string `json:"difficulty"`
	Topic      string `json:"topic,omitempty"`
	UserID     string `json:"userId"`
}

// VoiceSessionInfo is the realtime session descriptor: everything the
// room client needs to connect, plus the id used to end the session.
type VoiceSessionInfo struct {
	Token     string `json:"token"`
	URL       string `json:"url"`
	RoomName  string `json:"roomName"`
	SessionID string `json:"sessionId"`
}

// StoredMessage is one persisted message from past conversations.
type StoredMessage struct {
	ID        string    `json:"$id"`
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id,omitempty"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// User is the backend user record.
type User struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Email       string              `json:"email,omitempty"`
	CreatedAt   string              `json:"createdAt,omitempty"`
	Preferences profile.Preferences `json:"preferences"`
}

// UpdateResult is the outcome of a preference update: either the
// updated user, or a guest flag indicating the backend persisted
// nothing and the client should fall back to its local cache.
type UpdateResult struct {
	User    *User `json:"user,omitempty"`
	IsGuest bool  `json:"isGuest"`
}

// Progress is the read-only progress summary for a user.
type Progress struct {
	UserID                 string  `json:"userId"`
	TotalLearningMinutes   int     `json:"totalLearningMinutes"`
	ConversationsCompleted int     `json:"conversationsCompleted"`
	CurrentStreak          int     `json:"currentStreak"`
	LongestStreak          int     `json:"longestStreak"`
	VocabularyLearned      int     `json:"vocabularyLearned"`
	LastActiveDate         string  `json:"lastActiveDate"`
	WeeklyGoalProgress     float64 `json:"weeklyGoalProgress"`
}
