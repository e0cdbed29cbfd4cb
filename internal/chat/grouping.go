package chat

import (
	"sort"
	"strings"

	"github.com/nsharma/lingua/internal/api"
)

// SessionGroup is one past conversation: all messages sharing a
// session id, in chronological order.
type SessionGroup struct {
	SessionID string
	Messages  []api.StoredMessage
}

// GroupBySession groups stored messages by session id and sorts each
// group chronologically. Groups are ordered by their earliest message,
// newest session first.
func GroupBySession(messages []api.StoredMessage) []SessionGroup {
	byID := make(map[string][]api.StoredMessage)
	for _, m := range messages {
		byID[m.SessionID] = append(byID[m.SessionID], m)
	}

	groups := make([]SessionGroup, 0, len(byID))
	for id, msgs := range byID {
		sort.SliceStable(msgs, func(i, j int) bool {
			return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
		})
		groups = append(groups, SessionGroup{SessionID: id, Messages: msgs})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Messages[0].CreatedAt.After(groups[j].Messages[0].CreatedAt)
	})
	return groups
}

// DisplayID shortens a session id for listing, trimming the
// "text_<user>_" prefix the backend prepends.
func DisplayID(sessionID string) string {
	if rest, ok := strings.CutPrefix(sessionID, "text_"); ok {
		if _, id, ok := strings.Cut(rest, "_"); ok {
			return id
		}
	}
	return sessionID
}
