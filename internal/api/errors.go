package api

import (
	"fmt"
	"strings"
)

// StatusError indicates the backend answered with a non-2xx status.
// Every failure is terminal for that attempt; the client never retries.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("backend returned HTTP %d", e.Status)
	}
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("backend returned HTTP %d: %s", e.Status, body)
}
