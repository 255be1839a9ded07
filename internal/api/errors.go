package api

import (
	"errors"
	"fmt"
)

// Failures that are surfaced immediately, never retried.
var (
	// ErrUnauthorized means the session endpoint answered without an access
	// token; the user is not signed in or the session expired.
	ErrUnauthorized = errors.New("unauthorized: no access token in session")

	// ErrBotCheck means the session endpoint is gated by an interstitial
	// bot check instead of returning JSON.
	ErrBotCheck = errors.New("blocked by bot check, please pass the Cloudflare challenge first")
)

// Fatal pipeline errors raised when the batch retry budget is exhausted.
var (
	ErrListConversations = errors.New("failed to list conversations, please retry")
	ErrGetConversations  = errors.New("failed to get conversations, please retry")
)

// StatusError wraps a non-2xx response from a data endpoint for diagnostics.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend API error: %s: %s", e.Status, e.Body)
}
