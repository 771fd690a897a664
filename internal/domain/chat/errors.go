package chat

import "errors"

var (
	// ErrSessionNotFound is returned when a chat session is not found
	ErrSessionNotFound = errors.New("chat session not found")
)
