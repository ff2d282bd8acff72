// Package topics holds the event bus topic names used across the application.
package topics

const (
	// MessageCreated is published after the store accepts a new guestbook
	// message. The payload is the stored record as JSON.
	MessageCreated = "guestbook.message.created"
)
