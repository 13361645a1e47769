package model

import "time"

// EventType identifies the type of event pushed to viewers
type EventType string

const (
	EventRender EventType = "render"
	EventStatus EventType = "status"
	EventEnded  EventType = "session_ended"
)

// Event is a presentation update for one session
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	SessionID SessionID `json:"session_id"`
	Payload   any       `json:"payload,omitempty"` // Type-specific data
}

// RenderPayload carries the board to draw
type RenderPayload struct {
	Board  Cells `json:"board"`
	Locked bool  `json:"locked"`
}

// StatusPayload carries the status line text
type StatusPayload struct {
	Text string `json:"text"`
}
