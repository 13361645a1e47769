package sse

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	// Time between keepalive pings
	pingPeriod = 30 * time.Second

	// Buffer size for outgoing messages
	sendBufferSize = 64

	// Browser reconnect delay after a dropped stream
	retryMillis = "3000"
)

// Client represents a connected SSE client
type Client struct {
	id          string
	send        chan []byte
	connectedAt time.Time
}

// NewClient creates a new SSE client with a random ID
func NewClient() *Client {
	return &Client{
		id:          uuid.NewString(),
		send:        make(chan []byte, sendBufferSize),
		connectedAt: time.Now(),
	}
}

// ID returns the client's connection ID
func (c *Client) ID() string {
	return c.id
}

// ServeSSE streams hub messages to one client until it disconnects or the
// hub closes. onConnect, if set, runs once the client is registered so the
// caller can push the current state.
func ServeSSE(w http.ResponseWriter, r *http.Request, hub *Hub, onConnect func()) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	client := NewClient()
	if !hub.Register(client) {
		http.Error(w, "Session has ended", http.StatusGone)
		return
	}
	defer hub.Unregister(client)

	_, _ = w.Write([]byte("retry: " + retryMillis + "\n\n"))
	_, _ = w.Write([]byte("event: connected\ndata: {\"client_id\":\"" + client.id + "\"}\n\n"))
	flusher.Flush()

	if onConnect != nil {
		onConnect()
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-client.send:
			if !ok {
				return
			}
			if _, err := w.Write(message); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
