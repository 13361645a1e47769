package web_test

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSSE_EndpointHeaders verifies the SSE endpoint returns correct headers
func TestSSE_EndpointHeaders(t *testing.T) {
	ts := newWebTestServer(t)
	path := ts.startGame("Ann", "easy")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, path+"/events", nil).WithContext(ctx)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, "text/event-stream", rr.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rr.Header().Get("Cache-Control"))
	assert.Equal(t, "keep-alive", rr.Header().Get("Connection"))
	assert.Equal(t, "no", rr.Header().Get("X-Accel-Buffering"))
}

// TestSSE_InitialEvents verifies a new stream gets the current status and board
func TestSSE_InitialEvents(t *testing.T) {
	ts := newWebTestServer(t)
	path := ts.startGame("Ann", "easy")
	ts.move(path, "4")

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, path+"/events", nil).WithContext(ctx)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	body := rr.Body.String()
	assert.Contains(t, body, "retry: 3000")
	assert.Contains(t, body, "event: connected")
	assert.Contains(t, body, "event: status\n")
	assert.Contains(t, body, `"text":"Bot's turn"`)
	assert.Contains(t, body, "event: status-html\n")
	assert.Contains(t, body, "event: render\n")
	assert.Contains(t, body, "event: board-html\n")
	assert.Contains(t, body, `data-index="4" disabled>X</button>`)
}

// TestSSE_UnknownGame verifies no stream is opened for a missing game
func TestSSE_UnknownGame(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/games/NOSUCHGAME00/events")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.NotEqual(t, "text/event-stream", rr.Header().Get("Content-Type"))
}

// readFrame reads one SSE frame and returns its event name and data lines
func readFrame(t *testing.T, reader *bufio.Reader) (string, string) {
	t.Helper()
	var event string
	var data []string
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimSuffix(line, "\n")
		if line == "" {
			if event == "" && len(data) == 0 {
				continue
			}
			return event, strings.Join(data, "\n")
		}
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = append(data, strings.TrimPrefix(line, "data: "))
		}
	}
}

// waitForEvent reads frames until one with the given name arrives
func waitForEvent(t *testing.T, reader *bufio.Reader, name string) string {
	t.Helper()
	for {
		event, data := readFrame(t, reader)
		if event == name {
			return data
		}
	}
}

// waitForData reads frames until one with the given name contains substr
func waitForData(t *testing.T, reader *bufio.Reader, name, substr string) string {
	t.Helper()
	for {
		if data := waitForEvent(t, reader, name); strings.Contains(data, substr) {
			return data
		}
	}
}

// TestSSE_BroadcastReceived follows a move and the bot's reply over a live stream
func TestSSE_BroadcastReceived(t *testing.T) {
	ts := newWebTestServer(t)
	path := ts.startGame("Ann", "easy")

	server := httptest.NewServer(ts.handler)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+path+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)

	// The stream opens with the current board
	initial := waitForEvent(t, reader, "board-html")
	assert.NotContains(t, initial, "disabled")

	moveReq, err := http.NewRequest(http.MethodPost, server.URL+path+"/move", strings.NewReader(url.Values{"index": {"4"}}.Encode()))
	require.NoError(t, err)
	moveReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	moveReq.Header.Set("HX-Request", "true")
	moveResp, err := http.DefaultClient.Do(moveReq)
	require.NoError(t, err)
	_ = moveResp.Body.Close()
	require.Equal(t, http.StatusNoContent, moveResp.StatusCode)

	afterMove := waitForEvent(t, reader, "board-html")
	assert.Contains(t, afterMove, `data-index="4" disabled>X</button>`)
	assert.Contains(t, waitForEvent(t, reader, "status"), "Bot's turn")

	ts.app.BotThinks()

	// Easy takes the first empty cell while the random queue is empty
	afterBot := waitForData(t, reader, "board-html", ">O</button>")
	assert.Contains(t, afterBot, `data-index="0" disabled>O</button>`)
	waitForData(t, reader, "status", "Ann's turn")
}

// TestSSE_EndClosesStream verifies ending a game tells watchers and closes the stream
func TestSSE_EndClosesStream(t *testing.T) {
	ts := newWebTestServer(t)
	path := ts.startGame("Ann", "easy")
	id := strings.TrimPrefix(path, "/games/")

	server := httptest.NewServer(ts.handler)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+path+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	reader := bufio.NewReader(resp.Body)
	waitForEvent(t, reader, "board-html")

	require.NoError(t, ts.app.Sessions.End(context.Background(), ts.sessionID(id)))

	waitForEvent(t, reader, "session_ended")
}
