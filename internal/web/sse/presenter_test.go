package sse

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/tictactoe-go/internal/dependencies/mocks"
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/testutil"
)

const testSession = model.SessionID("SESSION00001")

func newWatchedPresenter(t *testing.T) (*SessionPresenter, *HubManager, *Client) {
	t.Helper()
	hubs := NewHubManager(testutil.NopLogger())
	clk := mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	p := NewSessionPresenter(testSession, hubs, NewRenderer(), clk, testutil.NopLogger())

	hub := hubs.GetOrCreateHub(testSession)
	client := NewClient()
	require.True(t, hub.Register(client))
	waitForClients(t, hub, 1)
	t.Cleanup(func() { hubs.RemoveHub(testSession) })
	return p, hubs, client
}

// parseFrame splits an SSE frame into its event name and joined data
func parseFrame(t *testing.T, frame string) (string, string) {
	t.Helper()
	var event string
	var data []string
	for _, line := range strings.Split(strings.TrimSuffix(frame, "\n\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = append(data, strings.TrimPrefix(line, "data: "))
		}
	}
	return event, strings.Join(data, "\n")
}

func TestSessionPresenter_Render(t *testing.T) {
	p, _, client := newWatchedPresenter(t)

	var cells model.Cells
	cells[0] = model.X
	cells[4] = model.O
	p.Render(cells, true)

	name, data := parseFrame(t, receive(t, client))
	assert.Equal(t, "render", name)

	var ev struct {
		Type      string              `json:"type"`
		SessionID string              `json:"session_id"`
		Payload   model.RenderPayload `json:"payload"`
	}
	require.NoError(t, json.Unmarshal([]byte(data), &ev))
	assert.Equal(t, "render", ev.Type)
	assert.Equal(t, string(testSession), ev.SessionID)
	assert.Equal(t, cells, ev.Payload.Board)
	assert.True(t, ev.Payload.Locked)

	name, html := parseFrame(t, receive(t, client))
	assert.Equal(t, EventBoardHTML, name)
	assert.Contains(t, html, `id="board"`)
	assert.Contains(t, html, ">X</button>")
	assert.Contains(t, html, ">O</button>")
	assert.Equal(t, 9, strings.Count(html, "disabled"))
}

func TestSessionPresenter_SetStatus(t *testing.T) {
	p, _, client := newWatchedPresenter(t)

	p.SetStatus("Ann wins!")

	name, data := parseFrame(t, receive(t, client))
	assert.Equal(t, "status", name)
	assert.Contains(t, data, `"text":"Ann wins!"`)

	name, html := parseFrame(t, receive(t, client))
	assert.Equal(t, EventStatusHTML, name)
	assert.Contains(t, html, `<p id="status" class="status">Ann wins!</p>`)
}

func TestSessionPresenter_StatusIsEscaped(t *testing.T) {
	p, _, client := newWatchedPresenter(t)

	p.SetStatus("<b>Bob</b> wins!")
	_ = receive(t, client)

	_, html := parseFrame(t, receive(t, client))
	assert.NotContains(t, html, "<b>")
	assert.Contains(t, html, "&lt;b&gt;Bob&lt;/b&gt; wins!")
}

func TestSessionPresenter_CloseEndsSession(t *testing.T) {
	p, hubs, client := newWatchedPresenter(t)

	p.Close()

	name, _ := parseFrame(t, receive(t, client))
	assert.Equal(t, "session_ended", name)
	assert.Nil(t, hubs.GetHub(testSession))
}

func TestSessionPresenter_NoHubIsNoop(t *testing.T) {
	hubs := NewHubManager(testutil.NopLogger())
	clk := mocks.NewMockClock(time.Now())
	p := NewSessionPresenter(testSession, hubs, NewRenderer(), clk, testutil.NopLogger())

	assert.NotPanics(t, func() {
		p.Render(model.Cells{}, false)
		p.SetStatus("Click Start.")
		p.Close()
	})
	assert.Equal(t, 0, hubs.Count())
}
