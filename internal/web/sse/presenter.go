package sse

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mcoot/tictactoe-go/internal/dependencies/clock"
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/game"
)

// SSE event names sent to browsers and API clients
const (
	EventBoardHTML  = "board-html"
	EventStatusHTML = "status-html"
)

// SessionPresenter pushes one session's controller output to its SSE hub.
// Each call is sent twice: as a JSON model.Event and as an HTML fragment.
// Nothing is sent while nobody is watching.
type SessionPresenter struct {
	sessionID model.SessionID
	hubs      *HubManager
	renderer  *Renderer
	clock     clock.Clock
	logger    *slog.Logger
}

var _ game.Presenter = (*SessionPresenter)(nil)

// NewSessionPresenter creates a presenter for a session
func NewSessionPresenter(sessionID model.SessionID, hubs *HubManager, renderer *Renderer, clk clock.Clock, logger *slog.Logger) *SessionPresenter {
	return &SessionPresenter{
		sessionID: sessionID,
		hubs:      hubs,
		renderer:  renderer,
		clock:     clk,
		logger: logger.With(
			slog.String("component", "sse-presenter"),
			slog.String("session_id", string(sessionID)),
		),
	}
}

// Render sends the board
func (p *SessionPresenter) Render(cells model.Cells, locked bool) {
	hub := p.hubs.GetHub(p.sessionID)
	if hub == nil {
		return
	}
	p.sendEvent(hub, model.EventRender, model.RenderPayload{Board: cells, Locked: locked})

	html, err := p.renderer.RenderBoard(context.Background(), p.sessionID, cells, locked)
	if err != nil {
		p.logger.Error("sse failed to render board", slog.Any("error", err))
		return
	}
	hub.BroadcastEvent(EventBoardHTML, html)
}

// SetStatus sends the status line
func (p *SessionPresenter) SetStatus(text string) {
	hub := p.hubs.GetHub(p.sessionID)
	if hub == nil {
		return
	}
	p.sendEvent(hub, model.EventStatus, model.StatusPayload{Text: text})

	html, err := p.renderer.RenderStatus(context.Background(), text)
	if err != nil {
		p.logger.Error("sse failed to render status", slog.Any("error", err))
		return
	}
	hub.BroadcastEvent(EventStatusHTML, html)
}

// Close tells watchers the session is gone and drops its hub
func (p *SessionPresenter) Close() {
	hub := p.hubs.GetHub(p.sessionID)
	if hub == nil {
		return
	}
	p.sendEvent(hub, model.EventEnded, nil)
	p.hubs.RemoveHub(p.sessionID)
}

func (p *SessionPresenter) sendEvent(hub *Hub, eventType model.EventType, payload any) {
	data, err := json.Marshal(model.Event{
		Type:      eventType,
		Timestamp: p.clock.Now(),
		SessionID: p.sessionID,
		Payload:   payload,
	})
	if err != nil {
		p.logger.Error("sse failed to encode event",
			slog.String("event", string(eventType)),
			slog.Any("error", err))
		return
	}
	hub.BroadcastEvent(string(eventType), string(data))
}
