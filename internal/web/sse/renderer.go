package sse

import (
	"context"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/web/templates/components"
	"github.com/mcoot/tictactoe-go/internal/web/templates/markup"
)

// Renderer turns presenter calls into HTML fragments for htmx
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderBoard renders the board component, the same fragment the game page
// embeds
func (r *Renderer) RenderBoard(ctx context.Context, id model.SessionID, cells model.Cells, locked bool) (string, error) {
	return markup.String(ctx, components.Board(components.NewBoardView(id, cells, locked)))
}

// RenderStatus renders the status line component
func (r *Renderer) RenderStatus(ctx context.Context, text string) (string, error) {
	return markup.String(ctx, components.Status(text))
}
