package pages

import (
	"context"

	"github.com/a-h/templ"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/web/templates/components"
	"github.com/mcoot/tictactoe-go/internal/web/templates/layout"
	"github.com/mcoot/tictactoe-go/internal/web/templates/markup"
)

// GameData is the data for a game page
type GameData struct {
	layout.PageData
	State model.GameState
	Board components.BoardView
}

// Game shows the board and follows the session's event stream. The status
// line and board are swapped in place by the htmx SSE extension.
func Game(data GameData) templ.Component {
	s := data.State
	base := "/games/" + string(s.SessionID)

	return layout.Base(data.PageData, markup.Component(func(ctx context.Context, m *markup.Writer) {
		m.Raw(`<section id="game" hx-ext="sse"`)
		m.Attr("sse-connect", base+"/events")
		m.Raw(`><div id="status-slot" sse-swap="status-html">`)
		m.Component(ctx, components.Status(s.Status))
		m.Raw(`</div><p class="players">`)
		m.Text(s.Human.Name + " (X) vs " + s.Computer.Name + " (O), " + s.Difficulty.DisplayName())
		m.Raw(`</p><div id="board-slot" sse-swap="board-html">`)
		m.Component(ctx, components.Board(data.Board))
		m.Raw(`</div><form method="post"`)
		m.Attr("action", base+"/restart")
		m.Raw(`><button type="submit" id="restart-button">Restart</button></form></section>`)
	}))
}
