// Package components holds the page fragments that are also pushed over SSE.
package components

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/rules"
	"github.com/mcoot/tictactoe-go/internal/web/templates/markup"
)

// CellView is one board cell as drawn
type CellView struct {
	Index    int
	Mark     string
	Disabled bool
	Winning  bool
}

// BoardView is the data for the board fragment
type BoardView struct {
	SessionID model.SessionID
	Cells     []CellView
	Locked    bool
}

// NewBoardView builds a BoardView. A cell is clickable only if it is empty
// and the board is not locked.
func NewBoardView(id model.SessionID, cells model.Cells, locked bool) BoardView {
	view := BoardView{SessionID: id, Locked: locked, Cells: make([]CellView, len(cells))}
	for i, m := range cells {
		view.Cells[i] = CellView{
			Index:    i,
			Mark:     m.String(),
			Disabled: locked || m != model.Empty,
		}
	}
	if line, ok := rules.WinningLine(cells); ok {
		for _, i := range line {
			view.Cells[i].Winning = true
		}
	}
	return view
}

// Board draws the grid. Each cell is its own form so the page works
// without JavaScript; htmx turns the posts into background requests.
func Board(view BoardView) templ.Component {
	return markup.Component(func(_ context.Context, m *markup.Writer) {
		action := "/games/" + string(view.SessionID) + "/move"

		m.Raw(`<div id="board"`)
		m.Class("board", templ.KV("locked", view.Locked))
		m.Attr("data-session", string(view.SessionID))
		m.Raw(`>`)
		for _, c := range view.Cells {
			index := strconv.Itoa(c.Index)
			m.Raw(`<form method="post"`)
			m.Attr("action", action)
			m.Attr("hx-post", action)
			m.Raw(` hx-swap="none"><input type="hidden" name="index"`)
			m.Attr("value", index)
			m.Raw(`><button type="submit"`)
			m.Class("cell", templ.KV("win", c.Winning))
			m.Attr("data-index", index)
			m.BoolAttr("disabled", c.Disabled)
			m.Raw(`>`)
			m.Text(c.Mark)
			m.Raw(`</button></form>`)
		}
		m.Raw(`</div>`)
	})
}
