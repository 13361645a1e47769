// Package layout holds the page shell shared by every page.
package layout

import (
	"context"

	"github.com/a-h/templ"

	"github.com/mcoot/tictactoe-go/internal/web/templates/markup"
)

const siteName = "Tic-Tac-Toe"

// FlashMessage is a one-off notice carried across a redirect
type FlashMessage struct {
	Type    string // "error", "info"
	Message string
}

// PageData is common to all pages
type PageData struct {
	Title string
	Flash *FlashMessage
}

const styles = `.board { display: grid; grid-template-columns: repeat(3, 4rem); gap: 0.25rem; }
.cell { width: 4rem; height: 4rem; font-size: 2rem; }
.board.locked .cell { cursor: not-allowed; }
.cell.win { background: #ffe08a; }
.flash-error { color: #b00020; }`

// Base wraps content in the document shell
func Base(data PageData, content templ.Component) templ.Component {
	return markup.Component(func(ctx context.Context, m *markup.Writer) {
		title := siteName
		if data.Title != "" {
			title = data.Title + " - " + siteName
		}

		m.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
		m.Text(title)
		m.Raw(`</title>`,
			`<script src="https://unpkg.com/htmx.org@2.0.4"></script>`,
			`<script src="https://unpkg.com/htmx-ext-sse@2.2.2/sse.js"></script>`,
			`<style>`, styles, `</style></head><body><main>`,
			`<h1><a href="/">`, siteName, `</a></h1>`)
		m.Component(ctx, Flash(data.Flash))
		m.Component(ctx, content)
		m.Raw(`</main></body></html>`)
	})
}

// Flash renders a flash message, or nothing
func Flash(flash *FlashMessage) templ.Component {
	if flash == nil {
		return templ.NopComponent
	}
	return markup.Component(func(_ context.Context, m *markup.Writer) {
		m.Raw(`<p`)
		m.Class("flash", "flash-"+flash.Type)
		m.Raw(`>`)
		m.Text(flash.Message)
		m.Raw(`</p>`)
	})
}
