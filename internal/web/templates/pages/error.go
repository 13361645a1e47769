package pages

import (
	"context"

	"github.com/a-h/templ"

	"github.com/mcoot/tictactoe-go/internal/web/templates/layout"
	"github.com/mcoot/tictactoe-go/internal/web/templates/markup"
)

// ErrorData is the data for the error page
type ErrorData struct {
	layout.PageData
	Heading   string
	Message   string
	RequestID string
}

// Error is shown when a page cannot be served
func Error(data ErrorData) templ.Component {
	return layout.Base(data.PageData, markup.Component(func(_ context.Context, m *markup.Writer) {
		m.Raw(`<section id="error"><h2>`)
		m.Text(data.Heading)
		m.Raw(`</h2><p>`)
		m.Text(data.Message)
		m.Raw(`</p>`)
		if data.RequestID != "" {
			m.Raw(`<p class="request-id">Reference: `)
			m.Text(data.RequestID)
			m.Raw(`</p>`)
		}
		m.Raw(`<p><a href="/">Return to home</a></p></section>`)
	}))
}
