package components

import (
	"context"

	"github.com/a-h/templ"

	"github.com/mcoot/tictactoe-go/internal/web/templates/markup"
)

// Status is the one-line game status
func Status(text string) templ.Component {
	return markup.Component(func(_ context.Context, m *markup.Writer) {
		m.Raw(`<p id="status" class="status">`)
		m.Text(text)
		m.Raw(`</p>`)
	})
}
