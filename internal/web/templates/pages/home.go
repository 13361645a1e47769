// Package pages holds the full pages of the web UI.
package pages

import (
	"context"

	"github.com/a-h/templ"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/web/templates/layout"
	"github.com/mcoot/tictactoe-go/internal/web/templates/markup"
)

// HomeData is the data for the start page
type HomeData struct {
	layout.PageData
	DefaultName  string
	Difficulties []model.Difficulty
	Selected     model.Difficulty
	Name         string
	Error        string
}

// Home is the start form
func Home(data HomeData) templ.Component {
	return layout.Base(data.PageData, markup.Component(func(_ context.Context, m *markup.Writer) {
		m.Raw(`<section id="start">`)
		if data.Error != "" {
			m.Raw(`<p class="error">`)
			m.Text(data.Error)
			m.Raw(`</p>`)
		}
		m.Raw(`<form method="post" action="/games"><label>Name <input type="text" name="player_name"`)
		m.Attr("value", data.Name)
		m.Attr("placeholder", data.DefaultName)
		m.Raw(` maxlength="32"></label><label>Difficulty <select name="difficulty">`)
		for _, d := range data.Difficulties {
			m.Raw(`<option`)
			m.Attr("value", string(d))
			m.BoolAttr("selected", d == data.Selected)
			m.Raw(`>`)
			m.Text(d.DisplayName())
			m.Raw(`</option>`)
		}
		m.Raw(`</select></label><button type="submit" id="start-button">Start</button></form></section>`)
	}))
}
