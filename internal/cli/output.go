package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mcoot/tictactoe-go/internal/api/response"
	"github.com/mcoot/tictactoe-go/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == OutputJSON {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == OutputJSON {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Game:
		o.printGame(v)
	case response.GameList:
		if len(v.Games) == 0 {
			_, _ = fmt.Fprintln(o.w, "No games in progress")
			return
		}
		for _, id := range v.Games {
			_, _ = fmt.Fprintln(o.w, id)
		}
	case response.Health:
		_, _ = fmt.Fprintf(o.w, "Status: %s\nSessions: %d\n", v.Status, v.Sessions)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printGame(g response.Game) {
	_, _ = fmt.Fprintf(o.w, "Game: %s\n", g.ID)
	_, _ = fmt.Fprintf(o.w, "%s (%s) vs %s (%s), %s\n",
		g.Human.Name, g.Human.Mark, g.Computer.Name, g.Computer.Mark, g.Difficulty)
	_, _ = fmt.Fprintln(o.w)
	var cells model.Cells
	for i, s := range g.Board {
		_ = cells[i].UnmarshalText([]byte(s))
	}
	_, _ = fmt.Fprint(o.w, FormatBoard(cells))
	_, _ = fmt.Fprintln(o.w)
	_, _ = fmt.Fprintf(o.w, "Status: %s\n", g.Status)
}

// FormatBoard draws a board as a 3x3 grid. Empty cells show their index so
// the player knows what to type.
func FormatBoard(cells model.Cells) string {
	var b strings.Builder
	for row := 0; row < 3; row++ {
		if row > 0 {
			b.WriteString("---+---+---\n")
		}
		for col := 0; col < 3; col++ {
			i := row*3 + col
			if col > 0 {
				b.WriteString("|")
			}
			label := cells[i].String()
			if label == "" {
				label = strconv.Itoa(i)
			}
			b.WriteString(" " + label + " ")
		}
		b.WriteString("\n")
	}
	return b.String()
}
