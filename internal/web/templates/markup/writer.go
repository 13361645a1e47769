// Package markup is a small helper for building templ components in Go.
// Text and attribute values go through templ's escaping; everything else
// is trusted markup written by the component itself.
package markup

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Writer writes HTML and keeps the first error it hits. Once a write has
// failed every later call is a no-op.
type Writer struct {
	w   io.Writer
	err error
}

func New(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup as is
func (m *Writer) Raw(parts ...string) {
	for _, s := range parts {
		if m.err != nil {
			return
		}
		_, m.err = io.WriteString(m.w, s)
	}
}

// Text writes escaped text content
func (m *Writer) Text(s string) {
	m.Raw(templ.EscapeString(s))
}

// Attr writes ` name="value"` with the value escaped
func (m *Writer) Attr(name, value string) {
	m.Raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// Class writes a class attribute built with templ.Classes
func (m *Writer) Class(classes ...any) {
	m.Attr("class", templ.Classes(classes...).String())
}

// BoolAttr writes ` name` when on is true
func (m *Writer) BoolAttr(name string, on bool) {
	if on {
		m.Raw(" ", name)
	}
}

// Component renders a nested component into the same output
func (m *Writer) Component(ctx context.Context, c templ.Component) {
	if m.err != nil || c == nil {
		return
	}
	m.err = c.Render(ctx, m.w)
}

func (m *Writer) Err() error {
	return m.err
}

// Component builds a templ.Component from a function that writes markup
func Component(fn func(ctx context.Context, m *Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := New(w)
		fn(ctx, m)
		return m.Err()
	})
}

// String renders a component to a string
func String(ctx context.Context, c templ.Component) (string, error) {
	var b strings.Builder
	if err := c.Render(ctx, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}
