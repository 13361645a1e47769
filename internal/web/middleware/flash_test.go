package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/tictactoe-go/internal/web/templates/layout"
)

func TestParseFlash(t *testing.T) {
	tests := []struct {
		value    string
		expected layout.FlashMessage
	}{
		{"error:Game not found", layout.FlashMessage{Type: "error", Message: "Game not found"}},
		{"info:a:b", layout.FlashMessage{Type: "info", Message: "a:b"}},
		{"plain", layout.FlashMessage{Type: "info", Message: "plain"}},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.expected, *parseFlash(tt.value))
		})
	}
}

func TestFlash_ReadsAndClears(t *testing.T) {
	var got *layout.FlashMessage
	h := Flash()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetFlash(r.Context())
	}))

	set := httptest.NewRecorder()
	SetFlash(set, "error", "Game not found")
	cookies := set.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.NotNil(t, got)
	assert.Equal(t, "Game not found", got.Message)

	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Negative(t, cleared[0].MaxAge)
}

func TestFlash_NoCookie(t *testing.T) {
	called := false
	h := Flash()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Nil(t, GetFlash(r.Context()))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)
}
