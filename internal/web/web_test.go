package web_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/tictactoe-go/internal/factory"
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/testutil"
	"github.com/mcoot/tictactoe-go/internal/web"
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
	cookies *cookieJar
	games   int
}

// newWebTestServer wires the router to a test app with a mock clock, so
// bot moves only happen when the test calls app.BotThinks
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	app := factory.NewTestApp()
	t.Cleanup(func() { _ = app.Close() })

	router := web.NewRouter(web.RouterConfig{
		Logger:     testutil.NopLogger(),
		Sessions:   app.Sessions,
		HubManager: app.HubManager,
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
		cookies: newCookieJar(),
	}
}

// request makes an HTTP request and returns the response
func (ts *webTestServer) request(method, path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}

	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	ts.cookies.extract(rr)

	return rr
}

// get makes a GET request
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil, false)
}

// post makes a POST request with form data (non-HTMX)
func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form, false)
}

// postHTMX makes a POST request with form data as an HTMX request
func (ts *webTestServer) postHTMX(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form, true)
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{
		cookies: make(map[string]*http.Cookie),
	}
}

// addTo adds all cookies to the request
func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

// extract extracts Set-Cookie headers from response
func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

// startGame creates a game through the home form and returns its page path.
// Each game gets the next ID in sequence.
func (ts *webTestServer) startGame(name, difficulty string) string {
	ts.t.Helper()
	ts.games++
	return ts.startGameWithID(fmt.Sprintf("WEB%09d", ts.games), name, difficulty)
}

// startGameWithID is startGame with a chosen session ID
func (ts *webTestServer) startGameWithID(id, name, difficulty string) string {
	ts.t.Helper()
	ts.app.MockRandom.QueueString(id)
	form := url.Values{"player_name": {name}, "difficulty": {difficulty}}
	rr := ts.post("/games", form)
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after starting a game")

	location := rr.Header().Get("Location")
	require.True(ts.t, strings.HasPrefix(location, "/games/"), "Expected redirect to game page, got %s", location)
	return location
}

// move plays a cell with a plain form post
func (ts *webTestServer) move(gamePath string, index string) *httptest.ResponseRecorder {
	ts.t.Helper()
	return ts.post(gamePath+"/move", url.Values{"index": {index}})
}

// page fetches and parses a game page
func (ts *webTestServer) page(gamePath string) *goquery.Document {
	ts.t.Helper()
	rr := ts.get(gamePath)
	require.Equal(ts.t, http.StatusOK, rr.Code)
	return parseHTML(rr.Body)
}

// cell finds the button for one board cell
func cell(doc *goquery.Document, index string) *goquery.Selection {
	return doc.Find(`#board button[data-index="` + index + `"]`)
}

// sessionID converts a path segment to a session ID
func (ts *webTestServer) sessionID(id string) model.SessionID {
	return model.SessionID(id)
}
