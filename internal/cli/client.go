package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mcoot/tictactoe-go/internal/api/request"
	"github.com/mcoot/tictactoe-go/internal/api/response"
)

// Client talks to the game server's JSON API
type Client struct {
	baseURL    string
	httpClient *http.Client
	// trace, when set, gets one line per request
	trace io.Writer
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithTrace logs each request and its status to w
func (c *Client) WithTrace(w io.Writer) *Client {
	c.trace = w
	return c
}

// APIError is the error body the server sends with 4xx and 5xx responses
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorBody struct {
	Error APIError `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// CreateGame starts a game on the server
func (c *Client) CreateGame(ctx context.Context, req request.CreateGameRequest) (response.Game, error) {
	var game response.Game
	err := c.do(ctx, http.MethodPost, "/api/v1/games", req, &game)
	return game, err
}

// ListGames returns the IDs of the games the server knows about
func (c *Client) ListGames(ctx context.Context) (response.GameList, error) {
	var list response.GameList
	err := c.do(ctx, http.MethodGet, "/api/v1/games", nil, &list)
	return list, err
}

// GetGame fetches a game's current state
func (c *Client) GetGame(ctx context.Context, id string) (response.Game, error) {
	var game response.Game
	err := c.do(ctx, http.MethodGet, gamePath(id), nil, &game)
	return game, err
}

// Move plays the human's mark at index
func (c *Client) Move(ctx context.Context, id string, index int) (response.Game, error) {
	var game response.Game
	err := c.do(ctx, http.MethodPost, gamePath(id)+"/moves", request.MoveRequest{Index: &index}, &game)
	return game, err
}

// Restart clears the board and starts over
func (c *Client) Restart(ctx context.Context, id string) (response.Game, error) {
	var game response.Game
	err := c.do(ctx, http.MethodPost, gamePath(id)+"/restart", nil, &game)
	return game, err
}

// EndGame ends a game and discards it
func (c *Client) EndGame(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, gamePath(id), nil, nil)
}

// Health checks the server
func (c *Client) Health(ctx context.Context) (response.Health, error) {
	var health response.Health
	err := c.do(ctx, http.MethodGet, "/api/v1/health", nil, &health)
	return health, err
}

// do sends a JSON request and decodes the JSON reply into result.
// Error responses from the API come back as *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "tictactoe-cli")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if c.trace != nil {
		_, _ = fmt.Fprintf(c.trace, "%s %s -> %d (%s, request %s)\n",
			method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond), resp.Header.Get("X-Request-ID"))
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp errorBody
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error.Code != "" {
			return &errResp.Error
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}
