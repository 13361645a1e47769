package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/tictactoe-go/internal/model"
)

func newEventsCmd() *cobra.Command {
	var opts eventOptions

	cmd := &cobra.Command{
		Use:   "events <id>",
		Short: "Stream live events from a game",
		Long: `Connect to the game's SSE endpoint and stream events in real-time.

Events include:
  - render: The board changed
  - status: The status line changed
  - session_ended: The game was ended
  - connected: Stream opened

HTML fragments sent for browsers are skipped unless --html is given.

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return streamEvents(ctx, cmd.OutOrStdout(), cfg.ServerURL, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output events as JSON lines")
	cmd.Flags().BoolVar(&opts.includeHTML, "html", false, "Include HTML fragment events")

	return cmd
}

type eventOptions struct {
	jsonOutput  bool
	includeHTML bool
}

// SSEEvent represents a parsed SSE event
type SSEEvent struct {
	Time  time.Time `json:"time"`
	Event string    `json:"event"`
	Data  string    `json:"data"`
}

func streamEvents(ctx context.Context, out io.Writer, serverURL, id string, opts eventOptions) error {
	url := strings.TrimSuffix(serverURL, "/") + gamePath(id) + "/events"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	// No timeout: the stream stays open until the game ends or we disconnect
	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if !opts.jsonOutput {
		_, _ = fmt.Fprintf(out, "Connected to game %s\n", id)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var currentEvent string
	var dataLines []string

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "event: "):
			currentEvent = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			dataLines = append(dataLines, strings.TrimPrefix(line, "data: "))
		case line == "":
			if currentEvent != "" && (opts.includeHTML || !isHTMLEvent(currentEvent)) {
				printEvent(out, currentEvent, strings.Join(dataLines, "\n"), opts.jsonOutput)
			}
			currentEvent = ""
			dataLines = nil
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stream error: %w", err)
	}

	if !opts.jsonOutput {
		_, _ = fmt.Fprintln(out, "Disconnected")
	}
	return nil
}

func isHTMLEvent(event string) bool {
	return strings.HasSuffix(event, "-html")
}

func printEvent(out io.Writer, event, data string, jsonOutput bool) {
	now := time.Now()

	if jsonOutput {
		jsonData, _ := json.Marshal(SSEEvent{Time: now, Event: event, Data: data})
		_, _ = fmt.Fprintln(out, string(jsonData))
		return
	}

	timestamp := now.Format("2006-01-02 15:04:05")
	switch model.EventType(event) {
	case model.EventRender:
		var evt struct {
			Payload model.RenderPayload `json:"payload"`
		}
		if err := json.Unmarshal([]byte(data), &evt); err == nil {
			_, _ = fmt.Fprintf(out, "[%s] board:\n%s", timestamp, FormatBoard(evt.Payload.Board))
			return
		}
	case model.EventStatus:
		var evt struct {
			Payload model.StatusPayload `json:"payload"`
		}
		if err := json.Unmarshal([]byte(data), &evt); err == nil {
			_, _ = fmt.Fprintf(out, "[%s] status: %s\n", timestamp, evt.Payload.Text)
			return
		}
	}

	displayData := data
	if len(displayData) > 100 {
		displayData = displayData[:100] + "..."
	}
	displayData = strings.ReplaceAll(displayData, "\n", " ")
	_, _ = fmt.Fprintf(out, "[%s] %s: %s\n", timestamp, event, displayData)
}
