package sse

import (
	"testing"
	"time"

	"github.com/mcoot/tictactoe-go/internal/testutil"
)

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "status",
			data:      `{"text":"Your turn, Ann."}`,
			expected:  "event: status\ndata: {\"text\":\"Your turn, Ann.\"}\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "board-html",
			data:      "<div id=\"board\">\n  <button>X</button>\n</div>",
			expected:  "event: board-html\ndata: <div id=\"board\">\ndata:   <button>X</button>\ndata: </div>\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "data with carriage returns",
			eventName: "test",
			data:      "line1\r\nline2",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatSSEMessage(tt.eventName, tt.data)
			if string(result) != tt.expected {
				t.Errorf("formatSSEMessage(%q, %q)\ngot:  %q\nwant: %q",
					tt.eventName, tt.data, string(result), tt.expected)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "single line", input: "hello", expected: []string{"hello"}},
		{name: "two lines", input: "line1\nline2", expected: []string{"line1", "line2"}},
		{name: "trailing newline", input: "line1\n", expected: []string{"line1"}},
		{name: "empty string", input: "", expected: []string{""}},
		{name: "crlf line endings", input: "line1\r\nline2\r\n", expected: []string{"line1", "line2"}},
		{name: "blank line kept", input: "a\n\nb", expected: []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitLines(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("splitLines(%q) returned %d lines, want %d",
					tt.input, len(result), len(tt.expected))
			}
			for i, line := range result {
				if line != tt.expected[i] {
					t.Errorf("splitLines(%q)[%d] = %q, want %q",
						tt.input, i, line, tt.expected[i])
				}
			}
		})
	}
}

// waitForClients polls until the hub has processed registrations
func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for hub.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("ClientCount() = %d, want %d", hub.ClientCount(), want)
		}
		time.Sleep(time.Millisecond)
	}
}

func receive(t *testing.T, client *Client) string {
	t.Helper()
	select {
	case msg, ok := <-client.send:
		if !ok {
			t.Fatal("client channel closed")
		}
		return string(msg)
	case <-time.After(time.Second):
		t.Fatal("client did not receive message")
		return ""
	}
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := NewHub("SESSION00001", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient()
	if !hub.Register(client) {
		t.Fatal("Register returned false on a running hub")
	}
	waitForClients(t, hub, 1)

	hub.BroadcastEvent("test-event", "test data")

	if got := receive(t, client); got != "event: test-event\ndata: test data\n\n" {
		t.Errorf("client received %q", got)
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub("SESSION00001", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient()
	hub.Register(client)
	waitForClients(t, hub, 1)

	hub.Unregister(client)
	waitForClients(t, hub, 0)

	if _, ok := <-client.send; ok {
		t.Error("client channel should be closed after unregister")
	}
}

func TestHub_BroadcastToMultipleClients(t *testing.T) {
	hub := NewHub("SESSION00001", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	clients := []*Client{NewClient(), NewClient(), NewClient()}
	for _, c := range clients {
		hub.Register(c)
	}
	waitForClients(t, hub, 3)

	hub.BroadcastEvent("update", "data")

	for i, c := range clients {
		if got := receive(t, c); got != "event: update\ndata: data\n\n" {
			t.Errorf("client %d received %q", i+1, got)
		}
	}
}

func TestHub_CloseFlushesQueuedMessages(t *testing.T) {
	hub := NewHub("SESSION00001", testutil.NopLogger())
	go hub.Run()

	client := NewClient()
	hub.Register(client)
	waitForClients(t, hub, 1)

	hub.BroadcastEvent("session_ended", "{}")
	hub.Close()
	hub.Close()

	if got := receive(t, client); got != "event: session_ended\ndata: {}\n\n" {
		t.Errorf("client received %q", got)
	}
	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("expected channel to be closed after the final message")
		}
	case <-time.After(time.Second):
		t.Error("client channel was not closed")
	}
}

func TestHub_RegisterAfterClose(t *testing.T) {
	hub := NewHub("SESSION00001", testutil.NopLogger())
	go hub.Run()
	hub.Close()
	<-hub.Done()

	if hub.Register(NewClient()) {
		t.Error("Register should fail on a closed hub")
	}
	// Must not block
	hub.Unregister(NewClient())
}

func TestClient_IDsAreUnique(t *testing.T) {
	a, b := NewClient(), NewClient()
	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("client IDs %q and %q should be distinct and non-empty", a.ID(), b.ID())
	}
}

func TestHubManager_GetOrCreateHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	hub1 := manager.GetOrCreateHub("ABC123")
	if hub1 == nil {
		t.Fatal("GetOrCreateHub returned nil")
	}

	if hub2 := manager.GetOrCreateHub("ABC123"); hub1 != hub2 {
		t.Error("GetOrCreateHub returned different hub for same session")
	}

	if hub3 := manager.GetOrCreateHub("XYZ789"); hub3 == hub1 {
		t.Error("GetOrCreateHub returned same hub for different session")
	}

	if manager.Count() != 2 {
		t.Errorf("Count() = %d, want 2", manager.Count())
	}

	manager.RemoveHub("ABC123")
	manager.RemoveHub("XYZ789")
}

func TestHubManager_GetHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	if hub := manager.GetHub("NOTEXIST"); hub != nil {
		t.Error("GetHub returned non-nil for non-existent hub")
	}

	created := manager.GetOrCreateHub("ABC123")
	if got := manager.GetHub("ABC123"); got != created {
		t.Error("GetHub returned different hub than GetOrCreateHub")
	}

	manager.RemoveHub("ABC123")
}

func TestHubManager_RemoveHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	hub := manager.GetOrCreateHub("ABC123")
	manager.RemoveHub("ABC123")

	if manager.GetHub("ABC123") != nil {
		t.Error("Hub still exists after RemoveHub")
	}
	select {
	case <-hub.Done():
	case <-time.After(time.Second):
		t.Error("removed hub was not closed")
	}

	// Removing non-existent hub should not panic
	manager.RemoveHub("NOTEXIST")
}

func TestHubManager_CleanupEmptyHubs(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	manager.GetOrCreateHub("EMPTY")
	active := manager.GetOrCreateHub("ACTIVE")
	active.Register(NewClient())
	waitForClients(t, active, 1)

	if removed := manager.CleanupEmptyHubs(); removed != 1 {
		t.Errorf("CleanupEmptyHubs() = %d, want 1", removed)
	}

	if manager.GetHub("EMPTY") != nil {
		t.Error("Empty hub still exists after cleanup")
	}
	if manager.GetHub("ACTIVE") == nil {
		t.Error("Active hub was removed during cleanup")
	}

	manager.RemoveHub("ACTIVE")
}
