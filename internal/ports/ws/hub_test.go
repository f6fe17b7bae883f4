package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"rummy/internal/app"
)

func dial(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(hub.Handler())
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client was never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return c
}

func readMsg(t *testing.T, c *websocket.Conn) map[string]any {
	t.Helper()
	_ = c.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := c.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal %s: %v", data, err)
	}
	return out
}

func TestHubBroadcastsPublicEvents(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	c := dial(t, hub)

	hub.Publish("g1", []app.Event{
		{Kind: app.EventHandDealt, Payload: app.HandDealtPayload{UserID: "u1"}, Recipients: []string{"u1"}},
		{Kind: app.EventTileDiscarded, Payload: app.TileDiscardedPayload{UserID: "u1", Tile: "k05"}},
	})

	msg := readMsg(t, c)
	if msg["t"] != string(app.EventTileDiscarded) {
		t.Fatalf("type = %v, want %s", msg["t"], app.EventTileDiscarded)
	}
	p := msg["p"].(map[string]any)
	if p["gameId"] != "g1" {
		t.Fatalf("gameId = %v, want g1", p["gameId"])
	}
	ev := p["event"].(map[string]any)
	if ev["tile"] != "k05" || ev["user_id"] != "u1" {
		t.Fatalf("unexpected event payload: %v", ev)
	}
}

func TestHubAnswersPing(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	c := dial(t, hub)

	if err := c.WriteJSON(InMsg{T: "PING", ReqID: "r1"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	msg := readMsg(t, c)
	if msg["t"] != "PONG" || msg["reqId"] != "r1" {
		t.Fatalf("unexpected reply: %v", msg)
	}

	if err := c.WriteJSON(InMsg{T: "DANCE"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	msg = readMsg(t, c)
	if msg["t"] != "ERROR" {
		t.Fatalf("unexpected reply: %v", msg)
	}
}

func TestHubUnregistersOnClose(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	c := dial(t, hub)
	_ = c.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("client was never unregistered")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
