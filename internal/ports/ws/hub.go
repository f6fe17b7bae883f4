package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"rummy/internal/app"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 120 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 64
)

// InMsg is a client message.
type InMsg struct {
	T     string          `json:"t"`
	ReqID string          `json:"reqId,omitempty"`
	P     json.RawMessage `json:"p,omitempty"`
}

// OutMsg is a server message.
type OutMsg struct {
	T     string `json:"t"`
	ReqID string `json:"reqId,omitempty"`
	P     any    `json:"p,omitempty"`
}

type ErrPayload struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

// EventPayload wraps a game event for spectators.
type EventPayload struct {
	GameID string `json:"gameId"`
	Event  any    `json:"event"`
}

type conn struct {
	ws   *websocket.Conn
	send chan []byte
}

// Hub streams public game events to every connected spectator.
type Hub struct {
	upgrader websocket.Upgrader
	log      zerolog.Logger

	mu    sync.Mutex
	conns map[*conn]struct{}
}

// NewHub creates an empty hub.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log:   log,
		conns: make(map[*conn]struct{}),
	}
}

// Handler serves /ws for spectators and /health for probes.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/ws", h.ServeHTTP)
	return mux
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// ServeHTTP upgrades the request and registers the connection.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	c := &conn{ws: wsConn, send: make(chan []byte, sendBuffer)}
	h.register(c)
	go h.writePump(c)
	h.readPump(c)
}

// ClientCount returns the number of connected spectators.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Publish broadcasts the public events of a game. Events with recipients are
// private to players and are not streamed.
func (h *Hub) Publish(gameID string, events []app.Event) {
	for _, ev := range events {
		if len(ev.Recipients) > 0 {
			continue
		}
		h.broadcast(OutMsg{T: string(ev.Kind), P: EventPayload{GameID: gameID, Event: ev.Payload}})
	}
}

// Close disconnects every spectator.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		close(c.send)
		delete(h.conns, c)
	}
}

func (h *Hub) register(c *conn) {
	h.mu.Lock()
	h.conns[c] = struct{}{}
	h.mu.Unlock()
	h.log.Debug().Int("clients", h.ClientCount()).Msg("spectator connected")
}

func (h *Hub) unregister(c *conn) {
	h.mu.Lock()
	if _, ok := h.conns[c]; ok {
		delete(h.conns, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) broadcast(out OutMsg) {
	b, err := json.Marshal(out)
	if err != nil {
		h.log.Error().Err(err).Str("type", out.T).Msg("marshal event")
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		select {
		case c.send <- b:
		default:
			// Slow spectators miss events rather than stall the game.
		}
	}
}

func (h *Hub) readPump(c *conn) {
	defer func() {
		h.unregister(c)
		_ = c.ws.Close()
	}()

	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			h.log.Debug().Err(err).Msg("ws read ended")
			return
		}

		var in InMsg
		if err := json.Unmarshal(data, &in); err != nil {
			h.send(c, OutMsg{T: "ERROR", P: ErrPayload{Code: "BAD_JSON", Msg: "invalid json"}})
			continue
		}

		switch in.T {
		case "PING":
			h.send(c, OutMsg{T: "PONG", ReqID: in.ReqID})
		default:
			h.send(c, OutMsg{T: "ERROR", ReqID: in.ReqID, P: ErrPayload{Code: "UNKNOWN_TYPE", Msg: "unknown message type: " + in.T}})
		}
	}
}

func (h *Hub) writePump(c *conn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) send(c *conn, out OutMsg) {
	b, err := json.Marshal(out)
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[c]; !ok {
		return
	}
	select {
	case c.send <- b:
	default:
	}
}
