package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"MarketLens/internal/metrics"
)

func newTestHub() *Hub {
	return NewHub(zap.NewNop(), metrics.New())
}

func (h *Hub) clientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func waitForClients(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.clientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, have %d", want, h.clientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func dialHub(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func TestHub_BroadcastReachesClient(t *testing.T) {
	hub := newTestHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer srv.Close()

	conn := dialHub(t, srv)
	defer conn.Close()
	waitForClients(t, hub, 1)

	hub.Broadcast(map[string]string{"type": "watchlist_scan"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read broadcast: %v", err)
	}
	var msg map[string]string
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg["type"] != "watchlist_scan" {
		t.Errorf("unexpected payload: %v", msg)
	}
}

func TestHub_SlowClientIsDropped(t *testing.T) {
	hub := newTestHub()

	// Register a client whose send channel can never accept a message and
	// that has no write pump draining it.
	serverConns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		serverConns <- conn
	}))
	defer srv.Close()

	clientSide := dialHub(t, srv)
	defer clientSide.Close()
	serverSide := <-serverConns

	stuck := &wsClient{conn: serverSide, send: make(chan []byte)}
	hub.mu.Lock()
	hub.clients[stuck] = struct{}{}
	hub.mu.Unlock()

	hub.Broadcast(map[string]string{"type": "watchlist_scan"})

	if n := hub.clientCount(); n != 0 {
		t.Errorf("slow client should be dropped, %d clients remain", n)
	}
}

func TestHub_DisconnectRemovesClient(t *testing.T) {
	hub := newTestHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer srv.Close()

	conn := dialHub(t, srv)
	waitForClients(t, hub, 1)

	conn.Close()
	waitForClients(t, hub, 0)
}
