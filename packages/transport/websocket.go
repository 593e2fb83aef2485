package transport

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/l3montree-dev/honeypot-dashboard/packages/metrics"
	"github.com/l3montree-dev/honeypot-dashboard/packages/types"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// websocketTransport pushes snapshots as json messages to websocket clients.
// Every client has its own send buffer and writer goroutine, a slow client
// only drops its own snapshots.
type websocketTransport struct {
	msgs        chan types.Snapshot
	clients     map[*websocket.Conn]chan types.Snapshot
	clientsLock sync.RWMutex
}

func NewWebsocket() *websocketTransport {
	w := &websocketTransport{
		msgs:    make(chan types.Snapshot, listenBuffer),
		clients: make(map[*websocket.Conn]chan types.Snapshot),
	}
	go w.broadcastWorker()
	return w
}

func (w *websocketTransport) Listen() chan<- types.Snapshot {
	return w.msgs
}

func (w *websocketTransport) Count() int {
	w.clientsLock.RLock()
	defer w.clientsLock.RUnlock()
	return len(w.clients)
}

func (w *websocketTransport) broadcastWorker() {
	for msg := range w.msgs {
		w.clientsLock.RLock()
		for conn, send := range w.clients {
			select {
			case send <- msg:
			default:
				slog.Warn("websocket client too slow, dropping snapshot", "remote", remoteAddr(conn), "view", msg.View)
			}
		}
		w.clientsLock.RUnlock()
	}
}

func remoteAddr(conn *websocket.Conn) string {
	if conn == nil {
		return ""
	}
	return conn.RemoteAddr().String()
}

func (w *websocketTransport) addClient(conn *websocket.Conn) chan types.Snapshot {
	send := make(chan types.Snapshot, listenBuffer)
	w.clientsLock.Lock()
	w.clients[conn] = send
	count := len(w.clients)
	w.clientsLock.Unlock()
	metrics.SetRealtimeSubscribers("websocket", count)
	return send
}

func (w *websocketTransport) removeClient(conn *websocket.Conn) {
	w.clientsLock.Lock()
	delete(w.clients, conn)
	count := len(w.clients)
	w.clientsLock.Unlock()
	metrics.SetRealtimeSubscribers("websocket", count)
}

// writeLoop is the only writer of conn.
func writeLoop(conn *websocket.Conn, send <-chan types.Snapshot, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case msg := <-send:
			conn.SetWriteDeadline(time.Now().Add(writeWait)) // nolint
			if err := conn.WriteJSON(msg); err != nil {
				slog.Warn("websocket send error", "remote", conn.RemoteAddr(), "err", err)
				// unblocks the read loop
				conn.Close()
				return
			}
		}
	}
}

func (w *websocketTransport) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(rw, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	send := w.addClient(conn)
	defer w.removeClient(conn)
	slog.Debug("websocket client connected", "remote", conn.RemoteAddr())

	done := make(chan struct{})
	defer close(done)
	go writeLoop(conn, send, done)

	// clients only listen, reading detects the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
