package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/l3montree-dev/honeypot-dashboard/packages/metrics"
	"github.com/l3montree-dev/honeypot-dashboard/packages/types"
)

// sseTransport pushes snapshots to server-sent event clients.
type sseTransport struct {
	msgs        chan types.Snapshot
	sockets     map[string]chan types.Snapshot
	socketsLock sync.RWMutex
}

func NewSSE() *sseTransport {
	s := &sseTransport{
		msgs:    make(chan types.Snapshot, listenBuffer),
		sockets: make(map[string]chan types.Snapshot),
	}
	go func() {
		for msg := range s.msgs {
			s.socketsLock.RLock()
			for _, ch := range s.sockets {
				select {
				case ch <- msg:
				default:
					slog.Warn("sse client too slow, dropping snapshot", "view", msg.View)
				}
			}
			s.socketsLock.RUnlock()
		}
	}()
	return s
}

func (s *sseTransport) Listen() chan<- types.Snapshot {
	return s.msgs
}

func (s *sseTransport) Count() int {
	s.socketsLock.RLock()
	defer s.socketsLock.RUnlock()
	return len(s.sockets)
}

func (s *sseTransport) subscribe() (string, chan types.Snapshot) {
	ch := make(chan types.Snapshot, listenBuffer)
	id := uuid.New().String()
	s.socketsLock.Lock()
	s.sockets[id] = ch
	count := len(s.sockets)
	s.socketsLock.Unlock()
	metrics.SetRealtimeSubscribers("sse", count)
	return id, ch
}

func (s *sseTransport) unsubscribe(id string) {
	s.socketsLock.Lock()
	delete(s.sockets, id)
	count := len(s.sockets)
	s.socketsLock.Unlock()
	metrics.SetRealtimeSubscribers("sse", count)
}

// ServeHTTP streams snapshots for the realtime endpoint
func (s *sseTransport) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	//set headers for server-sent events
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported!", http.StatusInternalServerError)
		return
	}
	id, ch := s.subscribe()
	defer s.unsubscribe(id)

	w.WriteHeader(http.StatusOK)
	flusher.Flush()
	for {
		select {
		case <-r.Context().Done():
			return
		case message := <-ch:
			arr, err := json.Marshal(message)
			if err != nil {
				slog.Error("could not marshal snapshot", "err", err)
				continue
			}
			_, err = w.Write([]byte("event: " + message.View + "\ndata: " + string(arr) + "\n\n"))
			if err != nil {
				slog.Warn("error writing to sse client", "err", err)
				return
			}
			flusher.Flush()
		}
	}
}
