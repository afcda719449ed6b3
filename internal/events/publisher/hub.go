package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/allisson/soulbound/internal/events/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufSize    = 256
)

// Hub broadcasts relayed events to connected WebSocket subscribers. A subscriber whose
// buffer is full misses the event rather than stalling the relay.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[*Subscriber]struct{}
	maxConns    int
	logger      *slog.Logger
}

// NewHub creates a Hub accepting up to maxConns subscribers (10000 when maxConns <= 0).
func NewHub(maxConns int, logger *slog.Logger) *Hub {
	if maxConns <= 0 {
		maxConns = 10000
	}
	return &Hub{
		subscribers: make(map[*Subscriber]struct{}),
		maxConns:    maxConns,
		logger:      logger,
	}
}

// Publish encodes msg once and queues it on every subscriber.
func (h *Hub) Publish(_ context.Context, msg domain.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("hub encode: %w", err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for s := range h.subscribers {
		select {
		case s.send <- data:
		default:
			h.logger.Warn("dropping event for slow subscriber", slog.String("event_id", msg.ID.String()))
		}
	}
	return nil
}

// Count returns the number of connected subscribers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Serve registers conn as a subscriber and blocks until the connection closes or ctx is done.
func (h *Hub) Serve(ctx context.Context, conn *websocket.Conn) error {
	s := &Subscriber{
		conn: conn,
		send: make(chan []byte, sendBufSize),
	}

	h.mu.Lock()
	if len(h.subscribers) >= h.maxConns {
		h.mu.Unlock()
		_ = conn.Close()
		return fmt.Errorf("subscriber limit reached (%d)", h.maxConns)
	}
	h.subscribers[s] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.subscribers, s)
		h.mu.Unlock()
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		defer cancel()
		s.readPump()
	}()
	go func() {
		defer wg.Done()
		defer cancel()
		s.writePump(ctx)
	}()
	wg.Wait()
	return nil
}

// Subscriber is a single WebSocket connection attached to a Hub.
type Subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

// readPump discards inbound frames and keeps the read deadline alive through pongs.
// It returns when the peer disconnects or the write pump closes the connection.
func (s *Subscriber) readPump() {
	defer func() {
		_ = s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	if err := s.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Subscriber) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = s.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case data := <-s.send:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
