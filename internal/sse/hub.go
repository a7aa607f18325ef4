// Package sse streams planner events to browsers as server-sent events.
package sse

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/QuestPlanner_Go/internal/metrics"
)

// Event is one message on a stream
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

func newEvent(eventType string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	}
}

// typeSet is a client's subscription. An empty set accepts every type.
type typeSet map[string]struct{}

func newTypeSet(types []string) typeSet {
	set := typeSet{}
	for _, t := range types {
		if t != "" {
			set[t] = struct{}{}
		}
	}
	return set
}

func (s typeSet) accepts(eventType string) bool {
	if len(s) == 0 {
		return true
	}
	_, ok := s[eventType]
	return ok
}

func (s typeSet) list() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	return out
}

// Client is one connected stream. EventChannel is closed when the client is
// unregistered or the hub stops.
type Client struct {
	ID           string
	EventChannel chan Event
	types        typeSet
}

// Hub fans broadcast events out to its clients from a single goroutine
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	closed  bool

	queue    chan Event
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewHub returns a hub that delivers nothing until Start is called
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		queue:   make(chan Event, BroadcastBufferSize),
		done:    make(chan struct{}),
	}
}

// Start launches the delivery loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		for {
			select {
			case evt := <-h.queue:
				h.fanOut(evt)
			case <-h.done:
				return
			}
		}
	}()
}

// Stop ends delivery and closes every client. Safe to call more than once.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
		h.wg.Wait()

		h.mu.Lock()
		defer h.mu.Unlock()
		h.closed = true
		for id, c := range h.clients {
			close(c.EventChannel)
			delete(h.clients, id)
		}
	})
}

// fanOut hands evt to every interested client. A client whose buffer is full
// misses the event.
func (h *Hub) fanOut(evt Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients {
		if !c.types.accepts(evt.Type) {
			continue
		}
		select {
		case c.EventChannel <- evt:
		default:
			metrics.SSEEventsDropped.WithLabelValues(evt.Type).Inc()
		}
	}
}

// Register opens a stream for the given event types; none means all of them.
// After Stop the returned client's channel is already closed.
func (h *Hub) Register(eventTypes []string) *Client {
	c := &Client{
		ID:           uuid.NewString(),
		EventChannel: make(chan Event, ClientEventBuffer),
		types:        newTypeSet(eventTypes),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(c.EventChannel)
		return c
	}
	h.clients[c.ID] = c
	return c
}

// Unregister drops a client and closes its channel. Unknown IDs are ignored.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[clientID]
	if !ok {
		return
	}
	delete(h.clients, clientID)
	close(c.EventChannel)
}

// Broadcast queues an event without blocking. When the queue is full the event
// is dropped and counted.
func (h *Hub) Broadcast(eventType string, payload interface{}) {
	select {
	case h.queue <- newEvent(eventType, payload):
	default:
		metrics.SSEEventsDropped.WithLabelValues(eventType).Inc()
		slog.Warn(LogMsgEventDropped, "event_type", eventType)
	}
}

// ClientCount reports the connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// FormatSSEMessage renders evt in the text/event-stream wire format. The id
// line is left out for events without an ID, such as keepalives.
func FormatSSEMessage(evt Event) ([]byte, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if evt.ID != "" {
		buf.WriteString("id: " + evt.ID + "\n")
	}
	buf.WriteString("event: " + evt.Type + "\n")
	buf.WriteString("data: ")
	buf.Write(data)
	buf.WriteString("\n\n")
	return buf.Bytes(), nil
}
