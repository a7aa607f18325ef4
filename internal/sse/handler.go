package sse

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// stream writes events to one HTTP response
type stream struct {
	w  http.ResponseWriter
	rc *http.ResponseController
}

// send writes and flushes evt. It reports false once the connection is unusable;
// an event that cannot be encoded is skipped.
func (s stream) send(evt Event) bool {
	msg, err := FormatSSEMessage(evt)
	if err != nil {
		slog.Error(LogMsgWriteError, "event_type", evt.Type, "error", err)
		return true
	}
	_ = s.rc.SetWriteDeadline(time.Now().Add(WriteTimeout))
	if _, err := s.w.Write(msg); err != nil {
		slog.Debug(LogMsgWriteError, "error", err)
		return false
	}
	if err := s.rc.Flush(); err != nil {
		slog.Warn(LogMsgFlushError, "error", err)
		return false
	}
	return true
}

// parseTypes splits the ?types= filter
func parseTypes(raw string) []string {
	var types []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}
	return types
}

// Handler serves the event stream. Clients may narrow it with
// ?types=plan.saved,plan.deleted
// @Summary Planner event stream
// @Description Server-sent events for plan.saved, plan.deleted, catalog.refreshed and projection.computed
// @Tags events
// @Produce text/event-stream
// @Param types query string false "Comma separated event types"
// @Router /api/v1/events [get]
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Type", "text/event-stream")
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		h.Set("X-Accel-Buffering", "no")

		client := hub.Register(parseTypes(r.URL.Query().Get("types")))
		filters := client.types.list()
		slog.Info(LogMsgClientConnected, "client_id", client.ID, "filters", filters, "total_clients", hub.ClientCount())
		defer func() {
			hub.Unregister(client.ID)
			slog.Info(LogMsgClientDisconnected, "client_id", client.ID, "total_clients", hub.ClientCount())
		}()

		out := stream{w: w, rc: http.NewResponseController(w)}
		hello := newEvent(EventTypeConnected, map[string]interface{}{
			"client_id": client.ID,
			"filters":   filters,
		})
		hello.ID = client.ID
		if !out.send(hello) {
			return
		}

		keepalive := time.NewTicker(KeepaliveInterval)
		defer keepalive.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case evt, open := <-client.EventChannel:
				if !open || !out.send(evt) {
					return
				}
			case <-keepalive.C:
				if !out.send(Event{Type: EventTypeKeepalive, Timestamp: time.Now().Unix()}) {
					return
				}
			}
		}
	}
}
