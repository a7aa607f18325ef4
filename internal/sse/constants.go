package sse

import (
	"time"

	"github.com/osse101/QuestPlanner_Go/internal/domain"
)

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive comments
	KeepaliveInterval = 30 * time.Second

	// WriteTimeout bounds a single write to a client
	WriteTimeout = 10 * time.Second
)

// Event types for SSE
const (
	EventTypePlanSaved          = domain.EventTypePlanSaved
	EventTypePlanDeleted        = domain.EventTypePlanDeleted
	EventTypeCatalogRefreshed   = domain.EventTypeCatalogRefreshed
	EventTypeProjectionComputed = domain.EventTypeProjectionComputed

	// EventTypeConnected is the first event on every stream
	EventTypeConnected = "connected"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgEventDropped       = "SSE broadcast buffer full, event dropped"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgFlushError         = "Failed to flush SSE response"
	LogMsgSubscribed         = "SSE subscriber registered for event types"
	LogMsgPayloadInvalid     = "SSE event payload could not be decoded"
)
