package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/QuestPlanner_Go/internal/event"
	"github.com/osse101/QuestPlanner_Go/internal/server"
	"github.com/osse101/QuestPlanner_Go/internal/sse"
	"github.com/osse101/QuestPlanner_Go/internal/telemetry"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Any field except Server may be nil.
type ShutdownComponents struct {
	Server             *server.Server
	SSEHub             *sse.Hub
	Background         *Background
	ResilientPublisher *event.ResilientPublisher
	Storage            *Storage
	Telemetry          telemetry.ShutdownFunc
}

// GracefulShutdown stops components in dependency order:
// 1. SSE hub (end open streams so the server can drain)
// 2. HTTP server (stop accepting new requests)
// 3. Background jobs
// 4. Event publisher (flush pending events)
// 5. Database pool and tracer
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.SSEHub != nil {
		components.SSEHub.Stop()
	}

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.Background != nil {
		slog.Info(LogMsgShuttingDownWorkers)
		components.Background.Stop()
	}

	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if components.Storage != nil {
		components.Storage.Close()
	}

	if components.Telemetry != nil {
		if err := components.Telemetry(ctx); err != nil {
			slog.Error(LogMsgTelemetryShutdownFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
