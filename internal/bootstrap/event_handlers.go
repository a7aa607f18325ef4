package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/QuestPlanner_Go/internal/event"
	"github.com/osse101/QuestPlanner_Go/internal/metrics"
	"github.com/osse101/QuestPlanner_Go/internal/sse"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus event.Bus
	// SSEHub is optional; without it events are only counted
	SSEHub *sse.Hub
}

// RegisterEventHandlers subscribes the metrics collector and the SSE relay.
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.SSEHub != nil {
		sse.NewSubscriber(deps.SSEHub, deps.EventBus).Subscribe()
		slog.Info(LogMsgSSESubscriberRegistered)
	}

	return nil
}
