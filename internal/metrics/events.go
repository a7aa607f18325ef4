package metrics

import (
	"context"

	"github.com/osse101/QuestPlanner_Go/internal/event"
	"github.com/osse101/QuestPlanner_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all planner events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.ProjectionComputed,
		event.PlanSaved,
		event.PlanDeleted,
		event.CatalogRefreshed,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.ProjectionComputed:
		payload, err := event.DecodePayload[event.ProjectionComputedPayloadV1](evt.Payload)
		if err != nil {
			return e.decodeFailed(ctx, evt, err)
		}
		ProjectionsTotal.WithLabelValues(string(payload.Outcome)).Inc()
		if payload.Days > 0 {
			ProjectionDays.Observe(float64(payload.Days))
		}

	case event.PlanSaved:
		PlansSaved.Inc()

	case event.PlanDeleted:
		PlansDeleted.Inc()

	case event.CatalogRefreshed:
		payload, err := event.DecodePayload[event.CatalogRefreshedPayloadV1](evt.Payload)
		if err != nil {
			return e.decodeFailed(ctx, evt, err)
		}
		CatalogQuests.Set(float64(payload.Quests))
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

// decodeFailed counts a malformed payload without failing delivery
func (e *EventMetricsCollector) decodeFailed(ctx context.Context, evt event.Event, err error) error {
	EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
	logger.FromContext(ctx).Debug(LogMsgEventPayloadUnknown, "type", evt.Type, "error", err)
	return nil
}
