package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/QuestPlanner_Go/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for all planner event types
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.PlanSaved, s.handlePlanSaved)
	s.bus.Subscribe(event.PlanDeleted, s.handlePlanDeleted)
	s.bus.Subscribe(event.CatalogRefreshed, s.handleCatalogRefreshed)
	s.bus.Subscribe(event.ProjectionComputed, s.handleProjectionComputed)

	slog.Info(LogMsgSubscribed,
		"types", []string{
			string(event.PlanSaved),
			string(event.PlanDeleted),
			string(event.CatalogRefreshed),
			string(event.ProjectionComputed),
		})
}

// Payload decode failures are logged and swallowed so a bad event never
// fails the publisher.

func (s *Subscriber) handlePlanSaved(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.PlanSavedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgPayloadInvalid, "type", evt.Type, "error", err)
		return nil
	}

	s.hub.Broadcast(EventTypePlanSaved, PlanChangedPayload{
		Username:    payload.Username,
		TargetLevel: payload.TargetLevel,
		QuestCount:  payload.QuestCount,
	})
	slog.Debug(LogMsgEventBroadcast, "event_type", EventTypePlanSaved, "username", payload.Username)
	return nil
}

func (s *Subscriber) handlePlanDeleted(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.PlanDeletedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgPayloadInvalid, "type", evt.Type, "error", err)
		return nil
	}

	s.hub.Broadcast(EventTypePlanDeleted, PlanChangedPayload{
		Username: payload.Username,
		Deleted:  true,
	})
	slog.Debug(LogMsgEventBroadcast, "event_type", EventTypePlanDeleted, "username", payload.Username)
	return nil
}

func (s *Subscriber) handleCatalogRefreshed(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.CatalogRefreshedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgPayloadInvalid, "type", evt.Type, "error", err)
		return nil
	}

	source, _ := evt.GetMetadataValue(event.MetadataKeySource).(string)
	s.hub.Broadcast(EventTypeCatalogRefreshed, CatalogRefreshedPayload{
		Games:  payload.Games,
		Quests: payload.Quests,
		Source: source,
	})
	slog.Debug(LogMsgEventBroadcast, "event_type", EventTypeCatalogRefreshed, "quests", payload.Quests)
	return nil
}

func (s *Subscriber) handleProjectionComputed(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.ProjectionComputedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgPayloadInvalid, "type", evt.Type, "error", err)
		return nil
	}

	s.hub.Broadcast(EventTypeProjectionComputed, ProjectionPayload{
		Username:    payload.Username,
		Outcome:     payload.Outcome,
		TargetLevel: payload.TargetLevel,
		Days:        payload.Days,
	})
	return nil
}
