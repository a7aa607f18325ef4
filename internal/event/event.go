package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/QuestPlanner_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Planner event types
const (
	ProjectionComputed Type = domain.EventTypeProjectionComputed
	PlanSaved          Type = domain.EventTypePlanSaved
	PlanDeleted        Type = domain.EventTypePlanDeleted
	CatalogRefreshed   Type = domain.EventTypeCatalogRefreshed
)

// ProjectionComputedPayloadV1 is the typed payload for projection events
type ProjectionComputedPayloadV1 struct {
	Username     string         `json:"username,omitempty"`
	Outcome      domain.Outcome `json:"outcome"`
	CurrentLevel int            `json:"current_level"`
	TargetLevel  int            `json:"target_level"`
	Days         int            `json:"days"`
	DailyXP      float64        `json:"daily_xp"`
	WeeklyXP     float64        `json:"weekly_xp"`
	Timestamp    int64          `json:"timestamp"`
}

// PlanSavedPayloadV1 is the typed payload for plan saved events
type PlanSavedPayloadV1 struct {
	Username    string `json:"username"`
	TargetLevel int    `json:"target_level"`
	QuestCount  int    `json:"quest_count"`
	Timestamp   int64  `json:"timestamp"`
}

// PlanDeletedPayloadV1 is the typed payload for plan deleted events
type PlanDeletedPayloadV1 struct {
	Username  string `json:"username"`
	Timestamp int64  `json:"timestamp"`
}

// CatalogRefreshedPayloadV1 is the typed payload for catalog refresh events
type CatalogRefreshedPayloadV1 struct {
	Games      int   `json:"games"`
	Quests     int   `json:"quests"`
	DurationMS int64 `json:"duration_ms"`
	Timestamp  int64 `json:"timestamp"`
}

// Type-safe event constructors

// NewProjectionComputedEvent creates a projection event from a finished projection
func NewProjectionComputedEvent(username string, p domain.Projection, dailyXP, weeklyXP float64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ProjectionComputed,
		Payload: ProjectionComputedPayloadV1{
			Username:     username,
			Outcome:      p.Outcome,
			CurrentLevel: p.CurrentLevel,
			TargetLevel:  p.TargetLevel,
			Days:         p.Days,
			DailyXP:      dailyXP,
			WeeklyXP:     weeklyXP,
			Timestamp:    time.Now().Unix(),
		},
	}
}

// NewPlanSavedEvent creates a new plan saved event
func NewPlanSavedEvent(plan domain.Plan) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PlanSaved,
		Payload: PlanSavedPayloadV1{
			Username:    plan.Username,
			TargetLevel: plan.TargetLevel,
			QuestCount:  len(plan.Quests),
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewPlanDeletedEvent creates a new plan deleted event
func NewPlanDeletedEvent(username string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PlanDeleted,
		Payload: PlanDeletedPayloadV1{
			Username:  username,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewCatalogRefreshedEvent creates a new catalog refreshed event
func NewCatalogRefreshedEvent(games, quests int, took time.Duration, source string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CatalogRefreshed,
		Payload: CatalogRefreshedPayloadV1{
			Games:      games,
			Quests:     quests,
			DurationMS: took.Milliseconds(),
			Timestamp:  time.Now().Unix(),
		},
		Metadata: Metadata{MetadataKeySource: source},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Publisher publishes events
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Bus defines the interface for an event bus
type Bus interface {
	Publisher
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
