package sse

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QuestPlanner_Go/internal/domain"
	"github.com/osse101/QuestPlanner_Go/internal/event"
)

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case evt, ok := <-c.EventChannel:
		require.True(t, ok, "client channel closed")
		return evt
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func assertNoEvent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case evt := <-c.EventChannel:
		t.Fatalf("unexpected event %q", evt.Type)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_BroadcastRespectsFilters(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	all := hub.Register(nil)
	plansOnly := hub.Register([]string{EventTypePlanSaved, ""})
	require.Equal(t, 2, hub.ClientCount())

	hub.Broadcast(EventTypeCatalogRefreshed, CatalogRefreshedPayload{Games: 2, Quests: 9})
	hub.Broadcast(EventTypePlanSaved, PlanChangedPayload{Username: "Technoblade"})

	first := receive(t, all)
	assert.Equal(t, EventTypeCatalogRefreshed, first.Type)
	assert.NotEmpty(t, first.ID)
	second := receive(t, all)
	assert.Equal(t, EventTypePlanSaved, second.Type)

	got := receive(t, plansOnly)
	assert.Equal(t, EventTypePlanSaved, got.Type)
	assert.Equal(t, PlanChangedPayload{Username: "Technoblade"}, got.Payload)
	assertNoEvent(t, plansOnly)
}

func TestHub_UnregisterClosesChannel(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	c := hub.Register(nil)
	hub.Unregister(c.ID)
	hub.Unregister(c.ID)

	_, ok := <-c.EventChannel
	assert.False(t, ok)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_StopClosesClients(t *testing.T) {
	hub := NewHub()
	hub.Start()

	c := hub.Register(nil)
	hub.Stop()
	hub.Stop()

	_, ok := <-c.EventChannel
	assert.False(t, ok)

	late := hub.Register(nil)
	_, ok = <-late.EventChannel
	assert.False(t, ok, "clients registered after Stop get a closed channel")
}

func TestHub_SlowClientDoesNotBlock(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	slow := hub.Register(nil)
	fast := hub.Register(nil)

	for i := 0; i < ClientEventBuffer+10; i++ {
		hub.Broadcast(EventTypeKeepalive, nil)
		// drain the fast client so it never fills
		receive(t, fast)
	}

	assert.Len(t, slow.EventChannel, ClientEventBuffer)
}

func TestFormatSSEMessage(t *testing.T) {
	t.Run("with id", func(t *testing.T) {
		msg, err := FormatSSEMessage(Event{ID: "abc", Type: EventTypePlanDeleted, Timestamp: 1, Payload: PlanChangedPayload{Username: "x", Deleted: true}})
		require.NoError(t, err)
		s := string(msg)
		assert.True(t, strings.HasPrefix(s, "id: abc\nevent: plan.deleted\ndata: {"))
		assert.True(t, strings.HasSuffix(s, "}\n\n"))
		assert.Contains(t, s, `"deleted":true`)
	})

	t.Run("keepalive omits id", func(t *testing.T) {
		msg, err := FormatSSEMessage(Event{Type: EventTypeKeepalive, Timestamp: 5})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(msg), "event: keepalive\ndata: "))
	})

	t.Run("unencodable payload", func(t *testing.T) {
		_, err := FormatSSEMessage(Event{Type: EventTypePlanSaved, Payload: make(chan int)})
		assert.Error(t, err)
	})
}

func TestSubscriber_ForwardsPlannerEvents(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	bus := event.NewMemoryBus()
	NewSubscriber(hub, bus).Subscribe()
	c := hub.Register(nil)
	ctx := context.Background()

	t.Run("plan saved", func(t *testing.T) {
		plan := domain.Plan{Username: "Dream", TargetLevel: 200, Quests: []domain.QuestRef{{Game: "bedwars", Name: "bedwars_daily_win"}}}
		require.NoError(t, bus.Publish(ctx, event.NewPlanSavedEvent(plan)))

		got := receive(t, c)
		assert.Equal(t, EventTypePlanSaved, got.Type)
		assert.Equal(t, PlanChangedPayload{Username: "Dream", TargetLevel: 200, QuestCount: 1}, got.Payload)
	})

	t.Run("plan deleted", func(t *testing.T) {
		require.NoError(t, bus.Publish(ctx, event.NewPlanDeletedEvent("Dream")))

		got := receive(t, c)
		assert.Equal(t, PlanChangedPayload{Username: "Dream", Deleted: true}, got.Payload)
	})

	t.Run("catalog refreshed carries source", func(t *testing.T) {
		require.NoError(t, bus.Publish(ctx, event.NewCatalogRefreshedEvent(3, 41, time.Second, "admin")))

		got := receive(t, c)
		assert.Equal(t, EventTypeCatalogRefreshed, got.Type)
		assert.Equal(t, CatalogRefreshedPayload{Games: 3, Quests: 41, Source: "admin"}, got.Payload)
	})

	t.Run("projection computed", func(t *testing.T) {
		p := domain.Projection{Outcome: domain.OutcomeReached, CurrentLevel: 10, TargetLevel: 20, Days: 14}
		require.NoError(t, bus.Publish(ctx, event.NewProjectionComputedEvent("Dream", p, 5000, 20000)))

		got := receive(t, c)
		assert.Equal(t, ProjectionPayload{Username: "Dream", Outcome: domain.OutcomeReached, TargetLevel: 20, Days: 14}, got.Payload)
	})

	t.Run("serialized payload is decoded", func(t *testing.T) {
		evt := event.Event{
			Version: event.EventSchemaVersion,
			Type:    event.PlanDeleted,
			Payload: map[string]interface{}{"username": "Grian", "timestamp": 1},
		}
		require.NoError(t, bus.Publish(ctx, evt))

		got := receive(t, c)
		assert.Equal(t, PlanChangedPayload{Username: "Grian", Deleted: true}, got.Payload)
	})

	t.Run("bad payload is swallowed", func(t *testing.T) {
		evt := event.Event{Type: event.PlanSaved, Payload: map[string]interface{}{"target_level": "high"}}
		assert.NoError(t, bus.Publish(ctx, evt))
		assertNoEvent(t, c)
	})
}
