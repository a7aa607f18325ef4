package sse

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readSSE reads one "event:/data:" block from the stream.
func readSSE(t *testing.T, r *bufio.Reader) (string, Event) {
	t.Helper()

	var eventType string
	var evt Event
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case strings.HasPrefix(line, "event: "):
			eventType = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &evt))
		case line == "" && eventType != "":
			return eventType, evt
		}
	}
}

func TestHandler_StreamsFilteredEvents(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	srv := httptest.NewServer(Handler(hub))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"?types=plan.saved", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))

	reader := bufio.NewReader(resp.Body)
	typ, connected := readSSE(t, reader)
	require.Equal(t, EventTypeConnected, typ)
	assert.NotEmpty(t, connected.ID)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.Broadcast(EventTypeCatalogRefreshed, CatalogRefreshedPayload{Games: 1})
	hub.Broadcast(EventTypePlanSaved, PlanChangedPayload{Username: "Dream", QuestCount: 2})

	typ, got := readSSE(t, reader)
	assert.Equal(t, EventTypePlanSaved, typ)
	payload, ok := got.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Dream", payload["username"])
	assert.Equal(t, float64(2), payload["quest_count"])

	cancel()
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHandler_EndsWhenHubStops(t *testing.T) {
	hub := NewHub()
	hub.Start()

	srv := httptest.NewServer(Handler(hub))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	typ, _ := readSSE(t, reader)
	require.Equal(t, EventTypeConnected, typ)

	hub.Stop()

	done := make(chan struct{})
	go func() {
		_, _ = reader.ReadString(0)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not end after hub stop")
	}
}

func TestParseTypes(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{" , ", nil},
		{"plan.saved", []string{"plan.saved"}},
		{"plan.saved, catalog.refreshed,", []string{"plan.saved", "catalog.refreshed"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, parseTypes(tt.raw))
		})
	}
}

func TestTypeSet_Accepts(t *testing.T) {
	assert.True(t, newTypeSet(nil).accepts(EventTypePlanDeleted))
	assert.True(t, newTypeSet([]string{""}).accepts(EventTypePlanDeleted), "blank entries do not narrow")

	set := newTypeSet([]string{EventTypePlanSaved})
	assert.True(t, set.accepts(EventTypePlanSaved))
	assert.False(t, set.accepts(EventTypePlanDeleted))
	assert.Equal(t, []string{EventTypePlanSaved}, set.list())
}
