package hypixel

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QuestPlanner_Go/internal/domain"
	"github.com/osse101/QuestPlanner_Go/internal/level"
)

const questsFixture = `{
  "success": true,
  "quests": {
    "bedwars": [
      {"id": "bedwars_weekly_bed_elims", "name": "Bed Removal Co.", "description": "Destroy 25 beds",
       "rewards": [{"type": "ExperienceReward", "amount": 5}, {"type": "MultipliedExperienceReward", "amount": 25000}],
       "requirements": []},
      {"id": "bedwars_daily_win", "name": "Daily Win", "description": "Win a game",
       "rewards": [{"type": "MultipliedExperienceReward", "amount": 5000}],
       "requirements": [{"type": "DailyResetQuestRequirement"}]}
    ],
    "walls3": [
      {"id": "mw_daily_play", "name": "Mega Walls Player", "description": "Play a game",
       "rewards": [{"type": "MultipliedExperienceReward", "amount": 3000}],
       "requirements": [{"type": "DailyResetQuestRequirement"}]}
    ],
    "mystery": [
      {"id": "no_reward", "name": "Lurker", "description": "Exist", "rewards": [], "requirements": []}
    ]
  }
}`

const gamesFixture = `{
  "success": true,
  "games": {
    "BEDWARS": {"id": 58, "name": "Bed Wars", "databaseName": "Bedwars"},
    "WALLS3": {"id": 61, "name": "Mega Walls", "databaseName": "Walls3"},
    "LIMBO": {"id": -2, "name": "Limbo"}
  }
}`

type upstream struct {
	hypixel *httptest.Server
	mojang  *httptest.Server

	mu      sync.Mutex
	apiKeys []string
}

func newUpstream(t *testing.T, hypixel, mojang http.HandlerFunc) *upstream {
	t.Helper()
	u := &upstream{}
	u.hypixel = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == pathPlayer {
			u.mu.Lock()
			u.apiKeys = append(u.apiKeys, r.Header.Get(HeaderAPIKey))
			u.mu.Unlock()
		}
		hypixel(w, r)
	}))
	u.mojang = httptest.NewServer(mojang)
	t.Cleanup(func() {
		u.hypixel.Close()
		u.mojang.Close()
	})
	return u
}

func (u *upstream) client(maxRetries int) *Client {
	return NewClient(Config{
		HypixelBaseURL: u.hypixel.URL,
		MojangBaseURL:  u.mojang.URL,
		APIKey:         "test-key",
		MaxRetries:     maxRetries,
		RetryDelay:     time.Millisecond,
	})
}

func resourcesHandler(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case pathQuestsResource:
		fmt.Fprint(w, questsFixture)
	case pathGamesResource:
		fmt.Fprint(w, gamesFixture)
	default:
		http.NotFound(w, r)
	}
}

func TestGetQuests(t *testing.T) {
	u := newUpstream(t, resourcesHandler, http.NotFound)

	games, err := u.client(0).GetQuests(context.Background())
	require.NoError(t, err)
	require.Len(t, games, 3)

	// Sorted by display name; unknown slugs keep the slug
	assert.Equal(t, "Bed Wars", games[0].Name)
	assert.Equal(t, "Mega Walls", games[1].Name)
	assert.Equal(t, "mystery", games[2].Name)

	bedwars := games[0]
	require.Len(t, bedwars.Quests, 2)
	assert.Equal(t, "Bed Removal Co.", bedwars.Quests[0].Name)
	assert.Equal(t, 25000.0, bedwars.Quests[0].XP)
	assert.Equal(t, domain.RecurrenceWeekly, bedwars.Quests[0].Recurrence)
	assert.Equal(t, "Daily Win", bedwars.Quests[1].Name)
	assert.True(t, bedwars.Quests[1].IsDaily())
	assert.Equal(t, "Bed Wars", bedwars.Quests[1].Game)

	assert.Equal(t, 0.0, games[2].Quests[0].XP)
}

func TestGetQuests_UpstreamFailure(t *testing.T) {
	t.Run("server errors are retried then reported", func(t *testing.T) {
		var calls atomic.Int32
		u := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == pathGamesResource {
				calls.Add(1)
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			resourcesHandler(w, r)
		}, http.NotFound)

		_, err := u.client(2).GetQuests(context.Background())

		assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("transient error recovers", func(t *testing.T) {
		var calls atomic.Int32
		u := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == pathQuestsResource && calls.Add(1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			resourcesHandler(w, r)
		}, http.NotFound)

		games, err := u.client(2).GetQuests(context.Background())

		require.NoError(t, err)
		assert.Len(t, games, 3)
	})

	t.Run("rate limit is not retried", func(t *testing.T) {
		var calls atomic.Int32
		u := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusTooManyRequests)
		}, http.NotFound)

		_, err := u.client(3).GetQuests(context.Background())

		assert.ErrorIs(t, err, domain.ErrUpstreamRateLimited)
		assert.LessOrEqual(t, calls.Load(), int32(2))
	})

	t.Run("malformed body", func(t *testing.T) {
		u := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "{not json")
		}, http.NotFound)

		_, err := u.client(2).GetQuests(context.Background())
		assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	})
}

func mojangHandler(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case pathMojangProfile + "technoblade":
		fmt.Fprint(w, `{"id":"b876ec32e396476ba1158438d83c67d4","name":"Technoblade"}`)
	case pathMojangProfile + "newbie":
		fmt.Fprint(w, `{"id":"0f7c5fbb4a2b4a6c8f0f1d2c3b4a5968","name":"Newbie"}`)
	case pathMojangProfile + "gone":
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"errorMessage":"Couldn't find any profile with name"}`)
	}
}

func playerHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != pathPlayer {
		http.NotFound(w, r)
		return
	}
	switch r.URL.Query().Get("uuid") {
	case "b876ec32-e396-476b-a115-8438d83c67d4":
		fmt.Fprint(w, `{"success":true,"player":{"networkExp":1234567.5,"quests":{
			"bedwars_daily_win":{"completions":[{"time":1},{"time":2}],"active":{}},
			"mw_daily_play":{"completions":[{"time":3}]},
			"active_only":{"active":{"started":4}}}}}`)
	default:
		fmt.Fprint(w, `{"success":true,"player":null}`)
	}
}

func TestGetPlayer(t *testing.T) {
	u := newUpstream(t, playerHandler, mojangHandler)

	p, err := u.client(0).GetPlayer(context.Background(), "technoblade")
	require.NoError(t, err)

	assert.Equal(t, "b876ec32-e396-476b-a115-8438d83c67d4", p.UUID)
	assert.Equal(t, "Technoblade", p.Username)
	assert.Equal(t, 1234567.5, p.XP)
	assert.Equal(t, 3, p.QuestsCompleted)
	assert.Equal(t, level.CalculateLevel(1234567.5), p.Level)
	assert.Equal(t, []string{"test-key"}, u.apiKeys)
}

func TestGetPlayer_NotFound(t *testing.T) {
	u := newUpstream(t, playerHandler, mojangHandler)
	c := u.client(2)

	for _, name := range []string{"nobody", "gone", "newbie"} {
		t.Run(name, func(t *testing.T) {
			_, err := c.GetPlayer(context.Background(), name)
			assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
		})
	}
}

func TestGetPlayer_ContextCancelled(t *testing.T) {
	u := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, mojangHandler)
	c := NewClient(Config{
		HypixelBaseURL: u.hypixel.URL,
		MojangBaseURL:  u.mojang.URL,
		MaxRetries:     5,
		RetryDelay:     time.Hour,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.GetPlayer(ctx, "technoblade")
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}
