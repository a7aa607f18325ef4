// Package catalog caches quest catalogs and player snapshots in front of a remote source.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/osse101/QuestPlanner_Go/internal/domain"
	"github.com/osse101/QuestPlanner_Go/internal/event"
	"github.com/osse101/QuestPlanner_Go/internal/metrics"
)

// Source provides uncached catalog and player data
type Source interface {
	GetQuests(ctx context.Context) ([]domain.Game, error)
	GetPlayer(ctx context.Context, username string) (*domain.PlayerProgress, error)
}

// Config sets cache freshness windows
type Config struct {
	CatalogTTL      time.Duration
	PlayerTTL       time.Duration
	PlayerCacheSize int
}

type cachedCatalog struct {
	Games    []domain.Game
	CachedAt time.Time
}

type cachedPlayer struct {
	Player   domain.PlayerProgress
	CachedAt time.Time
}

// Stats reports cache effectiveness
type Stats struct {
	CatalogHits     int64     `json:"catalog_hits"`
	CatalogMisses   int64     `json:"catalog_misses"`
	PlayerHits      int64     `json:"player_hits"`
	PlayerMisses    int64     `json:"player_misses"`
	PlayerEntries   int       `json:"player_entries"`
	CatalogCachedAt time.Time `json:"catalog_cached_at,omitzero"`
}

// Cache wraps a Source with expiring LRU caches. Concurrent misses for the same
// key share one upstream call. Returned values are shared and must not be modified.
type Cache struct {
	source  Source
	bus     event.Publisher
	catalog *expirable.LRU[string, *cachedCatalog]
	players *expirable.LRU[string, *cachedPlayer]
	group   singleflight.Group

	catalogHits, catalogMisses atomic.Int64
	playerHits, playerMisses   atomic.Int64
}

// New creates a cache. bus may be nil.
func New(source Source, cfg Config, bus event.Publisher) *Cache {
	if cfg.CatalogTTL <= 0 {
		cfg.CatalogTTL = DefaultCatalogTTL
	}
	if cfg.PlayerTTL <= 0 {
		cfg.PlayerTTL = DefaultPlayerTTL
	}
	if cfg.PlayerCacheSize <= 0 {
		cfg.PlayerCacheSize = DefaultPlayerCacheSize
	}

	return &Cache{
		source:  source,
		bus:     bus,
		catalog: expirable.NewLRU[string, *cachedCatalog](1, nil, cfg.CatalogTTL),
		players: expirable.NewLRU[string, *cachedPlayer](cfg.PlayerCacheSize, nil, cfg.PlayerTTL),
	}
}

// GetQuests returns the cached catalog, loading it on a miss
func (c *Cache) GetQuests(ctx context.Context) ([]domain.Game, error) {
	if entry, ok := c.catalog.Get(catalogKey); ok {
		c.catalogHits.Add(1)
		metrics.CacheRequestsTotal.WithLabelValues(metrics.CacheCatalog, metrics.ResultHit).Inc()
		return entry.Games, nil
	}

	c.catalogMisses.Add(1)
	metrics.CacheRequestsTotal.WithLabelValues(metrics.CacheCatalog, metrics.ResultMiss).Inc()
	return c.load(ctx, SourceMiss)
}

// Refresh reloads the catalog regardless of freshness
func (c *Cache) Refresh(ctx context.Context, source string) error {
	_, err := c.load(ctx, source)
	return err
}

// shared runs fn once for all concurrent callers of key. fn gets a context that
// keeps the first caller's values but not its cancellation, bounded by
// LoadTimeout. Each caller stops waiting when its own ctx ends.
func (c *Cache) shared(ctx context.Context, key string, fn func(context.Context) (interface{}, error)) (interface{}, error) {
	ch := c.group.DoChan(key, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), LoadTimeout)
		defer cancel()
		return fn(loadCtx)
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Cache) load(ctx context.Context, source string) ([]domain.Game, error) {
	v, err := c.shared(ctx, catalogKey, func(ctx context.Context) (interface{}, error) {
		start := time.Now()
		games, err := c.source.GetQuests(ctx)
		if err != nil {
			metrics.CatalogRefreshesTotal.WithLabelValues(metrics.ResultError).Inc()
			slog.Warn(LogMsgCatalogRefreshFailed, "source", source, "error", err)
			return nil, err
		}

		c.catalog.Add(catalogKey, &cachedCatalog{Games: games, CachedAt: time.Now()})
		metrics.CatalogRefreshesTotal.WithLabelValues(metrics.ResultSuccess).Inc()

		took := time.Since(start)
		quests := countQuests(games)
		slog.Info(LogMsgCatalogRefreshed, "source", source, "games", len(games), "quests", quests, "took", took)
		c.publish(ctx, event.NewCatalogRefreshedEvent(len(games), quests, took, source))
		return games, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load quest catalog: %w", err)
	}
	return v.([]domain.Game), nil
}

// GetPlayer returns a cached player snapshot. Usernames are matched case-insensitively.
func (c *Cache) GetPlayer(ctx context.Context, username string) (*domain.PlayerProgress, error) {
	key := PlayerKey(username)
	if entry, ok := c.players.Get(key); ok {
		c.playerHits.Add(1)
		metrics.CacheRequestsTotal.WithLabelValues(metrics.CachePlayer, metrics.ResultHit).Inc()
		p := entry.Player
		return &p, nil
	}

	c.playerMisses.Add(1)
	metrics.CacheRequestsTotal.WithLabelValues(metrics.CachePlayer, metrics.ResultMiss).Inc()

	v, err := c.shared(ctx, "player:"+key, func(ctx context.Context) (interface{}, error) {
		p, err := c.source.GetPlayer(ctx, username)
		if err != nil {
			return nil, err
		}
		c.players.Add(key, &cachedPlayer{Player: *p, CachedAt: time.Now()})
		return *p, nil
	})
	if err != nil {
		return nil, err
	}

	p := v.(domain.PlayerProgress)
	return &p, nil
}

// InvalidatePlayer drops a cached player snapshot
func (c *Cache) InvalidatePlayer(username string) {
	c.players.Remove(PlayerKey(username))
}

// Clear removes all entries from both caches
func (c *Cache) Clear() {
	c.catalog.Purge()
	c.players.Purge()
}

// Stats returns cache counters
func (c *Cache) Stats() Stats {
	s := Stats{
		CatalogHits:   c.catalogHits.Load(),
		CatalogMisses: c.catalogMisses.Load(),
		PlayerHits:    c.playerHits.Load(),
		PlayerMisses:  c.playerMisses.Load(),
		PlayerEntries: c.players.Len(),
	}
	if entry, ok := c.catalog.Peek(catalogKey); ok {
		s.CatalogCachedAt = entry.CachedAt
	}
	return s
}

func (c *Cache) publish(ctx context.Context, e event.Event) {
	if c.bus == nil {
		return
	}
	if err := c.bus.Publish(ctx, e); err != nil {
		slog.Warn(LogMsgPublishFailed, "type", e.Type, "error", err)
	}
}

// PlayerKey normalizes a username for lookups
func PlayerKey(username string) string {
	return domain.NormalizeUsername(username)
}

func countQuests(games []domain.Game) int {
	n := 0
	for _, g := range games {
		n += len(g.Quests)
	}
	return n
}
