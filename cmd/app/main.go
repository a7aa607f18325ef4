// Command app serves the quest planner HTTP API.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/QuestPlanner_Go/internal/bootstrap"
	"github.com/osse101/QuestPlanner_Go/internal/catalog"
	"github.com/osse101/QuestPlanner_Go/internal/config"
	"github.com/osse101/QuestPlanner_Go/internal/hypixel"
	"github.com/osse101/QuestPlanner_Go/internal/planner"
	"github.com/osse101/QuestPlanner_Go/internal/projection"
	"github.com/osse101/QuestPlanner_Go/internal/server"
	"github.com/osse101/QuestPlanner_Go/internal/sse"
	"github.com/osse101/QuestPlanner_Go/internal/telemetry"
)

// @title Quest Planner API
// @version 1.0
// @description Hypixel network level projections from daily and weekly quests.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(cfg); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName: cfg.ServiceName,
		Version:     cfg.Version,
		Environment: cfg.Environment,
		Endpoint:    cfg.OTelEndpoint,
	})
	if err != nil {
		return err
	}

	events, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}

	hub := sse.NewHub()
	hub.Start()
	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus: events.Bus,
		SSEHub:   hub,
	}); err != nil {
		return err
	}

	storage, err := bootstrap.InitializeStorage(ctx, cfg)
	if err != nil {
		return err
	}

	projCfg, err := cfg.ProjectionConfig()
	if err != nil {
		return err
	}

	client := hypixel.NewClient(hypixel.Config{
		HypixelBaseURL: cfg.HypixelBaseURL,
		MojangBaseURL:  cfg.MojangBaseURL,
		APIKey:         cfg.HypixelAPIKey,
		Timeout:        cfg.UpstreamTimeout,
	})
	cache := catalog.New(client, catalog.Config{
		CatalogTTL:      cfg.CatalogTTL,
		PlayerTTL:       cfg.PlayerTTL,
		PlayerCacheSize: cfg.PlayerCacheSize,
	}, events.Publisher)

	svc := planner.NewService(cache, storage.Plans, projection.NewSimulator(projCfg), events.Publisher)

	bootstrap.SyncCatalog(ctx, cache)
	background := bootstrap.StartCatalogRefresh(cache, cfg.WorkerCount, cfg.CatalogRefreshInterval)

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		CORSOrigins:    cfg.CORSOrigins,
		TrustedProxies: cfg.TrustedProxies,
		RateLimit:      cfg.RateLimit,
		ServiceName:    cfg.ServiceName,
	}, server.Deps{
		Planner: svc,
		Cache:   cache,
		DBPool:  storage.ReadinessPool(),
		Events:  hub,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		SSEHub:             hub,
		Background:         background,
		ResilientPublisher: events.Publisher,
		Storage:            storage,
		Telemetry:          shutdownTracing,
	})
	return runErr
}
