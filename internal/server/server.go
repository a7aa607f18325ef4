package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/osse101/QuestPlanner_Go/internal/database"
	"github.com/osse101/QuestPlanner_Go/internal/handler"
	"github.com/osse101/QuestPlanner_Go/internal/logger"
	"github.com/osse101/QuestPlanner_Go/internal/metrics"
	"github.com/osse101/QuestPlanner_Go/internal/planner"
	"github.com/osse101/QuestPlanner_Go/internal/sse"
)

// Options configures the HTTP surface
type Options struct {
	Port        int
	APIKey      string
	CORSOrigins []string
	// TrustedProxies are addresses or CIDR ranges allowed to set X-Forwarded-For
	TrustedProxies []string
	// RateLimit is requests per IP per RateLimitWindow; zero disables it
	RateLimit   int
	ServiceName string
}

// Deps are the services the routes are backed by. DBPool, Cache and Events may
// be nil; a nil DBPool must be an untyped nil.
type Deps struct {
	Planner planner.Service
	Cache   handler.CacheAdmin
	DBPool  database.Pool
	Events  *sse.Hub
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options, deps Deps) *Server {
	r := chi.NewRouter()

	proxies := ParseProxyList(opts.TrustedProxies)
	tracker := NewActivityTracker(opts.RateLimit, RateLimitWindow)
	requireKey := AuthMiddleware(opts.APIKey, proxies, tracker)

	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(middleware.Recoverer)
	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(CORSMiddleware(opts.CORSOrigins))
	r.Use(RateLimitMiddleware(proxies, tracker))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.DBPool))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	// Routes the original frontend calls
	r.Get("/quests", handler.HandleGetQuests(deps.Planner))
	r.Get("/player", handler.HandleGetPlayer(deps.Planner))

	planHandler := handler.NewPlanHandler(deps.Planner)
	liveHandler := handler.NewLiveHandler(deps.Planner, opts.CORSOrigins)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/quests", handler.HandleGetQuests(deps.Planner))
		r.Get("/player", handler.HandleGetPlayer(deps.Planner))
		r.Get("/level", handler.HandleLevel())

		r.Post("/projection", handler.HandleProjection(deps.Planner))
		r.Handle("/projection/live", liveHandler)

		r.Route("/plans/{username}", func(r chi.Router) {
			r.Get("/", planHandler.HandleGetPlan)
			r.Get("/projection", planHandler.HandleProjectPlan)
			r.With(requireKey).Put("/", planHandler.HandleSavePlan)
			r.With(requireKey).Delete("/", planHandler.HandleDeletePlan)
		})

		if deps.Events != nil {
			r.Get("/events", sse.Handler(deps.Events))
		}

		if deps.Cache != nil {
			adminCacheHandler := handler.NewAdminCacheHandler(deps.Cache)
			r.Route("/admin/cache", func(r chi.Router) {
				r.Use(requireKey)
				r.Get("/stats", adminCacheHandler.HandleGetCacheStats)
				r.Post("/refresh", adminCacheHandler.HandleRefreshCatalog)
				r.Delete("/", adminCacheHandler.HandleClearCache)
			})
		}
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	serviceName := opts.ServiceName
	if serviceName == "" {
		serviceName = "questplanner"
	}
	traced := otelhttp.NewHandler(r, serviceName,
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           traced,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// Handler returns the fully wrapped handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

func isQuietPath(path string) bool {
	for _, p := range QuietPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isQuietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()

		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" || len(requestID) > 64 {
			requestID = logger.GenerateRequestID()
		}
		w.Header().Set(HeaderRequestID, requestID)

		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		// chi's wrapper keeps Flusher and Hijacker for SSE and websockets
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
