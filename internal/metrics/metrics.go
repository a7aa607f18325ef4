package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Upstream Metrics
var (
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameUpstreamRequestsTotal,
			Help: HelpTextUpstreamRequestsTotal,
		},
		[]string{LabelEndpoint, LabelStatus},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameUpstreamRequestDuration,
			Help:    HelpTextUpstreamRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelEndpoint},
	)

	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCacheRequestsTotal,
			Help: HelpTextCacheRequestsTotal,
		},
		[]string{LabelCache, LabelResult},
	)

	CatalogQuests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameCatalogQuests,
			Help: HelpTextCatalogQuests,
		},
	)

	CatalogRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCatalogRefreshesTotal,
			Help: HelpTextCatalogRefreshesTotal,
		},
		[]string{LabelResult},
	)
)

// Business Metrics
var (
	ProjectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameProjectionsTotal,
			Help: HelpTextProjectionsTotal,
		},
		[]string{LabelOutcome},
	)

	ProjectionDays = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameProjectionDays,
			Help:    HelpTextProjectionDays,
			Buckets: ProjectionDayBuckets,
		},
	)

	ProjectionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameProjectionDuration,
			Help:    HelpTextProjectionDuration,
			Buckets: ProjectionLatencyBuckets,
		},
	)

	SelectedQuests = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameSelectedQuestsPerRun,
			Help:    HelpTextSelectedQuestsPerRun,
			Buckets: QuestCountBuckets,
		},
	)

	PlansSaved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePlansSavedTotal,
			Help: HelpTextPlansSavedTotal,
		},
	)

	PlansDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePlansDeletedTotal,
			Help: HelpTextPlansDeletedTotal,
		},
	)

	LiveSessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameLiveSessionsActive,
			Help: HelpTextLiveSessionsActive,
		},
	)

	LiveMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLiveMessagesTotal,
			Help: HelpTextLiveMessagesTotal,
		},
		[]string{LabelResult},
	)

	SSEEventsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSSEEventsDropped,
			Help: HelpTextSSEEventsDropped,
		},
		[]string{LabelType},
	)
)
