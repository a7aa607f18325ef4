package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Upstream metric names
const (
	MetricNameUpstreamRequestsTotal   = "upstream_requests_total"
	MetricNameUpstreamRequestDuration = "upstream_request_duration_seconds"
	MetricNameCacheRequestsTotal      = "cache_requests_total"
	MetricNameCatalogQuests           = "catalog_quests"
	MetricNameCatalogRefreshesTotal   = "catalog_refreshes_total"
)

// Business metric names
const (
	MetricNameProjectionsTotal     = "projections_total"
	MetricNameProjectionDays       = "projection_days"
	MetricNameProjectionDuration   = "projection_duration_seconds"
	MetricNamePlansSavedTotal      = "plans_saved_total"
	MetricNamePlansDeletedTotal    = "plans_deleted_total"
	MetricNameLiveSessionsActive   = "live_sessions_active"
	MetricNameLiveMessagesTotal    = "live_messages_total"
	MetricNameSSEEventsDropped     = "sse_events_dropped_total"
	MetricNameSelectedQuestsPerRun = "projection_selected_quests"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Upstream metric help text
const (
	HelpTextUpstreamRequestsTotal   = "Total number of requests to the game and profile APIs"
	HelpTextUpstreamRequestDuration = "Upstream API latency in seconds"
	HelpTextCacheRequestsTotal      = "Catalog and player cache lookups by result"
	HelpTextCatalogQuests           = "Number of quests in the cached catalog"
	HelpTextCatalogRefreshesTotal   = "Catalog refreshes by result"
)

// Business metric help text
const (
	HelpTextProjectionsTotal     = "Total number of projections by outcome"
	HelpTextProjectionDays       = "Simulated days until the target level"
	HelpTextProjectionDuration   = "Time spent simulating a projection in seconds"
	HelpTextPlansSavedTotal      = "Total number of plans saved"
	HelpTextPlansDeletedTotal    = "Total number of plans deleted"
	HelpTextLiveSessionsActive   = "Current number of live projection sessions"
	HelpTextLiveMessagesTotal    = "Live session requests by result"
	HelpTextSSEEventsDropped     = "Server-sent events dropped because a buffer was full"
	HelpTextSelectedQuestsPerRun = "Number of quests selected per projection"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelOutcome  = "outcome"
	LabelEndpoint = "endpoint"
	LabelCache    = "cache"
	LabelResult   = "result"
)

// Label values
const (
	ResultHit     = "hit"
	ResultMiss    = "miss"
	ResultSuccess = "success"
	ResultError   = "error"

	ResultSuperseded = "superseded"

	CacheCatalog = "catalog"
	CachePlayer  = "player"

	// PathUnmatched labels requests that matched no route
	PathUnmatched = "unmatched"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ProjectionDayBuckets spans one week to the ten year simulation cap
var ProjectionDayBuckets = []float64{7, 30, 90, 180, 365, 730, 1825, 3650}

// ProjectionLatencyBuckets covers sub-millisecond to full-window simulations
var ProjectionLatencyBuckets = []float64{.00001, .0001, .0005, .001, .005, .01, .05}

// QuestCountBuckets buckets selection sizes
var QuestCountBuckets = []float64{0, 1, 5, 10, 20, 50, 100}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgEventPayloadUnknown = "Event payload could not be decoded"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
