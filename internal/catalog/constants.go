package catalog

import "time"

// Defaults
const (
	DefaultCatalogTTL      = 15 * time.Minute
	DefaultPlayerTTL       = 15 * time.Second
	DefaultPlayerCacheSize = 1024

	// LoadTimeout bounds one shared upstream load
	LoadTimeout = 30 * time.Second

	catalogKey = "catalog"
)

// Refresh sources recorded on catalog refresh events
const (
	SourceScheduler = "scheduler"
	SourceAdmin     = "admin"
	SourceMiss      = "cache_miss"
)

// Log messages
const (
	LogMsgCatalogRefreshed     = "Quest catalog refreshed"
	LogMsgCatalogRefreshFailed = "Quest catalog refresh failed"
	LogMsgPublishFailed        = "Failed to publish catalog event"
)
