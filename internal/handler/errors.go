package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam    = "Missing %s query parameter"
	ErrMsgLevelQueryConflict   = "Provide either xp or level, not both"
	ErrMsgLevelQueryMissing    = "Provide an xp or level query parameter"
	ErrMsgInvalidExperience    = "xp must be a non-negative number"
	ErrMsgInvalidLevel         = "level must be a non-negative integer"
	ErrMsgInvalidUsername      = "Invalid Minecraft username"
	ErrMsgInvalidUsernameParam = "Invalid username in path"

	// Operation error messages
	ErrMsgGetQuestsFailed   = "Failed to load quests"
	ErrMsgGetPlayerFailed   = "Failed to load player"
	ErrMsgProjectFailed     = "Failed to project progression"
	ErrMsgGetPlanFailed     = "Failed to load plan"
	ErrMsgSavePlanFailed    = "Failed to save plan"
	ErrMsgDeletePlanFailed  = "Failed to delete plan"
	ErrMsgProjectPlanFailed = "Failed to project plan"
	ErrMsgRefreshFailed     = "Failed to refresh quest catalog"
)

// Success messages for API responses
const (
	MsgPlanDeletedSuccess      = "Plan deleted"
	MsgCatalogRefreshedSuccess = "Quest catalog refreshed"
	MsgCacheClearedSuccess     = "Caches cleared"
)

// Health statuses
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"

	HealthMsgDatabaseFailed = "database connection failed"
	HealthMsgMemoryStorage  = "plans stored in memory"
)
