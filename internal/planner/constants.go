package planner

// Span names
const (
	SpanProject     = "planner.Project"
	SpanProjectPlan = "planner.ProjectPlan"
	SpanSavePlan    = "planner.SavePlan"
	SpanResolve     = "planner.resolveQuests"
)

// Span attribute keys
const (
	AttrUsername    = "planner.username"
	AttrTargetLevel = "planner.target_level"
	AttrQuestCount  = "planner.quest_count"
	AttrOutcome     = "planner.outcome"
	AttrDays        = "planner.days"
)

// Error messages
const (
	ErrMsgExperienceSourceRequired = "username or current_xp is required"
	ErrMsgUsernameRequired         = "username is required"
	ErrMsgFailedToLoadCatalog      = "failed to load quest catalog"
	ErrMsgFailedToLoadPlayer       = "failed to load player"
	ErrMsgFailedToProject          = "failed to project progression"
	ErrMsgInvalidNumberInput       = "number input must be a JSON string or number"
)

// Log messages
const (
	LogMsgProjectionComputed   = "Projection computed"
	LogMsgPlanSaved            = "Plan saved"
	LogMsgPlanDeleted          = "Plan deleted"
	LogMsgPublishFailed        = "Failed to publish planner event"
	LogMsgPlanCatalogCheckSkip = "Catalog unavailable, saving plan without quest check"
)
