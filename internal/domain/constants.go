package domain

// QuestKeySeparator joins game and quest names in selection keys
const QuestKeySeparator = "/"

// Event types published by the planner
const (
	EventTypeProjectionComputed = "projection.computed"
	EventTypePlanSaved          = "plan.saved"
	EventTypePlanDeleted        = "plan.deleted"
	EventTypeCatalogRefreshed   = "catalog.refreshed"
)
