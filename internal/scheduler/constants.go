package scheduler

// Log messages
const (
	LogMsgJobScheduled = "Job scheduled"
	LogMsgTickSkipped  = "Scheduled job skipped, queue full"
)
