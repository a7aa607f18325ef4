package worker

import "time"

// Log messages
const (
	LogMsgWorkerJobFailed  = "Worker job failed"
	LogMsgWorkerJobDropped = "Worker queue full, job dropped"
	LogMsgPoolStopped      = "Worker pool stopped"
)

// DefaultJobTimeout bounds a single job run
const DefaultJobTimeout = 2 * time.Minute
