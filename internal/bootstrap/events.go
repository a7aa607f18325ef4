package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/QuestPlanner_Go/internal/config"
	"github.com/osse101/QuestPlanner_Go/internal/event"
)

// EventSystem pairs the in-process bus with the retrying publisher services use.
type EventSystem struct {
	Bus       event.Bus
	Publisher *event.ResilientPublisher
}

// InitializeEventSystem builds the memory bus and a resilient publisher whose
// exhausted events land in the dead-letter file. Non-positive settings fall back
// to the package defaults.
func InitializeEventSystem(cfg *config.Config) (*EventSystem, error) {
	maxRetries := cfg.EventMaxRetries
	if maxRetries <= 0 {
		maxRetries = EventDefaultMaxRetries
	}
	retryDelay := cfg.EventRetryDelay
	if retryDelay <= 0 {
		retryDelay = EventDefaultRetryDelay
	}
	deadLetterPath := cfg.EventDeadLetterPath
	if deadLetterPath == "" {
		deadLetterPath = EventDefaultDeadLetterPath
	}

	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	bus := event.NewMemoryBus()
	publisher, err := event.NewResilientPublisher(bus, maxRetries, retryDelay, deadLetterPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateResilientPublisher, err)
	}

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", maxRetries,
		"retry_delay", retryDelay,
		"deadletter_path", deadLetterPath)

	return &EventSystem{Bus: bus, Publisher: publisher}, nil
}
