package event

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type retryEntry struct {
	event   Event
	attempt int
	lastErr error
}

// ResilientPublisher publishes through a Bus and retries failed deliveries in the
// background with exponential backoff. Events that exhaust their retries are
// written to a dead-letter file.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter

	shutdown  chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewResilientPublisher starts the retry worker
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	p := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	p.wg.Add(1)
	go p.retryWorker()
	return p, nil
}

// Publish delivers the event and never reports failure to the caller
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	p.PublishWithRetry(ctx, event)
	return nil
}

// PublishWithRetry attempts one synchronous delivery and queues a retry on failure
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := p.bus.Publish(ctx, event)
	if err == nil {
		return
	}

	slog.Warn(LogMsgEventPublishFailed, "event_type", event.Type, "error", err)
	p.enqueue(retryEntry{event: event, attempt: 1, lastErr: err})
}

// Subscribe delegates to the underlying bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.bus.Subscribe(eventType, handler)
}

func (p *ResilientPublisher) enqueue(entry retryEntry) {
	select {
	case <-p.shutdown:
		slog.Warn(LogMsgEventDroppedShutdown, "event_type", entry.event.Type)
		p.writeDeadLetter(entry)
		return
	default:
	}

	select {
	case p.retryQueue <- entry:
	default:
		slog.Error(LogMsgRetryQueueFull, "event_type", entry.event.Type)
		p.writeDeadLetter(entry)
	}
}

func (p *ResilientPublisher) retryWorker() {
	defer p.wg.Done()

	for {
		select {
		case entry := <-p.retryQueue:
			p.retry(entry, true)
		case <-p.shutdown:
			p.drain()
			return
		}
	}
}

// retry keeps attempting one event until it succeeds or runs out of attempts.
// Backoff waits are skipped when wait is false.
func (p *ResilientPublisher) retry(entry retryEntry, wait bool) {
	for entry.attempt <= p.maxRetries {
		if wait {
			timer := time.NewTimer(CalculateRetryDelay(p.retryDelay, entry.attempt))
			select {
			case <-timer.C:
			case <-p.shutdown:
				timer.Stop()
				wait = false
			}
		}

		err := p.bus.Publish(context.Background(), entry.event)
		if err == nil {
			slog.Info(LogMsgEventRetrySucceeded, "event_type", entry.event.Type, "attempt", entry.attempt)
			return
		}

		entry.lastErr = err
		entry.attempt++
		slog.Warn(LogMsgEventRetryFailed, "event_type", entry.event.Type, "attempt", entry.attempt, "error", err)
	}

	slog.Error(LogMsgEventRetryExhausted, "event_type", entry.event.Type)
	p.writeDeadLetter(entry)
}

func (p *ResilientPublisher) drain() {
	for {
		select {
		case entry := <-p.retryQueue:
			p.retry(entry, false)
		default:
			return
		}
	}
}

func (p *ResilientPublisher) writeDeadLetter(entry retryEntry) {
	if err := p.deadLetter.Write(entry.event, entry.attempt, entry.lastErr); err != nil {
		slog.Error(LogMsgDeadLetterWriteFail, "event_type", entry.event.Type, "error", err)
	}
}

// Shutdown stops the retry worker, flushing queued events without backoff
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.closeOnce.Do(func() { close(p.shutdown) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return p.deadLetter.Close()
	case <-ctx.Done():
		slog.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
