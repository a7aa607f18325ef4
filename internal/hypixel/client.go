// Package hypixel fetches the quest catalog and player progress from the Hypixel
// public API, resolving usernames through the Mojang profile API.
package hypixel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/osse101/QuestPlanner_Go/internal/domain"
	"github.com/osse101/QuestPlanner_Go/internal/metrics"
)

// Config configures a Client
type Config struct {
	HypixelBaseURL string
	MojangBaseURL  string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

// Client talks to the Hypixel and Mojang APIs
type Client struct {
	hypixelURL string
	mojangURL  string
	apiKey     string
	http       *http.Client
	maxRetries int
	retryDelay time.Duration
}

// NewClient creates a client. Zero config values fall back to the public endpoints and defaults.
func NewClient(cfg Config) *Client {
	if cfg.HypixelBaseURL == "" {
		cfg.HypixelBaseURL = DefaultHypixelBaseURL
	}
	if cfg.MojangBaseURL == "" {
		cfg.MojangBaseURL = DefaultMojangBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}

	return &Client{
		hypixelURL: strings.TrimRight(cfg.HypixelBaseURL, "/"),
		mojangURL:  strings.TrimRight(cfg.MojangBaseURL, "/"),
		apiKey:     cfg.APIKey,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}
}

var errMalformedResponse = errors.New("malformed upstream response")

// statusError is a non-2xx upstream response
type statusError struct {
	endpoint string
	status   int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.endpoint, e.status)
}

// getJSON fetches url into out, retrying transport failures and 5xx responses
// with exponential backoff. It returns the final status code.
func (c *Client) getJSON(ctx context.Context, endpoint, url string, header http.Header, out interface{}) (int, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.retryDelay * time.Duration(1<<uint(attempt-1))
			slog.Info(LogMsgRetryingRequest, "endpoint", endpoint, "attempt", attempt, "delay", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return 0, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, ctx.Err())
			}
		}

		status, err := c.do(ctx, endpoint, url, header, out)
		if err == nil {
			return status, nil
		}

		var se *statusError
		if errors.As(err, &se) && se.status < http.StatusInternalServerError {
			return status, classify(se)
		}
		if ctx.Err() != nil || errors.Is(err, errMalformedResponse) {
			return status, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
		}

		lastErr = err
		slog.Warn(LogMsgServerError, "endpoint", endpoint, "attempt", attempt, "error", err)
	}

	return 0, fmt.Errorf("%w: max retries exceeded: %v", domain.ErrUpstreamUnavailable, lastErr)
}

func (c *Client) do(ctx context.Context, endpoint, url string, header http.Header, out interface{}) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, metrics.ResultError).Inc()
		slog.Warn(LogMsgRequestFailed, "endpoint", endpoint, "error", err)
		return 0, err
	}
	defer resp.Body.Close()
	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, &statusError{endpoint: endpoint, status: resp.StatusCode}
	}
	if resp.StatusCode == http.StatusNoContent || out == nil {
		return resp.StatusCode, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: %s: %v", errMalformedResponse, endpoint, err)
	}
	return resp.StatusCode, nil
}

// classify maps a client-error status to a domain error
func classify(se *statusError) error {
	switch se.status {
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", domain.ErrUpstreamRateLimited, se)
	case http.StatusNotFound:
		if se.endpoint == EndpointMojang {
			return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, se)
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrUpstreamUnavailable, se)
}
