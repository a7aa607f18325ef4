package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Engine precondition errors
	ErrMsgNegativeExperience = "experience must be a non-negative number"
	ErrMsgNegativeLevel      = "level must be non-negative"

	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Lookup errors
	ErrMsgPlayerNotFound = "player not found"
	ErrMsgQuestNotFound  = "quest not found"
	ErrMsgPlanNotFound   = "plan not found"

	// Upstream errors
	ErrMsgUpstreamUnavailable = "upstream service unavailable"
	ErrMsgUpstreamRateLimited = "upstream rate limit exceeded"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrNegativeExperience = errors.New(ErrMsgNegativeExperience)
	ErrNegativeLevel      = errors.New(ErrMsgNegativeLevel)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	ErrPlayerNotFound = errors.New(ErrMsgPlayerNotFound)
	ErrQuestNotFound  = errors.New(ErrMsgQuestNotFound)
	ErrPlanNotFound   = errors.New(ErrMsgPlanNotFound)

	ErrUpstreamUnavailable = errors.New(ErrMsgUpstreamUnavailable)
	ErrUpstreamRateLimited = errors.New(ErrMsgUpstreamRateLimited)

	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
)
