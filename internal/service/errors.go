package service

import "errors"

var (
	// ErrInsufficientData is returned when fewer than two usable price
	// points are available for a fit.
	ErrInsufficientData = errors.New("insufficient price data to fit a trend")

	// ErrInvalidParameter is returned when a strategy parameter is outside
	// its valid range.
	ErrInvalidParameter = errors.New("invalid strategy parameter")

	// ErrExternalService is returned when an external provider call fails
	// or times out.
	ErrExternalService = errors.New("external service failure")

	// ErrDuplicateExecution is returned when the same strategy is executed
	// twice within the idempotency window.
	ErrDuplicateExecution = errors.New("strategy execution already in progress")
)
