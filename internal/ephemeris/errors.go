package ephemeris

import (
	"errors"
	"fmt"
)

// ErrorCategory is the normalized failure taxonomy for ephemeris calls.
type ErrorCategory string

const (
	// ErrorTimeout indicates the service took too long to respond
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorBadData indicates the service returned invalid or malformed data
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorProviderOutage indicates the service is unavailable
	ErrorProviderOutage ErrorCategory = "provider_outage"

	// ErrorContractMismatch indicates the request shape was rejected
	ErrorContractMismatch ErrorCategory = "contract_mismatch"

	// ErrorRateLimited indicates too many requests
	ErrorRateLimited ErrorCategory = "rate_limited"

	// ErrorInternal indicates an unexpected local error
	ErrorInternal ErrorCategory = "internal"
)

// ProviderError wraps ephemeris failures with normalized categorization.
type ProviderError struct {
	Category   ErrorCategory
	Operation  string
	Message    string
	Underlying error
	Retryable  bool
}

func (e *ProviderError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("ephemeris %s [%s]: %s: %v", e.Operation, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("ephemeris %s [%s]: %s", e.Operation, e.Category, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Underlying
}

// NewProviderError creates a categorized error. Timeouts, outages and rate
// limiting are retryable.
func NewProviderError(category ErrorCategory, operation, message string, underlying error) *ProviderError {
	retryable := category == ErrorTimeout ||
		category == ErrorProviderOutage ||
		category == ErrorRateLimited

	return &ProviderError{
		Category:   category,
		Operation:  operation,
		Message:    message,
		Underlying: underlying,
		Retryable:  retryable,
	}
}

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return false
}

// GetCategory extracts the error category from an error.
func GetCategory(err error) ErrorCategory {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Category
	}
	return ErrorInternal
}

// countsAgainstBreaker reports whether a failure says the service is unhealthy
// rather than that the request was wrong.
func countsAgainstBreaker(category ErrorCategory) bool {
	switch category {
	case ErrorTimeout, ErrorProviderOutage, ErrorBadData:
		return true
	default:
		return false
	}
}
