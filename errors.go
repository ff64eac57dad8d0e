package houdiniswap

import "fmt"

// Error is the generic SDK error. It wraps failures that do not fit a more
// specific kind, such as an unexpected error surfacing after all retries.
type Error struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("houdiniswap: %s: %v", e.Message, e.Cause)
	}
	return "houdiniswap: " + e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// ValidationError reports malformed caller input. It is never retried and is
// surfaced before any network activity takes place.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return "houdiniswap: validation: " + e.Message
}

func newValidationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// AuthenticationError reports a credential rejected by the server (HTTP 401).
// It is never retried.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return "houdiniswap: authentication: " + e.Message
}

// APIError reports a request the server rejected after it was well formed.
// StatusCode is zero when the failure is client-side response shape checking
// rather than an HTTP status. Response carries the decoded error payload when
// the body was valid JSON, for programmatic branching.
type APIError struct {
	Message    string
	StatusCode int
	Response   any
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("houdiniswap: api error (status %d): %s", e.StatusCode, e.Message)
	}
	return "houdiniswap: api error: " + e.Message
}

// NetworkError reports a transport-level failure (DNS, connection reset,
// timeout). It is surfaced only after the configured retries are exhausted,
// wrapping the last underlying failure.
type NetworkError struct {
	Message string
	Cause   error
}

func (e *NetworkError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("houdiniswap: network: %s: %v", e.Message, e.Cause)
	}
	return "houdiniswap: network: " + e.Message
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// PollTimeoutError reports that a polling helper exhausted its wall-clock
// budget before the target condition was met. LastStatus is the most recently
// observed transaction status, kept for diagnostics.
type PollTimeoutError struct {
	Message    string
	LastStatus TransactionStatus
}

func (e *PollTimeoutError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("houdiniswap: poll timeout: %s (last status: %s)", e.Message, e.LastStatus)
}
