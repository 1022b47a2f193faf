package entity

import (
	"fmt"
)

// AuthError means the credential exchange with the provider failed.
// Every subsequent upstream call will fail until it is resolved.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("auth failed: %s", e.Reason)
}

func (e *AuthError) Unwrap() error { return e.Err }

// UpstreamError is a non-timeout provider request failure, recoverable
// at the next scheduled cycle
type UpstreamError struct {
	Operation  string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream %s failed: status %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("upstream %s failed: %v", e.Operation, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// TimeoutError means the provider did not answer in time. Same retry
// policy as UpstreamError but kept distinct for metrics and backoff.
type TimeoutError struct {
	Operation string
	Err       error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("upstream %s timed out: %v", e.Operation, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// ValidationError marks a raw offer that failed normalization. It is
// offer-local and never aborts a batch.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid offer: %s %s", e.Field, e.Reason)
}

// PersistenceError wraps a store failure. Record-local on insert,
// fatal on read paths that block a whole report.
type PersistenceError struct {
	Operation string
	Err       error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed: %v", e.Operation, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
