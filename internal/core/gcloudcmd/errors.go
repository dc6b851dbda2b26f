// Package gcloudcmd provides pure functions for assembling gcloud App Engine
// command invocations and interpreting the JSON payloads gcloud returns.
// No I/O, no process execution - the imperative shell (internal/shell/gcloud)
// runs what this package builds.
package gcloudcmd

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// Input validation errors - fail before any external process runs.
	ErrUnknownComponent = errors.New("unknown gcloud component")
	ErrNoDeliverables   = errors.New("at least one deliverable is required")
	ErrInvalidPromote   = errors.New("promote must be \"true\", \"false\", or empty")

	// Response interpretation errors - gcloud exited zero but its output
	// was not what the deploy flow needs.
	ErrBadJSON          = errors.New("output is not valid JSON")
	ErrNoVersions       = errors.New("deploy response contains no versions")
	ErrAmbiguousVersion = errors.New("deploy response version is ambiguous")
	ErrMissingField     = errors.New("describe response is missing a required field")
)

// ResponseError wraps response interpretation failures with the operation
// that produced the payload.
type ResponseError struct {
	Op      string // "deploy" or "describe"
	Message string
	Err     error
}

func (e *ResponseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Message)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}
