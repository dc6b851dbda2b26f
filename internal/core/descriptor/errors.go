// Package descriptor provides pure functions for locating App Engine
// deployment descriptors (app.yaml files) and merging environment variables
// into them. All functions operate on externally supplied bytes - they know
// nothing about the filesystem beyond "read this path's bytes".
package descriptor

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrNotFound indicates no qualifying descriptor exists among the
	// candidates searched.
	ErrNotFound = errors.New("could not find app.yaml descriptor")

	// ErrNotMapping indicates a document parsed but is not a YAML mapping.
	ErrNotMapping = errors.New("descriptor is not a YAML mapping")

	// ErrMalformedPair indicates an env_vars entry without a KEY=VALUE shape.
	ErrMalformedPair = errors.New("malformed KEY=VALUE pair")
)

// LocateError reports a failed descriptor search, naming what was searched.
type LocateError struct {
	Searched []string // Candidate paths considered, in input order
	Err      error
}

func (e *LocateError) Error() string {
	if len(e.Searched) == 0 {
		return fmt.Sprintf("%v: no candidates given", e.Err)
	}
	return fmt.Sprintf("%v: searched %s", e.Err, strings.Join(e.Searched, ", "))
}

func (e *LocateError) Unwrap() error {
	return e.Err
}
