package gcloud

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrNotInstalled indicates the gcloud binary was not found on PATH.
	ErrNotInstalled = errors.New("gcloud is not installed")

	// ErrNotAuthenticated indicates no active gcloud credential exists.
	ErrNotAuthenticated = errors.New("gcloud has no active credentials")
)

// ToolError reports a gcloud invocation that exited non-zero. The captured
// standard-error text is carried verbatim in the message.
type ToolError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("gcloud %s: exit status %d", strings.Join(e.Args, " "), e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		return msg + ": " + s
	}
	return msg
}
