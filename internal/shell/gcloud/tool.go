package gcloud

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// =============================================================================
// Toolchain Preparation
// =============================================================================

// EnsureInstalled verifies the binary is resolvable on PATH.
func (c *CLI) EnsureInstalled() error {
	if _, err := exec.LookPath(c.bin); err != nil {
		return fmt.Errorf("%w: %v", ErrNotInstalled, err)
	}
	return nil
}

// EnsureAuthenticated verifies an active gcloud credential exists. The
// mechanics of obtaining credentials belong to the surrounding environment
// (gcloud auth, workload identity); this only checks the result.
func (c *CLI) EnsureAuthenticated(ctx context.Context) error {
	res, err := c.Run(ctx, []string{"auth", "list", "--filter", "status:ACTIVE", "--format", "value(account)"}, "")
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return &ToolError{Args: []string{"auth", "list"}, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	if strings.TrimSpace(res.Stdout) == "" {
		return ErrNotAuthenticated
	}
	return nil
}

// EnsureComponent installs the named gcloud component. Installation is
// idempotent on the gcloud side, so re-checking an installed component is
// safe and cheap. An empty name is a no-op.
func (c *CLI) EnsureComponent(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}
	args := []string{"components", "install", name, "--quiet"}
	res, err := c.Run(ctx, args, "")
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return &ToolError{Args: args, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return nil
}
