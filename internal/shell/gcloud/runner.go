// Package gcloud is the imperative shell around the external gcloud binary:
// locating it, preparing components and credentials, and executing
// invocations assembled by internal/core/gcloudcmd.
package gcloud

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
)

// =============================================================================
// Runner
// =============================================================================

// Result captures one finished gcloud invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes a single external invocation to completion. A non-zero
// tool exit is reported through Result, not through the error return; the
// error return is reserved for failures to run the tool at all.
type Runner interface {
	Run(ctx context.Context, args []string, dir string) (Result, error)
}

// CLI is the production Runner backed by the local gcloud binary.
type CLI struct {
	bin    string
	logger *slog.Logger
}

// NewCLI creates a Runner for the given binary path ("gcloud" when empty).
func NewCLI(bin string, logger *slog.Logger) *CLI {
	if bin == "" {
		bin = "gcloud"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CLI{bin: bin, logger: logger}
}

// Run executes the binary with args, capturing stdout and stderr in full.
// dir, when non-empty, becomes the working directory of the child process.
func (c *CLI) Run(ctx context.Context, args []string, dir string) (Result, error) {
	cmd := exec.CommandContext(ctx, c.bin, args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.logger.Debug("running gcloud", "args", args, "dir", dir)

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			c.logger.Debug("gcloud exited non-zero", "exit_code", res.ExitCode)
			return res, nil
		}
		return Result{}, fmt.Errorf("run %s: %w", c.bin, err)
	}
	return res, nil
}
