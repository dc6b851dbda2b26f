package gcloud

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The production runner is exercised against sh rather than gcloud itself;
// the contract under test is capture and exit-code mapping, not gcloud.

func shRunner() *CLI {
	return NewCLI("sh", nil)
}

// =============================================================================
// Run Tests
// =============================================================================

func TestRun_CapturesStdout(t *testing.T) {
	res, err := shRunner().Run(context.Background(), []string{"-c", "printf hello"}, "")
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "hello", res.Stdout)
	assert.Equal(t, "", res.Stderr)
}

func TestRun_CapturesStderrAndExitCode(t *testing.T) {
	res, err := shRunner().Run(context.Background(), []string{"-c", "echo broken >&2; exit 3"}, "")
	require.NoError(t, err)
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "broken\n", res.Stderr)
}

func TestRun_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	res, err := shRunner().Run(context.Background(), []string{"-c", "pwd"}, dir)
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Stdout, dir)
}

func TestRun_BinaryMissing(t *testing.T) {
	cli := NewCLI("definitely-not-a-real-binary-1f2e3d", nil)
	_, err := cli.Run(context.Background(), []string{"--help"}, "")
	assert.Error(t, err)
}

// =============================================================================
// Toolchain Tests
// =============================================================================

func TestEnsureInstalled_Found(t *testing.T) {
	assert.NoError(t, shRunner().EnsureInstalled())
}

func TestEnsureInstalled_Missing(t *testing.T) {
	cli := NewCLI("definitely-not-a-real-binary-1f2e3d", nil)
	err := cli.EnsureInstalled()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotInstalled)
}

func TestEnsureComponent_EmptyIsNoOp(t *testing.T) {
	cli := NewCLI("definitely-not-a-real-binary-1f2e3d", nil)
	assert.NoError(t, cli.EnsureComponent(context.Background(), ""))
}

// =============================================================================
// ToolError Tests
// =============================================================================

func TestToolError_MessageIncludesStderr(t *testing.T) {
	err := &ToolError{
		Args:     []string{"app", "deploy", "app.yaml"},
		ExitCode: 1,
		Stderr:   "ERROR: (gcloud.app.deploy) Permissions error\n",
	}
	assert.Equal(t, "gcloud app deploy app.yaml: exit status 1: ERROR: (gcloud.app.deploy) Permissions error", err.Error())
}

func TestToolError_MessageWithoutStderr(t *testing.T) {
	err := &ToolError{Args: []string{"auth", "list"}, ExitCode: 2}
	assert.Equal(t, "gcloud auth list: exit status 2", err.Error())
}
