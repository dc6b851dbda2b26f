// Package engine sequences one App Engine deployment: toolchain checks,
// descriptor resolution, env var merging, the gcloud deploy and describe
// invocations, and output publication. Each run is independent; the engine
// holds no state across runs.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/artpar/gaedeploy/internal/core/deliverable"
	"github.com/artpar/gaedeploy/internal/core/descriptor"
	"github.com/artpar/gaedeploy/internal/core/gcloudcmd"
	"github.com/artpar/gaedeploy/internal/shell/gcloud"
	"github.com/artpar/gaedeploy/internal/shell/outputs"
)

// =============================================================================
// Collaborators
// =============================================================================

// Toolchain prepares the external gcloud installation before any deploy
// command runs. Implementations must be idempotent - re-checking installed
// state is always safe.
type Toolchain interface {
	EnsureInstalled() error
	EnsureAuthenticated(ctx context.Context) error
	EnsureComponent(ctx context.Context, name string) error
}

// =============================================================================
// Inputs / Report
// =============================================================================

// Inputs are the raw invocation inputs, as received from flags or the
// environment. All fields are optional; an empty Deliverables is resolved by
// searching the working directory for a descriptor.
type Inputs struct {
	ProjectID        string
	WorkingDirectory string
	Deliverables     string
	ImageURL         string
	EnvVars          string
	Version          string
	Promote          string
	Flags            string
	Component        string
	DryRun           bool
}

// workingDir is the directory deliverable paths resolve against and the
// child process runs in.
func (in Inputs) workingDir() string {
	if in.WorkingDirectory != "" {
		return in.WorkingDirectory
	}
	return "."
}

// abs resolves a deliverable-relative path for filesystem access.
func (in Inputs) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(in.workingDir(), path)
}

// Report is the outcome of a run. Outputs is nil for dry runs; DeployArgs
// is populated once assembly succeeded.
type Report struct {
	DeployArgs []string
	Outputs    map[string]string
	DryRun     bool
}

// =============================================================================
// Deployer
// =============================================================================

// Deployer orchestrates one deployment per Run call. All collaborators are
// injected; there is no package-level state, so concurrent runs (and tests)
// are isolated.
type Deployer struct {
	runner    gcloud.Runner
	toolchain Toolchain
	publisher outputs.Publisher
	fs        FS
	logger    *slog.Logger
}

// NewDeployer wires a Deployer. A nil fs defaults to the real filesystem;
// a nil logger defaults to slog.Default().
func NewDeployer(runner gcloud.Runner, toolchain Toolchain, publisher outputs.Publisher, fs FS, logger *slog.Logger) *Deployer {
	if fs == nil {
		fs = OSFS{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Deployer{
		runner:    runner,
		toolchain: toolchain,
		publisher: publisher,
		fs:        fs,
		logger:    logger,
	}
}

// Run executes the deployment flow to completion. External invocations are
// strictly sequential: describe starts only after the deploy output is
// parsed, and each external call happens exactly once - failures surface,
// they are not retried.
func (d *Deployer) Run(ctx context.Context, in Inputs) (*Report, error) {
	// 1. Validate the component selection before anything external runs.
	component, err := gcloudcmd.ParseComponent(in.Component)
	if err != nil {
		return nil, err
	}

	// 2. Parse the env var overrides; malformed input is also an input
	// error, not a deploy failure.
	overrides, err := descriptor.ParseEnvVarsInput(in.EnvVars)
	if err != nil {
		return nil, err
	}

	// 3. Toolchain readiness. Skipped for dry runs, which never invoke the
	// tool.
	if !in.DryRun {
		if err := d.ensureTool(ctx, component); err != nil {
			return nil, err
		}
	}

	// 4. Resolve deliverables and, when env merging needs one, the primary
	// descriptor.
	deliverables, primary, err := d.resolveDeliverables(in, len(overrides) > 0)
	if err != nil {
		return nil, err
	}

	// 5. Merge env var overrides into a working copy of the descriptor.
	// The original is never mutated; the copy is removed on every path.
	// Dry runs skip the write entirely so the workspace stays untouched.
	if len(overrides) > 0 && !in.DryRun {
		workingCopy, err := d.writeWorkingCopy(in, primary, overrides)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := d.fs.Remove(in.abs(workingCopy)); err != nil {
				d.logger.Warn("failed to remove descriptor working copy", "path", workingCopy, "error", err)
			}
		}()
		deliverables = replacePath(deliverables, primary, workingCopy)
	}

	// 6. Assemble the deploy invocation.
	deployArgs, err := gcloudcmd.DeployArgs(gcloudcmd.DeployRequest{
		Deliverables: deliverables,
		Project:      in.ProjectID,
		ImageURL:     in.ImageURL,
		Version:      in.Version,
		Promote:      in.Promote,
		Flags:        in.Flags,
		Component:    component,
	})
	if err != nil {
		return nil, err
	}

	if in.DryRun {
		d.logger.Info("dry run, not deploying", "args", deployArgs)
		return &Report{DeployArgs: deployArgs, DryRun: true}, nil
	}

	// 7. Deploy, then read the version identity out of the response.
	d.logger.Info("deploying",
		"project", in.ProjectID,
		"deliverables", deliverable.Join(deliverables),
	)
	deployOut, err := d.invoke(ctx, deployArgs, in.WorkingDirectory)
	if err != nil {
		return nil, err
	}
	deployResp, err := gcloudcmd.ParseDeployResponse([]byte(deployOut))
	if err != nil {
		return nil, err
	}
	version, err := gcloudcmd.SelectVersion(deployResp, in.ProjectID)
	if err != nil {
		return nil, err
	}
	d.logger.Info("deployed version",
		"version_id", version.ID,
		"service", version.Service,
		"project", version.Project,
	)

	// 8. Describe the deployed version. Must not start before the deploy
	// response is parsed - it is scoped to the identity deploy returned.
	describeOut, err := d.invoke(ctx, gcloudcmd.DescribeArgs(version, component), in.WorkingDirectory)
	if err != nil {
		return nil, err
	}
	describeResp, err := gcloudcmd.ParseDescribeResponse([]byte(describeOut))
	if err != nil {
		return nil, err
	}
	out, err := gcloudcmd.InterpretDescribe(describeResp)
	if err != nil {
		return nil, err
	}

	// 9. Publish every output exactly once.
	values := out.Map()
	if err := d.publisher.Publish(gcloudcmd.OutputKeys, values); err != nil {
		return nil, fmt.Errorf("publish outputs: %w", err)
	}
	d.logger.Info("outputs published", "version_url", out.VersionURL)

	return &Report{DeployArgs: deployArgs, Outputs: values}, nil
}

// ensureTool verifies installation, credentials, and the optional component.
func (d *Deployer) ensureTool(ctx context.Context, component gcloudcmd.Component) error {
	if err := d.toolchain.EnsureInstalled(); err != nil {
		return err
	}
	if err := d.toolchain.EnsureAuthenticated(ctx); err != nil {
		return err
	}
	return d.toolchain.EnsureComponent(ctx, string(component))
}

// resolveDeliverables parses the deliverables input and, when needPrimary is
// set, locates the primary descriptor among them for env merging.
//
// With an empty input the working directory listing is searched and the
// discovered descriptor becomes the sole deliverable. The listing is sorted
// with the exact names app.yaml and app.yml hoisted to the front, so the
// canonical descriptor beats variants like app-dev.yaml. Paths are returned
// as given (relative to the working directory) - gcloud resolves them
// against the directory it runs in.
func (d *Deployer) resolveDeliverables(in Inputs, needPrimary bool) (paths []string, primary string, err error) {
	read := func(path string) ([]byte, error) {
		return d.fs.ReadFile(in.abs(path))
	}

	paths = deliverable.Parse(in.Deliverables)
	if len(paths) == 0 {
		names, err := d.fs.ListDir(in.workingDir())
		if err != nil {
			return nil, "", fmt.Errorf("list working directory: %w", err)
		}
		found, err := descriptor.Find(prioritizeDescriptors(names), read)
		if err != nil {
			return nil, "", err
		}
		d.logger.Debug("discovered descriptor", "path", found)
		return []string{found}, found, nil
	}

	if !needPrimary {
		return paths, "", nil
	}
	primary, err = descriptor.Find(paths, read)
	if err != nil {
		return nil, "", err
	}
	return paths, primary, nil
}

// writeWorkingCopy reads the primary descriptor, merges overrides into its
// env_variables mapping, and writes the result next to the original under a
// fresh app-*.yaml name. The returned path is relative like the primary it
// replaces in the deliverable list.
func (d *Deployer) writeWorkingCopy(in Inputs, primary string, overrides map[string]string) (string, error) {
	data, err := d.fs.ReadFile(in.abs(primary))
	if err != nil {
		return "", fmt.Errorf("read descriptor %s: %w", primary, err)
	}
	doc, err := descriptor.Parse(data)
	if err != nil {
		return "", fmt.Errorf("descriptor %s: %w", primary, err)
	}

	doc.SetEnvVariables(descriptor.MergeEnvVars(doc.EnvVariables(), overrides))

	merged, err := doc.Marshal()
	if err != nil {
		return "", fmt.Errorf("serialize descriptor: %w", err)
	}

	copyPath := filepath.Join(filepath.Dir(primary), fmt.Sprintf("app-%s.yaml", uuid.NewString()))
	if err := d.fs.WriteFile(in.abs(copyPath), merged, 0o644); err != nil {
		return "", fmt.Errorf("write descriptor working copy: %w", err)
	}
	d.logger.Debug("wrote descriptor working copy", "original", primary, "copy", copyPath)
	return copyPath, nil
}

// invoke runs one gcloud invocation and maps a non-zero exit to a ToolError
// carrying the captured stderr.
func (d *Deployer) invoke(ctx context.Context, args []string, dir string) (string, error) {
	res, err := d.runner.Run(ctx, args, dir)
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", &gcloud.ToolError{Args: args, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return res.Stdout, nil
}

// prioritizeDescriptors reorders a sorted listing so the canonical
// descriptor names are tried first, ahead of suffixed variants.
func prioritizeDescriptors(names []string) []string {
	out := make([]string, 0, len(names))
	for _, canonical := range []string{"app.yaml", "app.yml"} {
		for _, n := range names {
			if n == canonical {
				out = append(out, n)
			}
		}
	}
	for _, n := range names {
		if n != "app.yaml" && n != "app.yml" {
			out = append(out, n)
		}
	}
	return out
}

// replacePath swaps old for repl in a fresh slice, preserving order.
func replacePath(paths []string, old, repl string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		if p == old {
			out[i] = repl
		} else {
			out[i] = p
		}
	}
	return out
}
