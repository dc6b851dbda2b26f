package gcloudcmd

import (
	"fmt"
	"strconv"
)

// =============================================================================
// Deploy Command Assembly
// =============================================================================

// DeployRequest carries the validated inputs the deploy invocation is built
// from. Deliverables must already be parsed (ordered, no empty entries).
type DeployRequest struct {
	Deliverables []string
	Project      string
	ImageURL     string
	Version      string
	Promote      string // tri-state: "true", "false", or "" (defaults to promote)
	Flags        string // free-form passthrough flags
	Component    Component
}

// DeployArgs builds the ordered argument list for "gcloud app deploy".
//
// The order is fixed and documented: component prefix, "app deploy",
// "--quiet --format json", the structured flags (--project, --image-url,
// --version, then exactly one of --promote/--no-promote), the deliverables in
// parsed order, and finally the passthrough flag tokens. Absent or empty
// scalar inputs contribute nothing.
func DeployArgs(req DeployRequest) ([]string, error) {
	if len(req.Deliverables) == 0 {
		return nil, ErrNoDeliverables
	}

	promote, err := resolvePromote(req.Promote)
	if err != nil {
		return nil, err
	}

	passthrough, err := TokenizeFlags(req.Flags)
	if err != nil {
		return nil, err
	}

	args := req.Component.prefix()
	args = append(args, "app", "deploy", "--quiet", "--format", "json")
	if req.Project != "" {
		args = append(args, "--project", req.Project)
	}
	if req.ImageURL != "" {
		args = append(args, "--image-url", req.ImageURL)
	}
	if req.Version != "" {
		args = append(args, "--version", req.Version)
	}
	args = append(args, promote)
	args = append(args, req.Deliverables...)
	args = append(args, passthrough...)
	return args, nil
}

// resolvePromote maps the tri-state promote input to exactly one of the
// promote flag pair. Unset means promote.
func resolvePromote(raw string) (string, error) {
	if raw == "" {
		return "--promote", nil
	}
	promote, err := strconv.ParseBool(raw)
	if err != nil {
		return "", fmt.Errorf("%w: got %q", ErrInvalidPromote, raw)
	}
	if promote {
		return "--promote", nil
	}
	return "--no-promote", nil
}

// =============================================================================
// Describe Command Assembly
// =============================================================================

// DescribeArgs builds the argument list for the follow-up
// "gcloud app versions describe" call, scoped to the version identity the
// deploy response yielded.
func DescribeArgs(v DeployedVersion, component Component) []string {
	args := component.prefix()
	args = append(args,
		"app", "versions", "describe", v.ID,
		"--service", v.Service,
		"--project", v.Project,
		"--format", "json",
	)
	return args
}
