package gcloudcmd

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// Response Schemas
// =============================================================================

// DeployedVersion is the identity record of one deployed version inside a
// deploy response. Fields beyond the identity triple are ignored.
type DeployedVersion struct {
	ID      string `json:"id"`
	Project string `json:"project"`
	Service string `json:"service"`
}

// DeployResponse is the JSON payload "gcloud app deploy --format json"
// writes to stdout.
type DeployResponse struct {
	Versions []DeployedVersion `json:"versions"`
}

// DescribeResponse is the JSON payload "gcloud app versions describe
// --format json" writes to stdout. Unknown fields are ignored.
type DescribeResponse struct {
	Name           string `json:"name"`
	Runtime        string `json:"runtime"`
	ServiceAccount string `json:"serviceAccount"`
	ServingStatus  string `json:"servingStatus"`
	ID             string `json:"id"`
	VersionURL     string `json:"versionUrl"`
}

// =============================================================================
// Deploy Response Interpretation
// =============================================================================

// ParseDeployResponse decodes the deploy payload, failing with a typed
// response error on malformed JSON.
func ParseDeployResponse(data []byte) (DeployResponse, error) {
	var resp DeployResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return DeployResponse{}, &ResponseError{Op: "deploy", Message: err.Error(), Err: ErrBadJSON}
	}
	return resp, nil
}

// SelectVersion picks the single version the deploy produced.
//
// A single-element versions list is the common case and wins outright. With
// multiple elements the list is filtered by project (when one was requested);
// anything other than exactly one surviving candidate is an unexpected
// response.
func SelectVersion(resp DeployResponse, project string) (DeployedVersion, error) {
	switch len(resp.Versions) {
	case 0:
		return DeployedVersion{}, &ResponseError{Op: "deploy", Err: ErrNoVersions}
	case 1:
		return resp.Versions[0], nil
	}

	if project == "" {
		return DeployedVersion{}, &ResponseError{
			Op:      "deploy",
			Message: fmt.Sprintf("%d versions returned and no project to disambiguate", len(resp.Versions)),
			Err:     ErrAmbiguousVersion,
		}
	}

	var matches []DeployedVersion
	for _, v := range resp.Versions {
		if v.Project == project {
			matches = append(matches, v)
		}
	}
	if len(matches) != 1 {
		return DeployedVersion{}, &ResponseError{
			Op:      "deploy",
			Message: fmt.Sprintf("%d of %d versions match project %q", len(matches), len(resp.Versions), project),
			Err:     ErrAmbiguousVersion,
		}
	}
	return matches[0], nil
}

// =============================================================================
// Describe Response Interpretation
// =============================================================================

// ParseDescribeResponse decodes the describe payload, failing with a typed
// response error on malformed JSON.
func ParseDescribeResponse(data []byte) (DescribeResponse, error) {
	var resp DescribeResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return DescribeResponse{}, &ResponseError{Op: "describe", Message: err.Error(), Err: ErrBadJSON}
	}
	return resp, nil
}

// Outputs are the named results published to the calling pipeline.
type Outputs struct {
	Name                string
	Runtime             string
	ServiceAccountEmail string
	ServingStatus       string
	VersionID           string
	VersionURL          string
}

// OutputKeys is the publication order of the named outputs.
var OutputKeys = []string{
	"name",
	"runtime",
	"service_account_email",
	"serving_status",
	"version_id",
	"version_url",
	"url",
}

// Map renders the outputs under their published names. The generic "url"
// key duplicates version_url.
func (o Outputs) Map() map[string]string {
	return map[string]string{
		"name":                  o.Name,
		"runtime":               o.Runtime,
		"service_account_email": o.ServiceAccountEmail,
		"serving_status":        o.ServingStatus,
		"version_id":            o.VersionID,
		"version_url":           o.VersionURL,
		"url":                   o.VersionURL,
	}
}

// InterpretDescribe maps a describe response onto the published outputs.
// Missing name or id is a hard failure - downstream consumers depend on
// both. Every other field passes through verbatim, empty allowed.
func InterpretDescribe(resp DescribeResponse) (Outputs, error) {
	if resp.Name == "" {
		return Outputs{}, &ResponseError{Op: "describe", Message: "name", Err: ErrMissingField}
	}
	if resp.ID == "" {
		return Outputs{}, &ResponseError{Op: "describe", Message: "id", Err: ErrMissingField}
	}
	return Outputs{
		Name:                resp.Name,
		Runtime:             resp.Runtime,
		ServiceAccountEmail: resp.ServiceAccount,
		ServingStatus:       resp.ServingStatus,
		VersionID:           resp.ID,
		VersionURL:          resp.VersionURL,
	}, nil
}
