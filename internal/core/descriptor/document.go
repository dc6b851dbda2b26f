package descriptor

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// Descriptor Document
// =============================================================================

// envVariablesKey is the descriptor key holding the env var mapping.
const envVariablesKey = "env_variables"

// Document is a parsed app.yaml descriptor. All keys other than
// env_variables are carried through untouched; only the env var mapping is
// given typed access.
type Document struct {
	root map[string]any
}

// Parse decodes descriptor bytes into a Document. The document must be a
// non-empty YAML mapping: lists, scalars, and invalid YAML fail with the
// decode error, and an empty document fails with ErrNotMapping.
func Parse(data []byte) (*Document, error) {
	var root map[string]any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse descriptor: %w", err)
	}
	if root == nil {
		return nil, ErrNotMapping
	}
	return &Document{root: root}, nil
}

// EnvVariables returns the descriptor's env_variables mapping as strings.
// A missing or empty mapping yields an empty map. Non-string scalar values
// (YAML integers, booleans) are rendered with their canonical string form.
func (d *Document) EnvVariables() map[string]string {
	vars := make(map[string]string)
	raw, ok := d.root[envVariablesKey].(map[string]any)
	if !ok {
		return vars
	}
	for k, v := range raw {
		vars[k] = fmt.Sprint(v)
	}
	return vars
}

// SetEnvVariables replaces the descriptor's env_variables mapping. The rest
// of the document is untouched.
func (d *Document) SetEnvVariables(vars map[string]string) {
	m := make(map[string]any, len(vars))
	for k, v := range vars {
		m[k] = v
	}
	d.root[envVariablesKey] = m
}

// Marshal serializes the document back to YAML. gopkg.in/yaml.v3 emits map
// keys in sorted order, so output is deterministic for a given document.
func (d *Document) Marshal() ([]byte, error) {
	return yaml.Marshal(d.root)
}

// Keys returns the document's top-level keys in sorted order. Used by
// logging and tests; not part of the merge contract.
func (d *Document) Keys() []string {
	keys := make([]string, 0, len(d.root))
	for k := range d.root {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
