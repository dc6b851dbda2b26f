package descriptor

// =============================================================================
// Environment Variable Merge
// =============================================================================

// MergeEnvVars combines an existing env var mapping with caller overrides.
//
// Behavior:
//   - Every key of existing is copied first, then every key of overrides
//   - On key collision, overrides wins
//   - A nil existing or overrides map is treated as empty
//   - Neither input is mutated; the result is always a fresh map
//
// Examples:
//
//	MergeEnvVars(map[string]string{"EXISTING": "one"}, map[string]string{"FOO": "bar"})
//	// Returns: {"EXISTING": "one", "FOO": "bar"}
//
//	MergeEnvVars(map[string]string{"FOO": "bar"}, map[string]string{"FOO": "zip"})
//	// Returns: {"FOO": "zip"}
func MergeEnvVars(existing, overrides map[string]string) map[string]string {
	merged := make(map[string]string, len(existing)+len(overrides))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}
