// Package deliverable provides pure functions for parsing deliverable lists.
//
// A deliverable is a path to a deployment descriptor (or related file) passed
// to gcloud. Users supply deliverables as a single free-form string with
// mixed comma/whitespace/newline separators; this package normalizes that
// into an ordered list. All functions are pure - no I/O, no side effects.
package deliverable

import "strings"

// Parse splits a free-form deliverables string into an ordered list of paths.
//
// Behavior:
//   - Splits on any run of commas, newlines, and whitespace
//   - Consecutive separators are treated as a single boundary
//   - Tokens are trimmed; tokens empty after trimming are dropped
//   - Empty or whitespace-only input yields nil (not an error)
//
// Examples:
//
//	Parse("app.yaml,\nfoo.yaml,   bar.yaml")
//	// Returns: ["app.yaml", "foo.yaml", "bar.yaml"]
//
//	Parse("")
//	// Returns: nil
func Parse(input string) []string {
	fields := strings.FieldsFunc(input, isSeparator)

	var paths []string
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		paths = append(paths, f)
	}
	return paths
}

// Join renders a deliverable list back into its canonical comma-separated
// form. Parse(Join(paths)) returns paths unchanged for any Parse output.
func Join(paths []string) string {
	return strings.Join(paths, ",")
}

// isSeparator reports whether r delimits deliverable tokens.
func isSeparator(r rune) bool {
	switch r {
	case ',', '\n', '\r', '\t', ' ':
		return true
	}
	return false
}
