package descriptor

import (
	"path/filepath"
	"regexp"
)

// =============================================================================
// Descriptor Location
// =============================================================================

// appYamlPattern matches base filenames of App Engine descriptors: "app"
// optionally followed by a suffix, ending in a YAML extension. Examples:
// app.yaml, app.yml, app-dev.yaml, app.prod.yaml.
var appYamlPattern = regexp.MustCompile(`^app[\w.-]*\.ya?ml$`)

// IsAppYaml reports whether the base filename of path looks like an App
// Engine descriptor. Content is not inspected.
func IsAppYaml(path string) bool {
	return appYamlPattern.MatchString(filepath.Base(path))
}

// ReadFunc supplies file contents for a candidate path during Find.
type ReadFunc func(path string) ([]byte, error)

// Find identifies the primary deployment descriptor among candidates.
//
// Candidates are filtered twice, preserving input order:
//  1. Base filename must match the app*.yaml pattern.
//  2. Contents (via read) must parse as a YAML mapping. Unreadable or
//     unparsable candidates are skipped, not fatal.
//
// The first surviving candidate wins; callers are responsible for passing
// candidates in priority order (e.g. app.yaml before app-dev.yaml). The
// candidate slice is never mutated. Zero survivors yields a *LocateError
// wrapping ErrNotFound that names every candidate considered.
func Find(candidates []string, read ReadFunc) (string, error) {
	for _, path := range candidates {
		if !IsAppYaml(path) {
			continue
		}
		data, err := read(path)
		if err != nil {
			continue
		}
		if _, err := Parse(data); err != nil {
			continue
		}
		return path, nil
	}
	return "", &LocateError{Searched: candidates, Err: ErrNotFound}
}
