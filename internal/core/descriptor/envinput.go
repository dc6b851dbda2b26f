package descriptor

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
)

// =============================================================================
// env_vars Input Parsing
// =============================================================================

// ParseEnvVarsInput parses the raw env_vars invocation input into a mapping.
//
// The input is a list of KEY=VALUE pairs separated by commas or newlines,
// with optional single or double quoting of values (quoted values may contain
// commas). Pair parsing, including quote and escape handling, is delegated to
// godotenv. An empty or whitespace-only input yields nil.
//
// Example:
//
//	ParseEnvVarsInput(`FOO=bar,ZIP="zap,zop"`)
//	// Returns: {"FOO": "bar", "ZIP": "zap,zop"}
func ParseEnvVarsInput(raw string) (map[string]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	pairs := splitPairs(raw)
	for _, p := range pairs {
		if !strings.Contains(p, "=") {
			return nil, fmt.Errorf("%w: %q", ErrMalformedPair, p)
		}
	}

	vars, err := godotenv.Unmarshal(strings.Join(pairs, "\n"))
	if err != nil {
		return nil, fmt.Errorf("parse env_vars: %w", err)
	}
	return vars, nil
}

// splitPairs splits raw on commas and newlines that sit outside quotes,
// trimming each pair and dropping empties.
func splitPairs(raw string) []string {
	var (
		pairs   []string
		current strings.Builder
		quote   rune
	)

	flush := func() {
		if p := strings.TrimSpace(current.String()); p != "" {
			pairs = append(pairs, p)
		}
		current.Reset()
	}

	for _, r := range raw {
		switch {
		case quote != 0:
			current.WriteRune(r)
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
			current.WriteRune(r)
		case r == ',' || r == '\n':
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return pairs
}
