package gcloudcmd

import (
	"fmt"
	"strings"

	shellwords "github.com/mattn/go-shellwords"
)

// =============================================================================
// Passthrough Flag Tokenization
// =============================================================================

// TokenizeFlags splits a free-form flags string into the argument tokens
// appended verbatim after the structured deploy flags.
//
// Rules:
//   - Tokens are separated by whitespace or commas outside quotes
//   - Quoting follows shell conventions (via go-shellwords), so a quoted
//     value may contain spaces or commas
//   - A "--flag=value" token is expanded to "--flag", "value"
//   - Relative order is preserved; empty input yields nil
//
// Example:
//
//	TokenizeFlags("--log-http   --foo=bar")
//	// Returns: ["--log-http", "--foo", "bar"]
func TokenizeFlags(raw string) ([]string, error) {
	normalized := normalizeCommas(raw)
	if strings.TrimSpace(normalized) == "" {
		return nil, nil
	}

	words, err := shellwords.Parse(normalized)
	if err != nil {
		return nil, fmt.Errorf("tokenize flags %q: %w", raw, err)
	}

	var tokens []string
	for _, w := range words {
		if strings.HasPrefix(w, "--") {
			if name, value, ok := strings.Cut(w, "="); ok {
				tokens = append(tokens, name, value)
				continue
			}
		}
		tokens = append(tokens, w)
	}
	return tokens, nil
}

// normalizeCommas replaces commas outside quotes with spaces so that
// comma-separated flag lists tokenize the same as whitespace-separated ones.
func normalizeCommas(raw string) string {
	var (
		out   strings.Builder
		quote rune
	)
	for _, r := range raw {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
			out.WriteRune(r)
		case r == '\'' || r == '"':
			quote = r
			out.WriteRune(r)
		case r == ',':
			out.WriteRune(' ')
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}
