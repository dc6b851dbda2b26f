// Package outputs publishes the named deploy results to the calling
// pipeline, either through a GitHub-Actions-style output file or to stdout.
package outputs

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
)

// =============================================================================
// Publisher
// =============================================================================

// Publisher writes named outputs exactly once, in the order given by keys.
type Publisher interface {
	Publish(keys []string, values map[string]string) error
}

// FileWriter appends key=value lines to an output file, following the
// $GITHUB_OUTPUT contract: plain "key=value" for single-line values and the
// "key<<DELIM" heredoc form for multiline values.
type FileWriter struct {
	Path string
}

// Publish appends every key in order. Keys absent from values are written
// with an empty value so consumers always see the full output set.
func (w *FileWriter) Publish(keys []string, values map[string]string) error {
	f, err := os.OpenFile(w.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer f.Close()

	if err := writeAll(f, keys, values); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	return nil
}

// StdoutWriter prints outputs as key=value lines, one per line.
type StdoutWriter struct {
	Out io.Writer
}

func (w *StdoutWriter) Publish(keys []string, values map[string]string) error {
	out := w.Out
	if out == nil {
		out = os.Stdout
	}
	return writeAll(out, keys, values)
}

func writeAll(dst io.Writer, keys []string, values map[string]string) error {
	for _, k := range keys {
		if err := writeOne(dst, k, values[k]); err != nil {
			return err
		}
	}
	return nil
}

func writeOne(dst io.Writer, key, value string) error {
	if !strings.Contains(value, "\n") {
		_, err := fmt.Fprintf(dst, "%s=%s\n", key, value)
		return err
	}
	// Multiline values use the heredoc form with a collision-proof delimiter.
	delim := "ghadelimiter_" + uuid.NewString()
	_, err := fmt.Fprintf(dst, "%s<<%s\n%s\n%s\n", key, delim, value, delim)
	return err
}
