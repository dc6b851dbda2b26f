package outputs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// FileWriter Tests
// =============================================================================

func TestFileWriter_WritesOrderedPairs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output")
	w := &FileWriter{Path: path}

	err := w.Publish([]string{"name", "version_id"}, map[string]string{
		"name":       "apps/p/services/default/versions/v1",
		"version_id": "v1",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "name=apps/p/services/default/versions/v1\nversion_id=v1\n", string(data))
}

func TestFileWriter_AppendsToExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output")
	require.NoError(t, os.WriteFile(path, []byte("earlier=value\n"), 0o644))

	w := &FileWriter{Path: path}
	require.NoError(t, w.Publish([]string{"url"}, map[string]string{"url": "https://x"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "earlier=value\nurl=https://x\n", string(data))
}

func TestFileWriter_MissingKeyWrittenEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output")
	w := &FileWriter{Path: path}

	require.NoError(t, w.Publish([]string{"runtime"}, map[string]string{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "runtime=\n", string(data))
}

func TestFileWriter_MultilineValueUsesHeredoc(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output")
	w := &FileWriter{Path: path}

	require.NoError(t, w.Publish([]string{"message"}, map[string]string{"message": "line one\nline two"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "message<<ghadelimiter_")
	assert.Contains(t, text, "line one\nline two\n")

	// Delimiter opens and closes.
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	delim := strings.SplitN(lines[0], "<<", 2)[1]
	assert.Equal(t, delim, lines[len(lines)-1])
}

// =============================================================================
// StdoutWriter Tests
// =============================================================================

func TestStdoutWriter_WritesToGivenWriter(t *testing.T) {
	var sb strings.Builder
	w := &StdoutWriter{Out: &sb}

	require.NoError(t, w.Publish([]string{"a", "b"}, map[string]string{"a": "1", "b": "2"}))
	assert.Equal(t, "a=1\nb=2\n", sb.String())
}
