package engine

import (
	"os"
	"sort"
)

// =============================================================================
// Filesystem Boundary
// =============================================================================

// FS is the minimal filesystem surface descriptor resolution needs. The
// engine touches files only through it, which keeps orchestration tests
// hermetic.
type FS interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	Remove(path string) error
	// ListDir returns the names of plain files in dir, sorted
	// lexicographically. Sorting makes descriptor discovery deterministic
	// regardless of OS directory iteration order.
	ListDir(dir string) ([]string, error)
}

// OSFS is the production FS backed by the os package.
type OSFS struct{}

func (OSFS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

func (OSFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (OSFS) Remove(path string) error { return os.Remove(path) }

func (OSFS) ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
