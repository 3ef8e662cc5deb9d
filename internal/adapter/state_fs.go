package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	m "pintrace.dev/pkg/pintrace/internal/model"
)

// stateExtension is appended to the extension-free base names given on the
// command line, matching the original data layout (left.csv, right.csv...).
const stateExtension = ".csv"

// StateFS resolves and reads per-switch state files. It hides direct os
// access so the workflow can be tested without touching the disk.
type StateFS interface {
	// ResolvePath maps an extension-free base name to the expected state
	// file path under dir.
	ResolvePath(dir m.Path, base m.Path) m.Path

	// ReadState reads a state file in one scoped acquisition: open, fully
	// read, close. A missing file is fatal and reported with the expected
	// path.
	ReadState(path m.Path) (string, error)
}

// LocalStateFS is the filesystem-backed StateFS implementation.
type LocalStateFS struct{}

// NewLocalStateFS constructs a LocalStateFS ready to be wired into the
// workflow.
func NewLocalStateFS() *LocalStateFS {
	return &LocalStateFS{}
}

// ResolvePath joins dir and base and appends the state file extension.
func (a *LocalStateFS) ResolvePath(dir m.Path, base m.Path) m.Path {
	return m.Path(filepath.Join(string(dir), string(base)+stateExtension))
}

// ReadState loads the state file contents from disk.
func (a *LocalStateFS) ReadState(path m.Path) (string, error) {
	content, err := os.ReadFile(string(path))
	if err != nil {
		return "", fmt.Errorf("read state file %s: %w", path, err)
	}

	return string(content), nil
}
