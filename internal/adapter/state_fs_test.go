package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	m "pintrace.dev/pkg/pintrace/internal/model"
)

func TestLocalStateFS_ResolvePath(t *testing.T) {
	fs := NewLocalStateFS()

	require.Equal(t, m.Path(filepath.Join("states", "left.csv")), fs.ResolvePath("states", "left"))
	require.Equal(t, m.Path("right.csv"), fs.ResolvePath(".", "right"))
}

func TestLocalStateFS_ReadState(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "left.csv"), []byte("A1,A2\n"), 0o644))

	fs := NewLocalStateFS()

	text, err := fs.ReadState(fs.ResolvePath(m.Path(dir), "left"))
	require.NoError(t, err)
	require.Equal(t, "A1,A2\n", text)
}

func TestLocalStateFS_ReadState_Missing(t *testing.T) {
	fs := NewLocalStateFS()

	_, err := fs.ReadState(fs.ResolvePath(m.Path(t.TempDir()), "gone"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "gone.csv")
}
