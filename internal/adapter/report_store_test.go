package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	m "pintrace.dev/pkg/pintrace/internal/model"
)

func sampleTopology() m.Topology {
	return m.Topology{
		Surfaces: []m.Surface{
			{Designator: "A", Columns: 3, Rows: 4},
		},
		E2EPins:         []m.Pin{"GND", "A3"},
		Partition:       m.Partition{{"GND"}, {"A3"}},
		Components:      []m.Group{{"GND", "A1", "A2"}},
		StateComponents: []m.Group{{"A1", "A2"}},
		Active:          map[m.Pin]bool{"A2": true, "A1": true},
	}
}

func TestReportStore_RoundTrip(t *testing.T) {
	path := m.Path(filepath.Join(t.TempDir(), "topology.yaml"))
	store := NewReportStore()

	require.NoError(t, store.SaveTopology(path, sampleTopology()))

	loaded, err := store.LoadTopology(path)
	require.NoError(t, err)
	require.Equal(t, sampleTopology(), loaded)
}

func TestReportStore_SaveTopology_ActiveOrderIsStable(t *testing.T) {
	path := m.Path(filepath.Join(t.TempDir(), "topology.yaml"))
	store := NewReportStore()

	require.NoError(t, store.SaveTopology(path, sampleTopology()))

	first, err := os.ReadFile(string(path))
	require.NoError(t, err)
	require.Contains(t, string(first), "active_pins:")

	require.NoError(t, store.SaveTopology(path, sampleTopology()))

	second, err := os.ReadFile(string(path))
	require.NoError(t, err)
	require.Equal(t, string(first), string(second))
}

func TestReportStore_LoadTopology_Missing(t *testing.T) {
	_, err := NewReportStore().LoadTopology(m.Path(filepath.Join(t.TempDir(), "absent.yaml")))
	require.Error(t, err)
	require.Contains(t, err.Error(), "absent.yaml")
}
