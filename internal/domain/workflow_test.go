package domain

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	m "pintrace.dev/pkg/pintrace/internal/model"
)

type stubDefinitions struct {
	definition m.Definition
	err        error
}

func (s *stubDefinitions) Load(_ m.Path) (m.Definition, error) {
	return s.definition, s.err
}

type stubStates struct {
	files map[m.Path]string
}

func (s *stubStates) ResolvePath(dir m.Path, base m.Path) m.Path {
	return m.Path(fmt.Sprintf("%s/%s.csv", dir, base))
}

func (s *stubStates) ReadState(path m.Path) (string, error) {
	text, ok := s.files[path]
	if !ok {
		return "", fmt.Errorf("read state file %s: not found", path)
	}

	return text, nil
}

type stubReports struct {
	saved map[m.Path]m.Topology
}

func (s *stubReports) SaveTopology(path m.Path, topology m.Topology) error {
	if s.saved == nil {
		s.saved = make(map[m.Path]m.Topology)
	}

	s.saved[path] = topology

	return nil
}

func (s *stubReports) LoadTopology(path m.Path) (m.Topology, error) {
	return s.saved[path], nil
}

type recorderUI struct {
	topology      m.Topology
	topologyCalls int
	surfaces      []m.Surface
	e2ePins       []m.Pin
}

func (r *recorderUI) DisplaySurfaces(_ context.Context, surfaces []m.Surface, e2ePins []m.Pin) error {
	r.surfaces = surfaces
	r.e2ePins = e2ePins

	return nil
}

func (r *recorderUI) DisplayTopology(_ context.Context, topology m.Topology) error {
	r.topology = topology
	r.topologyCalls++

	return nil
}

func twoSwitchDefinition() m.Definition {
	return m.Definition{
		Path: "data.csv",
		Surfaces: []m.Surface{
			{Designator: "A", Columns: 3, Rows: 4},
			{Designator: "B", Columns: 4, Rows: 8},
		},
		E2EPins: []string{"GND", "TIP", "A3"},
		Links:   []m.Line{{Number: 5, Text: "GND,A1"}},
	}
}

func workflowFixture(definition m.Definition, files map[m.Path]string) (*recorderUI, *stubReports, Workflow) {
	ui := &recorderUI{}
	reports := &stubReports{}
	workflow := NewWorkflow(
		&stubDefinitions{definition: definition},
		&stubStates{files: files},
		reports,
		ui,
	)

	return ui, reports, workflow
}

func TestWorkflow_Run_MergesAcrossSwitches(t *testing.T) {
	ui, _, workflow := workflowFixture(twoSwitchDefinition(), map[m.Path]string{
		"./left.csv":  "# left position\nA1,A2\n",
		"./right.csv": "A2,B1\nB1,TIP\n",
	})

	err := workflow.Run(context.Background(), RunArgs{
		Definition: "data.csv",
		StateDir:   ".",
		StateBases: []m.Path{"left", "right"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, ui.topologyCalls)

	topology := ui.topology
	require.Equal(t, []m.Pin{"GND", "TIP", "A3"}, topology.E2EPins)

	// GND-A1 (definition link), A1-A2 (left), A2-B1-TIP (right).
	require.Equal(t, m.Partition{{"GND", "TIP"}, {"A3"}}, topology.Partition)

	require.Len(t, topology.Components, 1)
	require.Equal(t, m.Group{"GND", "TIP", "A1", "A2", "B1"}, topology.Components[0])

	// Only pins named by state files are active; the definition link pin
	// GND is free and A1 appears in left.csv anyway.
	require.Equal(t, map[m.Pin]bool{"A1": true, "A2": true, "B1": true}, topology.Active)
}

func TestWorkflow_Run_StateCountMismatch(t *testing.T) {
	ui, _, workflow := workflowFixture(twoSwitchDefinition(), nil)

	err := workflow.Run(context.Background(), RunArgs{
		Definition: "data.csv",
		StateDir:   ".",
		StateBases: []m.Path{"left"},
	})
	require.ErrorIs(t, err, ErrStateCount)
	require.Contains(t, err.Error(), "A, B")
	require.Zero(t, ui.topologyCalls)
}

func TestWorkflow_Run_UnknownE2EPinFailsBeforeReport(t *testing.T) {
	definition := twoSwitchDefinition()
	definition.E2EPins = []string{"GND", "C5"}

	ui, _, workflow := workflowFixture(definition, map[m.Path]string{
		"./left.csv":  "A1,A2\n",
		"./right.csv": "B1,B2\n",
	})

	err := workflow.Run(context.Background(), RunArgs{
		Definition: "data.csv",
		StateDir:   ".",
		StateBases: []m.Path{"left", "right"},
	})
	require.ErrorIs(t, err, ErrUnknownPin)
	require.Zero(t, ui.topologyCalls)
}

func TestWorkflow_Run_DuplicateSurface(t *testing.T) {
	definition := twoSwitchDefinition()
	definition.Surfaces = append(definition.Surfaces, m.Surface{Designator: "A", Columns: 2, Rows: 2})

	_, _, workflow := workflowFixture(definition, nil)

	err := workflow.Run(context.Background(), RunArgs{
		Definition: "data.csv",
		StateBases: []m.Path{"a", "b", "c"},
	})
	require.ErrorIs(t, err, ErrDuplicateSurface)
}

func TestWorkflow_Run_MissingStateFile(t *testing.T) {
	_, _, workflow := workflowFixture(twoSwitchDefinition(), map[m.Path]string{
		"./left.csv": "A1,A2\n",
	})

	err := workflow.Run(context.Background(), RunArgs{
		Definition: "data.csv",
		StateDir:   ".",
		StateBases: []m.Path{"left", "right"},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "right.csv")
}

func TestWorkflow_Run_PermutedStateOrderSamePartition(t *testing.T) {
	files := map[m.Path]string{
		"./left.csv":  "A1,A2\n",
		"./right.csv": "A2,A3\n",
	}

	var partitions []m.Partition

	for _, bases := range [][]m.Path{{"left", "right"}, {"right", "left"}} {
		ui, _, workflow := workflowFixture(twoSwitchDefinition(), files)

		err := workflow.Run(context.Background(), RunArgs{
			Definition: "data.csv",
			StateDir:   ".",
			StateBases: bases,
		})
		require.NoError(t, err)

		partitions = append(partitions, ui.topology.Partition)
	}

	require.Equal(t, partitions[0], partitions[1])
}

func TestWorkflow_Run_SavesReport(t *testing.T) {
	_, reports, workflow := workflowFixture(twoSwitchDefinition(), map[m.Path]string{
		"./left.csv":  "A1,A2\n",
		"./right.csv": "B1,B2\n",
	})

	err := workflow.Run(context.Background(), RunArgs{
		Definition: "data.csv",
		StateDir:   ".",
		StateBases: []m.Path{"left", "right"},
		Report:     "topology.yaml",
	})
	require.NoError(t, err)

	saved, ok := reports.saved["topology.yaml"]
	require.True(t, ok)
	require.Equal(t, m.Partition{{"GND"}, {"TIP"}, {"A3"}}, saved.Partition)
}

func TestWorkflow_Run_ParallelParsing(t *testing.T) {
	ui, _, workflow := workflowFixture(twoSwitchDefinition(), map[m.Path]string{
		"./left.csv":  "A1,A2\n",
		"./right.csv": "B1,B2\n",
	})

	err := workflow.Run(context.Background(), RunArgs{
		Definition: "data.csv",
		StateDir:   ".",
		StateBases: []m.Path{"left", "right"},
		Threads:    4,
	})
	require.NoError(t, err)
	require.Equal(t, 1, ui.topologyCalls)
	require.Len(t, ui.topology.Components, 2)
}

func TestWorkflow_Check(t *testing.T) {
	ui, _, workflow := workflowFixture(twoSwitchDefinition(), map[m.Path]string{
		"./left.csv":  "A1,A2\n",
		"./right.csv": "B1,B2\n",
	})

	err := workflow.Check(context.Background(), RunArgs{
		Definition: "data.csv",
		StateDir:   ".",
		StateBases: []m.Path{"left", "right"},
	})
	require.NoError(t, err)
	require.Zero(t, ui.topologyCalls)
}

func TestWorkflow_Describe(t *testing.T) {
	ui, _, workflow := workflowFixture(twoSwitchDefinition(), nil)

	err := workflow.Describe(context.Background(), "data.csv")
	require.NoError(t, err)

	require.Len(t, ui.surfaces, 2)
	require.Equal(t, []m.Pin{"GND", "TIP", "A3"}, ui.e2ePins)
}

func TestWorkflow_Run_AliasedE2ENamesCollapse(t *testing.T) {
	definition := twoSwitchDefinition()
	definition.E2EPins = []string{"A1", "A01", "A2"}

	ui, _, workflow := workflowFixture(definition, map[m.Path]string{
		"./left.csv":  "A3,A4\n",
		"./right.csv": "B1,B2\n",
	})

	err := workflow.Run(context.Background(), RunArgs{
		Definition: "data.csv",
		StateDir:   ".",
		StateBases: []m.Path{"left", "right"},
	})
	require.NoError(t, err)

	// A1 and A01 name the same contact; it must appear once in the e2e
	// set and once across the partition.
	require.Equal(t, []m.Pin{"A1", "A2"}, ui.topology.E2EPins)

	occurrences := make(map[m.Pin]int)
	for _, group := range ui.topology.Partition {
		for _, pin := range group {
			occurrences[pin]++
		}
	}

	require.Equal(t, map[m.Pin]int{"A1": 1, "A2": 1}, occurrences)
}

func TestWorkflow_Run_StateComponentsExcludeDefinitionWiring(t *testing.T) {
	ui, _, workflow := workflowFixture(twoSwitchDefinition(), map[m.Path]string{
		"./left.csv":  "A1,A2\n",
		"./right.csv": "B1,B2\n",
	})

	err := workflow.Run(context.Background(), RunArgs{
		Definition: "data.csv",
		StateDir:   ".",
		StateBases: []m.Path{"left", "right"},
	})
	require.NoError(t, err)

	// The GND,A1 definition link shows up in the consolidated components
	// but not in the state-only view.
	require.Equal(t, []m.Group{{"GND", "A1", "A2"}, {"B1", "B2"}}, ui.topology.Components)
	require.Equal(t, []m.Group{{"A1", "A2"}, {"B1", "B2"}}, ui.topology.StateComponents)
}

func TestWorkflow_Run_SelfPairLineIsAccepted(t *testing.T) {
	ui, _, workflow := workflowFixture(twoSwitchDefinition(), map[m.Path]string{
		"./left.csv":  "A1,A1\n",
		"./right.csv": "B1,B2\n",
	})

	err := workflow.Run(context.Background(), RunArgs{
		Definition: "data.csv",
		StateDir:   ".",
		StateBases: []m.Path{"left", "right"},
	})
	require.NoError(t, err)

	// The self-pair contributes nothing: A1 stays with GND via the
	// definition link only.
	require.Equal(t, m.Partition{{"GND"}, {"TIP"}, {"A3"}}, ui.topology.Partition)
}
