package adapter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	m "pintrace.dev/pkg/pintrace/internal/model"
)

// ReportStore persists an analysis result in a machine-readable form so
// external render sinks (plotters, diagram generators) can consume the
// partition without re-running the analysis.
type ReportStore interface {
	SaveTopology(path m.Path, topology m.Topology) error
	LoadTopology(path m.Path) (m.Topology, error)
}

// topologyReport is the serialized layout; maps of Pin keys do not round
// trip cleanly through YAML, so Active is flattened to a list.
type topologyReport struct {
	Surfaces        []m.Surface `yaml:"surfaces"`
	E2EPins         []m.Pin     `yaml:"e2e_pins"`
	Partition       []m.Group   `yaml:"partition"`
	Components      []m.Group   `yaml:"components"`
	StateComponents []m.Group   `yaml:"state_components"`
	Active          []m.Pin     `yaml:"active_pins"`
}

type reportStore struct{}

// NewReportStore creates a filesystem-backed ReportStore.
func NewReportStore() ReportStore {
	return &reportStore{}
}

func (s *reportStore) SaveTopology(path m.Path, topology m.Topology) error {
	report := topologyReport{
		Surfaces:        topology.Surfaces,
		E2EPins:         topology.E2EPins,
		Partition:       topology.Partition,
		Components:      topology.Components,
		StateComponents: topology.StateComponents,
	}

	for _, pin := range sortedActive(topology) {
		report.Active = append(report.Active, pin)
	}

	content, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode topology report: %w", err)
	}

	if err := os.WriteFile(string(path), content, 0o644); err != nil {
		return fmt.Errorf("write topology report %s: %w", path, err)
	}

	return nil
}

func (s *reportStore) LoadTopology(path m.Path) (m.Topology, error) {
	content, err := os.ReadFile(string(path))
	if err != nil {
		return m.Topology{}, fmt.Errorf("read topology report %s: %w", path, err)
	}

	var report topologyReport
	if err := yaml.Unmarshal(content, &report); err != nil {
		return m.Topology{}, fmt.Errorf("decode topology report %s: %w", path, err)
	}

	topology := m.Topology{
		Surfaces:        report.Surfaces,
		E2EPins:         report.E2EPins,
		Partition:       m.Partition(report.Partition),
		Components:      report.Components,
		StateComponents: report.StateComponents,
		Active:          make(map[m.Pin]bool, len(report.Active)),
	}

	for _, pin := range report.Active {
		topology.Active[pin] = true
	}

	return topology, nil
}

func sortedActive(topology m.Topology) []m.Pin {
	var pins []m.Pin

	// Surfaces enumerate their pins in a stable order; walking them keeps
	// the report deterministic without an extra sort.
	for _, surface := range topology.Surfaces {
		for k := 1; k <= surface.Count(); k++ {
			if topology.Active[surface.Pin(k)] {
				pins = append(pins, surface.Pin(k))
			}
		}
	}

	return pins
}
