package domain

import (
	"fmt"

	m "pintrace.dev/pkg/pintrace/internal/model"
)

// Engine answers end-to-end reachability queries against a frozen netlist.
type Engine interface {
	// Groups partitions the e2e pin set by electrical node. Groups appear
	// in first-occurrence order of their earliest member in the declared
	// e2e ordering and members keep that ordering, so output is
	// reproducible across runs regardless of merge order. Pins never
	// mentioned by any state file form singleton groups.
	Groups(e2ePins []m.Pin, netlist Netlist) (m.Partition, error)
}

type engine struct{}

// NewEngine creates an Engine.
func NewEngine() Engine {
	return &engine{}
}

func (e *engine) Groups(e2ePins []m.Pin, netlist Netlist) (m.Partition, error) {
	var partition m.Partition

	byClass := make(map[int]int)

	for _, pin := range e2ePins {
		class, err := netlist.ClassOf(pin)
		if err != nil {
			return nil, fmt.Errorf("e2e pin %s: %w", pin, err)
		}

		slot, ok := byClass[class]
		if !ok {
			byClass[class] = len(partition)
			partition = append(partition, m.Group{pin})
			continue
		}

		partition[slot] = append(partition[slot], pin)
	}

	return partition, nil
}
