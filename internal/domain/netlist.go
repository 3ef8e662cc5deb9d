package domain

import (
	"fmt"

	m "pintrace.dev/pkg/pintrace/internal/model"
)

// Netlist is the merged undirected connectivity graph over every known pin,
// kept as a disjoint-set (union-find) partition. Each pin starts in its own
// singleton class; Merge is the only mutation and never splits a class, so
// the partition stays a valid equivalence relation throughout.
type Netlist interface {
	// Add registers a pin as its own singleton class. Adding a known pin
	// is a no-op.
	Add(pin m.Pin)

	// Known reports whether the pin has been registered.
	Known(pin m.Pin) bool

	// Merge unions every pin of the tuple into one class. Merging pins
	// already in the same class (including self-pairs) is a no-op. Every
	// pin must have been registered first.
	Merge(tuple m.Tuple) error

	// SameNode reports whether two pins sit on the same electrical node.
	SameNode(a, b m.Pin) (bool, error)

	// ClassOf returns an opaque class identifier for the pin, stable
	// within one run only.
	ClassOf(pin m.Pin) (int, error)

	// Pins returns every registered pin in registration order.
	Pins() []m.Pin

	// Components returns every class with at least two members. Classes
	// are ordered by their earliest-registered member; members keep
	// registration order.
	Components() []m.Group
}

// netlist uses index-based parent/rank slices with iterative path
// compression and union by rank, so lookups stay near O(1) amortized.
type netlist struct {
	index  map[m.Pin]int
	pins   []m.Pin
	parent []int
	rank   []int
}

// NewNetlist creates an empty Netlist.
func NewNetlist() Netlist {
	return &netlist{index: make(map[m.Pin]int)}
}

func (n *netlist) Add(pin m.Pin) {
	if _, ok := n.index[pin]; ok {
		return
	}

	id := len(n.pins)
	n.index[pin] = id
	n.pins = append(n.pins, pin)
	n.parent = append(n.parent, id)
	n.rank = append(n.rank, 0)
}

func (n *netlist) Known(pin m.Pin) bool {
	_, ok := n.index[pin]
	return ok
}

// find walks to the root, pointing each visited element at its grandparent.
func (n *netlist) find(id int) int {
	for n.parent[id] != id {
		n.parent[id] = n.parent[n.parent[id]]
		id = n.parent[id]
	}

	return id
}

func (n *netlist) union(a, b int) {
	rootA, rootB := n.find(a), n.find(b)
	if rootA == rootB {
		return
	}

	if n.rank[rootA] < n.rank[rootB] {
		rootA, rootB = rootB, rootA
	}

	n.parent[rootB] = rootA
	if n.rank[rootA] == n.rank[rootB] {
		n.rank[rootA]++
	}
}

func (n *netlist) resolve(pin m.Pin) (int, error) {
	id, ok := n.index[pin]
	if !ok {
		return 0, fmt.Errorf("pin %s was never registered: %w", pin, ErrUnknownPin)
	}

	return id, nil
}

func (n *netlist) Merge(tuple m.Tuple) error {
	if len(tuple) == 0 {
		return nil
	}

	first, err := n.resolve(tuple[0])
	if err != nil {
		return err
	}

	// Star-union from the first pin; union is associative and commutative
	// so the resulting class does not depend on this choice.
	for _, pin := range tuple[1:] {
		id, err := n.resolve(pin)
		if err != nil {
			return err
		}

		n.union(first, id)
	}

	return nil
}

func (n *netlist) SameNode(a, b m.Pin) (bool, error) {
	idA, err := n.resolve(a)
	if err != nil {
		return false, err
	}

	idB, err := n.resolve(b)
	if err != nil {
		return false, err
	}

	return n.find(idA) == n.find(idB), nil
}

func (n *netlist) ClassOf(pin m.Pin) (int, error) {
	id, err := n.resolve(pin)
	if err != nil {
		return 0, err
	}

	return n.find(id), nil
}

func (n *netlist) Pins() []m.Pin {
	pins := make([]m.Pin, len(n.pins))
	copy(pins, n.pins)

	return pins
}

func (n *netlist) Components() []m.Group {
	members := make(map[int][]int)
	var roots []int

	for id := range n.pins {
		root := n.find(id)
		if _, ok := members[root]; !ok {
			roots = append(roots, root)
		}

		members[root] = append(members[root], id)
	}

	var groups []m.Group

	// roots are discovered in registration order of their earliest member.
	for _, root := range roots {
		ids := members[root]
		if len(ids) < 2 {
			continue
		}

		group := make(m.Group, 0, len(ids))
		for _, id := range ids {
			group = append(group, n.pins[id])
		}

		groups = append(groups, group)
	}

	return groups
}
