package model

// Tuple is one line of connection data: every pin in it is electrically
// identical while the switch sits in the recorded position. Consumed by the
// netlist immediately after loading; not retained.
type Tuple []Pin

// Group is a set of mutually connected pins, kept in display order.
type Group []Pin

// Partition is the grouping of the e2e pin set by electrical node. It is a
// proper set partition: groups are disjoint, non-empty, and cover the set.
type Partition []Group

// Line is one raw input line with its 1-based position, kept for error
// messages that point at the offending file location.
type Line struct {
	Number int
	Text   string
}

// Definition is the parsed shared pinout definition: every surface in file
// order, the declared e2e pin names (deduplicated, declaration order), and
// any permanent wiring lines that accompany the grid declarations. Wiring
// lines stay unparsed here; pin resolution belongs to the registry.
type Definition struct {
	Path     Path
	Surfaces []Surface
	E2EPins  []string
	Links    []Line
}

// Topology carries everything the render sink needs for one analysis run.
type Topology struct {
	Surfaces []Surface
	E2EPins  []Pin

	// Partition groups the e2e pins by electrical node.
	Partition Partition

	// Components are all multi-pin electrical nodes across every surface,
	// in display order (e2e-bearing nodes first, then nodes touching free
	// pins, then surface-only nodes).
	Components []Group

	// StateComponents are the multi-pin nodes formed by the state files
	// alone, with permanent definition wiring excluded. Same display
	// order as Components.
	StateComponents []Group

	// Active marks pins named by at least one state file.
	Active map[Pin]bool
}
