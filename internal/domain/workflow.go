package domain

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"pintrace.dev/pkg/pintrace/internal/adapter"
	"pintrace.dev/pkg/pintrace/internal/controller"
	m "pintrace.dev/pkg/pintrace/internal/model"
	"pintrace.dev/pkg/pintrace/pkg"
)

// RunArgs carries one invocation's inputs: the shared definition file and
// one extension-free state file base per defined surface, in definition
// order.
type RunArgs struct {
	Definition m.Path
	StateDir   m.Path
	StateBases []m.Path
	Threads    int

	// Report, when set, is where the analyzed topology is written in
	// machine-readable form for external render sinks.
	Report m.Path
}

// Workflow coordinates one analysis run: building the registry from the
// definition input, folding every state file into the netlist and handing
// the resulting topology to the UI.
type Workflow interface {
	// Run performs the full analysis and displays the result.
	Run(ctx context.Context, args RunArgs) error

	// Check validates the definition and state inputs without reporting.
	Check(ctx context.Context, args RunArgs) error

	// Describe displays the defined surfaces and the e2e pin set.
	Describe(ctx context.Context, definition m.Path) error
}

type workflow struct {
	definitions adapter.DefinitionStore
	states      adapter.StateFS
	reports     adapter.ReportStore
	ui          controller.UI
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(definitions adapter.DefinitionStore, states adapter.StateFS, reports adapter.ReportStore, ui controller.UI) Workflow {
	return &workflow{
		definitions: definitions,
		states:      states,
		reports:     reports,
		ui:          ui,
	}
}

func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	topology, err := w.analyze(ctx, args)
	if err != nil {
		slog.Error("analysis failed", "definition", args.Definition, "error", err)
		return err
	}

	if args.Report != "" {
		if err := w.reports.SaveTopology(args.Report, topology); err != nil {
			slog.Error("failed to save topology report", "path", args.Report, "error", err)
			return err
		}
	}

	if err := w.ui.DisplayTopology(ctx, topology); err != nil {
		slog.Error("failed to display topology", "error", err)
		return fmt.Errorf("display: %w", err)
	}

	return nil
}

func (w *workflow) Check(ctx context.Context, args RunArgs) error {
	topology, err := w.analyze(ctx, args)
	if err != nil {
		slog.Error("check failed", "definition", args.Definition, "error", err)
		return err
	}

	slog.Info("inputs valid",
		"definition", args.Definition,
		"surfaces", len(topology.Surfaces),
		"components", len(topology.Components))

	return nil
}

func (w *workflow) Describe(ctx context.Context, definition m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	registry, def, err := w.buildRegistry(definition)
	if err != nil {
		return err
	}

	e2ePins, err := resolveE2EPins(registry, def)
	if err != nil {
		return err
	}

	return w.ui.DisplaySurfaces(ctx, registry.Surfaces(), e2ePins)
}

// analyze runs the whole pipeline and returns the frozen topology. Any
// definition or parsing error is fatal for the run; no partial result is
// produced.
func (w *workflow) analyze(ctx context.Context, args RunArgs) (m.Topology, error) {
	if err := ctx.Err(); err != nil {
		return m.Topology{}, err
	}

	registry, def, err := w.buildRegistry(args.Definition)
	if err != nil {
		return m.Topology{}, err
	}

	surfaces := registry.Surfaces()
	if len(args.StateBases) != len(surfaces) {
		return m.Topology{}, fmt.Errorf("%s defines %d surfaces (%s) but %d state files were given: %w",
			args.Definition, len(surfaces), joinDesignators(surfaces), len(args.StateBases), ErrStateCount)
	}

	e2ePins, err := resolveE2EPins(registry, def)
	if err != nil {
		return m.Topology{}, err
	}

	loader := NewStateLoader(registry)

	links, err := parseLinks(loader, def)
	if err != nil {
		return m.Topology{}, err
	}

	stateTuples, err := w.loadStates(ctx, loader, surfaces, args)
	if err != nil {
		return m.Topology{}, err
	}

	netlist := NewNetlist()
	if err := seedNetlist(netlist, registry, surfaces, e2ePins); err != nil {
		return m.Topology{}, err
	}

	// Definition wiring merges first, then every state file in argument
	// order. The final partition does not depend on this order; it is
	// fixed only so any tie-broken output stays reproducible.
	if err := mergeTuples(netlist, links); err != nil {
		return m.Topology{}, err
	}

	// A second netlist tracks the state files alone, so the chart can
	// show what the switch positions contribute without the permanent
	// definition wiring.
	stateNetlist := NewNetlist()
	if err := seedNetlist(stateNetlist, registry, surfaces, e2ePins); err != nil {
		return m.Topology{}, err
	}

	active := make(map[m.Pin]bool)

	for _, tuples := range stateTuples {
		if err := mergeTuples(netlist, tuples); err != nil {
			return m.Topology{}, err
		}

		if err := mergeTuples(stateNetlist, tuples); err != nil {
			return m.Topology{}, err
		}

		for _, tuple := range tuples {
			for _, pin := range tuple {
				if _, _, ok := pin.Designator(); ok {
					active[pin] = true
				}
			}
		}
	}

	partition, err := NewEngine().Groups(e2ePins, netlist)
	if err != nil {
		return m.Topology{}, err
	}

	return m.Topology{
		Surfaces:        surfaces,
		E2EPins:         e2ePins,
		Partition:       partition,
		Components:      orderComponents(netlist.Components(), e2ePins),
		StateComponents: orderComponents(stateNetlist.Components(), e2ePins),
		Active:          active,
	}, nil
}

func (w *workflow) buildRegistry(definition m.Path) (Registry, m.Definition, error) {
	def, err := w.definitions.Load(definition)
	if err != nil {
		return nil, m.Definition{}, err
	}

	registry := NewRegistry()

	for _, surface := range def.Surfaces {
		if err := registry.Define(surface.Designator, surface.Columns, surface.Rows); err != nil {
			return nil, m.Definition{}, fmt.Errorf("%s: %w", definition, err)
		}
	}

	return registry, def, nil
}

// resolveE2EPins maps the declared e2e names to canonical pins. Distinct
// names can resolve to the same pin ("A1" and "A01"); only the first
// occurrence is kept so every e2e pin lands in exactly one partition group.
func resolveE2EPins(registry Registry, def m.Definition) ([]m.Pin, error) {
	pins := pkg.NewOrderedSet[m.Pin]()

	for _, name := range def.E2EPins {
		pin, err := registry.Resolve(name)
		if err != nil {
			return nil, fmt.Errorf("%s: e2e pin: %w", def.Path, err)
		}

		if !pins.Add(pin) {
			slog.Warn("e2e pin declared more than once", "path", def.Path, "name", name, "pin", pin)
		}
	}

	return pins.Items(), nil
}

func parseLinks(loader StateLoader, def m.Definition) ([]m.Tuple, error) {
	var links []m.Tuple

	for _, line := range def.Links {
		tuple, err := loader.ParseLine(def.Path, line.Number, "", line.Text)
		if err != nil {
			return nil, err
		}

		if tuple != nil {
			links = append(links, tuple)
		}
	}

	return links, nil
}

// loadStates parses every state file, one worker per file up to Threads.
// Results are kept indexed by argument position so the later merge stays in
// a deterministic order; only the parsing runs in parallel.
func (w *workflow) loadStates(ctx context.Context, loader StateLoader, surfaces []m.Surface, args RunArgs) ([][]m.Tuple, error) {
	results := make([][]m.Tuple, len(args.StateBases))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(args.Threads, 1))

	for i, base := range args.StateBases {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			path := w.states.ResolvePath(args.StateDir, base)

			text, err := w.states.ReadState(path)
			if err != nil {
				return err
			}

			tuples, err := loader.Load(path, surfaces[i].Designator, text)
			if err != nil {
				return err
			}

			slog.Debug("loaded state file", "path", path, "surface", surfaces[i].Designator, "tuples", len(tuples))
			results[i] = tuples

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// seedNetlist registers every declared pin as a singleton class before any
// merge, so pins never mentioned by a state file still appear as isolated
// nodes.
func seedNetlist(netlist Netlist, registry Registry, surfaces []m.Surface, e2ePins []m.Pin) error {
	for _, surface := range surfaces {
		pins, err := registry.AllPins(surface.Designator)
		if err != nil {
			return err
		}

		for pin := range pins {
			netlist.Add(pin)
		}
	}

	for _, pin := range e2ePins {
		netlist.Add(pin)
	}

	return nil
}

func mergeTuples(netlist Netlist, tuples []m.Tuple) error {
	for _, tuple := range tuples {
		// Free pins surface here for the first time; register them so the
		// merge itself only deals with known pins.
		for _, pin := range tuple {
			netlist.Add(pin)
		}

		if err := netlist.Merge(tuple); err != nil {
			return err
		}
	}

	return nil
}

// orderComponents fixes the display order of merged groups: groups holding
// an e2e pin first, then groups touching free pins, then surface-only
// groups. Within a group free pins come first (case-insensitive alpha),
// then surface pins by designator and index.
func orderComponents(components []m.Group, e2ePins []m.Pin) []m.Group {
	e2eSet := make(map[m.Pin]bool, len(e2ePins))
	for _, pin := range e2ePins {
		e2eSet[pin] = true
	}

	ordered := make([]m.Group, len(components))
	for i, group := range components {
		ordered[i] = sortGroup(group)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		ki, kj := groupKind(ordered[i], e2eSet), groupKind(ordered[j], e2eSet)
		if ki != kj {
			return ki < kj
		}

		return ordered[i][0] < ordered[j][0]
	})

	return ordered
}

func groupKind(group m.Group, e2eSet map[m.Pin]bool) int {
	hasFree := false

	for _, pin := range group {
		if e2eSet[pin] {
			return 0
		}

		if _, _, ok := pin.Designator(); !ok {
			hasFree = true
		}
	}

	if hasFree {
		return 1
	}

	return 2
}

func sortGroup(group m.Group) m.Group {
	sorted := make(m.Group, len(group))
	copy(sorted, group)

	sort.SliceStable(sorted, func(i, j int) bool {
		di, ii, iSurface := sorted[i].Designator()
		dj, ij, jSurface := sorted[j].Designator()

		if iSurface != jSurface {
			return !iSurface // free pins first
		}

		if !iSurface {
			return strings.ToUpper(string(sorted[i])) < strings.ToUpper(string(sorted[j]))
		}

		if di != dj {
			return di < dj
		}

		return ii < ij
	})

	return sorted
}

func joinDesignators(surfaces []m.Surface) string {
	designators := make([]string, 0, len(surfaces))
	for _, surface := range surfaces {
		designators = append(designators, surface.Designator)
	}

	return strings.Join(designators, ", ")
}
