// Package domain contains the core connectivity analysis workflow and logic.
package domain

import (
	"fmt"
	"iter"
	"regexp"
	"strconv"
	"strings"

	m "pintrace.dev/pkg/pintrace/internal/model"
)

// surfacePinPattern matches tokens shaped like a surface pin reference:
// one letter followed by a 1-based decimal index.
var surfacePinPattern = regexp.MustCompile(`^([A-Z])([0-9]+)$`)

// Registry holds every declared pin surface for one run and resolves
// textual pin references to canonical identifiers. A fresh registry is
// built from the definition input on each invocation; it carries no state
// beyond the declared surfaces.
type Registry interface {
	// Define registers a surface grid. The designator must be unused and
	// the dimensions at least 1x1.
	Define(designator string, columns, rows int) error

	// Surface looks up a registered surface by designator.
	Surface(designator string) (m.Surface, bool)

	// Surfaces returns every registered surface in definition order.
	Surfaces() []m.Surface

	// Resolve maps a textual pin reference to its canonical pin. Surface
	// shaped tokens are range-checked against the registered grids; any
	// other non-empty token is accepted as a free pin.
	Resolve(name string) (m.Pin, error)

	// AllPins enumerates a surface's pins in row-major order starting at
	// pin 1. The sequence is finite and restartable.
	AllPins(designator string) (iter.Seq[m.Pin], error)
}

type registry struct {
	surfaces map[string]m.Surface
	order    []string
}

// NewRegistry creates an empty Registry.
func NewRegistry() Registry {
	return &registry{surfaces: make(map[string]m.Surface)}
}

func (r *registry) Define(designator string, columns, rows int) error {
	designator = strings.ToUpper(strings.TrimSpace(designator))
	if designator == "" {
		return fmt.Errorf("empty designator: %w", ErrInvalidDimensions)
	}

	if columns < 1 || rows < 1 {
		return fmt.Errorf("surface %s is %dx%d: %w", designator, columns, rows, ErrInvalidDimensions)
	}

	if _, ok := r.surfaces[designator]; ok {
		return fmt.Errorf("surface %s: %w", designator, ErrDuplicateSurface)
	}

	r.surfaces[designator] = m.Surface{Designator: designator, Columns: columns, Rows: rows}
	r.order = append(r.order, designator)

	return nil
}

func (r *registry) Surface(designator string) (m.Surface, bool) {
	surface, ok := r.surfaces[strings.ToUpper(designator)]
	return surface, ok
}

func (r *registry) Surfaces() []m.Surface {
	surfaces := make([]m.Surface, 0, len(r.order))
	for _, designator := range r.order {
		surfaces = append(surfaces, r.surfaces[designator])
	}

	return surfaces
}

func (r *registry) Resolve(name string) (m.Pin, error) {
	token := strings.ToUpper(strings.TrimSpace(name))
	if token == "" {
		return "", fmt.Errorf("empty pin name: %w", ErrUnknownPin)
	}

	match := surfacePinPattern.FindStringSubmatch(token)
	if match == nil {
		// Anything that is not surface-pin shaped is an explicit free pin.
		return m.FreePin(token), nil
	}

	surface, ok := r.surfaces[match[1]]
	if !ok {
		return "", fmt.Errorf("pin %q references undefined surface %s: %w", name, match[1], ErrUnknownPin)
	}

	index, err := strconv.Atoi(match[2])
	if err != nil || !surface.Contains(index) {
		return "", fmt.Errorf("pin %q is outside surface %s (%dx%d): %w",
			name, surface.Designator, surface.Columns, surface.Rows, ErrUnknownPin)
	}

	return surface.Pin(index), nil
}

func (r *registry) AllPins(designator string) (iter.Seq[m.Pin], error) {
	surface, ok := r.Surface(designator)
	if !ok {
		return nil, fmt.Errorf("surface %s not defined: %w", designator, ErrUnknownPin)
	}

	return func(yield func(m.Pin) bool) {
		for k := 1; k <= surface.Count(); k++ {
			if !yield(surface.Pin(k)) {
				return
			}
		}
	}, nil
}
