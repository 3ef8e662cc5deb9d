package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	m "pintrace.dev/pkg/pintrace/internal/model"
)

func TestRegistry_Define(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Define("A", 3, 4))
	require.NoError(t, registry.Define("b", 4, 8))

	surfaces := registry.Surfaces()
	require.Len(t, surfaces, 2)
	require.Equal(t, "A", surfaces[0].Designator)
	require.Equal(t, "B", surfaces[1].Designator)
	require.Equal(t, 32, surfaces[1].Count())
}

func TestRegistry_Define_Duplicate(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Define("A", 3, 4))

	err := registry.Define("a", 2, 2)
	require.ErrorIs(t, err, ErrDuplicateSurface)
}

func TestRegistry_Define_InvalidDimensions(t *testing.T) {
	registry := NewRegistry()

	require.ErrorIs(t, registry.Define("A", 0, 4), ErrInvalidDimensions)
	require.ErrorIs(t, registry.Define("A", 3, 0), ErrInvalidDimensions)
	require.ErrorIs(t, registry.Define("A", -1, -1), ErrInvalidDimensions)
	require.ErrorIs(t, registry.Define("", 3, 4), ErrInvalidDimensions)
}

func TestRegistry_Resolve_SurfacePin(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Define("A", 3, 4))

	pin, err := registry.Resolve("a7")
	require.NoError(t, err)
	require.Equal(t, m.Pin("A7"), pin)
}

func TestRegistry_Resolve_OutOfRange(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Define("A", 3, 4))

	_, err := registry.Resolve("A13")
	require.ErrorIs(t, err, ErrUnknownPin)

	_, err = registry.Resolve("A0")
	require.ErrorIs(t, err, ErrUnknownPin)
}

func TestRegistry_Resolve_UndefinedSurface(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Define("A", 3, 4))

	_, err := registry.Resolve("C5")
	require.ErrorIs(t, err, ErrUnknownPin)
}

func TestRegistry_Resolve_FreePins(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Define("A", 3, 4))

	for name, want := range map[string]m.Pin{
		"gnd": "GND",
		"TIP": "TIP",
		"p1+": "P1+",
		"G":   "G",
	} {
		pin, err := registry.Resolve(name)
		require.NoError(t, err)
		require.Equal(t, want, pin)
	}
}

func TestRegistry_Resolve_Empty(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Resolve("  ")
	require.ErrorIs(t, err, ErrUnknownPin)
}

func TestRegistry_AllPins_OrderAndRestartable(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Define("A", 2, 2))

	pins, err := registry.AllPins("A")
	require.NoError(t, err)

	collect := func() []m.Pin {
		var out []m.Pin
		for pin := range pins {
			out = append(out, pin)
		}

		return out
	}

	want := []m.Pin{"A1", "A2", "A3", "A4"}
	require.Equal(t, want, collect())
	// Restartable: iterating again yields the full enumeration.
	require.Equal(t, want, collect())
}

func TestRegistry_AllPins_UndefinedSurface(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.AllPins("Z")
	require.ErrorIs(t, err, ErrUnknownPin)
}
