package model

// Surface is the rectangular pin grid of one physical switch. Pins are
// numbered from 1 in row-major reading order: pin k sits at column
// ((k-1) mod Columns)+1, row ((k-1) div Columns)+1.
type Surface struct {
	Designator string
	Columns    int
	Rows       int
}

// Count returns the total number of pins on the surface.
func (s Surface) Count() int {
	return s.Columns * s.Rows
}

// Position maps a 1-based pin index to its 1-based (column, row) cell.
// The mapping is a bijection onto all cells for 1 <= k <= Count().
func (s Surface) Position(k int) (column, row int) {
	return (k-1)%s.Columns + 1, (k-1)/s.Columns + 1
}

// Index maps a 1-based (column, row) cell back to its pin index.
func (s Surface) Index(column, row int) int {
	return (row-1)*s.Columns + column
}

// Pin returns the canonical pin for the 1-based index k.
func (s Surface) Pin(k int) Pin {
	return SurfacePin(s.Designator, k)
}

// Contains reports whether k is a valid pin index for this surface.
func (s Surface) Contains(k int) bool {
	return k >= 1 && k <= s.Count()
}
