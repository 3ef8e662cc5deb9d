package controller

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	m "pintrace.dev/pkg/pintrace/internal/model"
)

const (
	// cellWidth is the inner width of one grid cell in the ASCII chart.
	cellWidth = 8

	// gridSeparator sits between adjacent surface charts.
	gridSeparator = "  "
)

// groupPalette holds the high-contrast background colors cycled through by
// connection groups.
var groupPalette = []lipgloss.Color{
	"1", "2", "4", "5", "6", // red, green, blue, magenta, cyan
	"208", "52", "22", "129", "177", // orange, maroon, dark green, purple, pink
	"19", "28", "135", "202", "36", // dark blue, forest, lavender, deep orange, dark cyan
}

// chartRenderer turns a Topology into colored ASCII grid charts.
type chartRenderer struct {
	color bool

	pinColor  map[m.Pin]int
	freeColor map[m.Pin]int
	active    map[m.Pin]bool
}

func newChartRenderer(components []m.Group, active map[m.Pin]bool, color bool) *chartRenderer {
	r := &chartRenderer{
		color:     color,
		pinColor:  make(map[m.Pin]int),
		freeColor: make(map[m.Pin]int),
		active:    active,
	}

	// Components arrive in display priority order, so on overlap the
	// higher-priority group keeps the cell color.
	for i, group := range components {
		for _, pin := range group {
			if _, _, ok := pin.Designator(); ok {
				if _, taken := r.pinColor[pin]; !taken {
					r.pinColor[pin] = i
				}

				continue
			}

			if _, taken := r.freeColor[pin]; !taken {
				r.freeColor[pin] = i
			}
		}
	}

	return r
}

// renderTopology builds the complete chart section: the consolidated
// side-by-side surface grids, the state-only grids when the state files
// connect anything on their own, and the external pin legend.
func renderTopology(topology m.Topology, color bool) string {
	r := newChartRenderer(topology.Components, topology.Active, color)

	var b strings.Builder

	b.WriteString(r.renderSurfaces(topology.Surfaces))
	b.WriteString("\nNote: bold italic pins are active per their state file.\n")

	if len(topology.StateComponents) > 0 {
		state := newChartRenderer(topology.StateComponents, topology.Active, color)

		b.WriteString("\nSTATE CONNECTIONS ONLY (definition wiring excluded):\n")
		b.WriteString(state.renderSurfaces(topology.Surfaces))
		b.WriteString("\n")
	}

	if legend := r.renderLegend(topology); legend != "" {
		b.WriteString("\nEXTERNAL CONNECTIONS:\n")
		b.WriteString(legend)
	}

	return b.String()
}

func (r *chartRenderer) renderSurfaces(surfaces []m.Surface) string {
	blocks := make([]string, 0, len(surfaces)*2)
	for i, surface := range surfaces {
		if i > 0 {
			blocks = append(blocks, gridSeparator)
		}

		blocks = append(blocks, r.renderSurface(surface))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

func (r *chartRenderer) renderSurface(surface m.Surface) string {
	border := "+" + strings.Repeat(strings.Repeat("-", cellWidth)+"+", surface.Columns)

	lines := []string{fmt.Sprintf("SWITCH %s", surface.Designator), border}

	for row := 1; row <= surface.Rows; row++ {
		var cells strings.Builder

		cells.WriteString("|")

		for column := 1; column <= surface.Columns; column++ {
			pin := surface.Pin(surface.Index(column, row))
			cells.WriteString(r.renderCell(pin))
			cells.WriteString("|")
		}

		lines = append(lines, cells.String(), border)
	}

	return strings.Join(lines, "\n")
}

func (r *chartRenderer) renderCell(pin m.Pin) string {
	text := center(string(pin), cellWidth)
	if !r.color {
		return text
	}

	style := lipgloss.NewStyle()
	if group, ok := r.pinColor[pin]; ok {
		style = style.Background(groupPalette[group%len(groupPalette)])
	}

	if r.active[pin] {
		style = style.Bold(true).Italic(true)
	}

	return style.Render(text)
}

// renderLegend draws the single-row table of free (external) pins using the
// group colors, or returns "" when no free pin participates.
func (r *chartRenderer) renderLegend(topology m.Topology) string {
	seen := make(map[m.Pin]bool)

	var items []m.Pin

	for _, group := range topology.Components {
		for _, pin := range group {
			if _, _, ok := pin.Designator(); !ok && !seen[pin] {
				seen[pin] = true
				items = append(items, pin)
			}
		}
	}

	for _, pin := range topology.E2EPins {
		if _, _, ok := pin.Designator(); !ok && !seen[pin] {
			seen[pin] = true
			items = append(items, pin)
		}
	}

	if len(items) == 0 {
		return ""
	}

	sort.SliceStable(items, func(i, j int) bool {
		ci, iOK := r.freeColor[items[i]]
		cj, jOK := r.freeColor[items[j]]

		if iOK != jOK {
			return iOK
		}

		if iOK && ci != cj {
			return ci < cj
		}

		return strings.ToUpper(string(items[i])) < strings.ToUpper(string(items[j]))
	})

	border := "+" + strings.Repeat(strings.Repeat("-", cellWidth)+"+", len(items))

	var row strings.Builder

	row.WriteString("|")

	for _, pin := range items {
		text := center(string(pin), cellWidth)

		if group, ok := r.freeColor[pin]; ok && r.color {
			text = lipgloss.NewStyle().Background(groupPalette[group%len(groupPalette)]).Render(text)
		}

		row.WriteString(text)
		row.WriteString("|")
	}

	return border + "\n" + row.String() + "\n" + border + "\n"
}

func center(text string, width int) string {
	if len(text) >= width {
		return text[:width]
	}

	left := (width - len(text)) / 2

	return strings.Repeat(" ", left) + text + strings.Repeat(" ", width-len(text)-left)
}
