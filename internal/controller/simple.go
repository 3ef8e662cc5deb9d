package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	m "pintrace.dev/pkg/pintrace/internal/model"
)

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd   *cobra.Command
	color bool
}

// NewSimpleUI creates a new SimpleUI. color enables lipgloss-styled charts.
func NewSimpleUI(cmd *cobra.Command, color bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, color: color}
}

// DisplaySurfaces prints the surface table and the declared e2e pins.
func (s *SimpleUI) DisplaySurfaces(ctx context.Context, surfaces []m.Surface, e2ePins []m.Pin) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s\n", renderSurfaceTable(surfaces))
	s.printf("e2e pins: %s\n", joinPins(e2ePins))

	return nil
}

// DisplayTopology prints the e2e partition, the shorted summary, the merged
// component table and the grid charts.
func (s *SimpleUI) DisplayTopology(ctx context.Context, topology m.Topology) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s\n", renderPartitionTable(topology.Partition))

	for _, line := range shortSummary(topology) {
		s.printf("%s\n", line)
	}

	s.printf("\n%s\n", renderComponentTable(topology.Components))
	s.printf("\n%s\n", renderTopology(topology, s.color))

	return nil
}

func (s *SimpleUI) printf(format string, args ...any) {
	s.cmd.Printf(format, args...)
}

func renderSurfaceTable(surfaces []m.Surface) string {
	var buffer bytes.Buffer

	table := tablewriter.NewWriter(&buffer)
	table.SetHeader([]string{"Surface", "Columns", "Rows", "Pins"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
	})

	total := 0

	for _, surface := range surfaces {
		table.Append([]string{
			surface.Designator,
			fmt.Sprintf("%d", surface.Columns),
			fmt.Sprintf("%d", surface.Rows),
			fmt.Sprintf("%d", surface.Count()),
		})

		total += surface.Count()
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Surfaces %d", len(surfaces)), "", "",
		fmt.Sprintf("%d", total),
	})
	table.Render()

	return buffer.String()
}

func renderPartitionTable(partition m.Partition) string {
	var buffer bytes.Buffer

	table := tablewriter.NewWriter(&buffer)
	table.SetHeader([]string{"Node", "E2E Pins"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})

	for i, group := range partition {
		table.Append([]string{fmt.Sprintf("%d", i+1), joinPins(group)})
	}

	table.Render()

	return buffer.String()
}

func renderComponentTable(components []m.Group) string {
	var buffer bytes.Buffer

	table := tablewriter.NewWriter(&buffer)
	table.SetHeader([]string{"Group", "Connected Pins"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})

	for i, group := range components {
		table.Append([]string{fmt.Sprintf("%d", i+1), joinPins(group)})
	}

	table.Render()

	return buffer.String()
}

// shortSummary builds the "X is shorted to" lines for every e2e pin: the
// other e2e pins and free pins sharing its electrical node.
func shortSummary(topology m.Topology) []string {
	var lines []string

	e2eSet := make(map[m.Pin]bool, len(topology.E2EPins))
	for _, pin := range topology.E2EPins {
		e2eSet[pin] = true
	}

	for _, group := range topology.Partition {
		others := make(map[m.Pin][]m.Pin)

		for _, component := range topology.Components {
			if !containsPin(component, group[0]) {
				continue
			}

			for _, pin := range group {
				for _, member := range component {
					_, _, surfacePin := member.Designator()
					if member != pin && (!surfacePin || e2eSet[member]) {
						others[pin] = append(others[pin], member)
					}
				}
			}

			break
		}

		for _, pin := range group {
			if len(others[pin]) == 0 {
				lines = append(lines, fmt.Sprintf("%s is shorted to: nothing", pin))
				continue
			}

			lines = append(lines, fmt.Sprintf("%s is shorted to: %s", pin, joinPins(others[pin])))
		}
	}

	return lines
}

func containsPin(group m.Group, pin m.Pin) bool {
	for _, member := range group {
		if member == pin {
			return true
		}
	}

	return false
}

func joinPins(pins []m.Pin) string {
	names := make([]string, 0, len(pins))
	for _, pin := range pins {
		names = append(names, string(pin))
	}

	return strings.Join(names, ", ")
}
