// Package controller provides output adapters for displaying connectivity
// analysis results.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	m "pintrace.dev/pkg/pintrace/internal/model"
)

// UI defines the interface for presenting analysis results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// DisplaySurfaces lists the defined surfaces and the e2e pin set.
	DisplaySurfaces(ctx context.Context, surfaces []m.Surface, e2ePins []m.Pin) error

	// DisplayTopology renders the full analysis result: the e2e
	// partition, the merged components and the grid charts.
	DisplayTopology(ctx context.Context, topology m.Topology) error
}

// NewUI selects the UI implementation: interactive TUI on a terminal,
// plain tables otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd, false)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
