package controller

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	m "pintrace.dev/pkg/pintrace/internal/model"
)

// TUI implements UI using Bubble Tea for interactive chart display.
type TUI struct {
	cmd *cobra.Command
}

// NewTUI creates a new TUI writing to the command's output stream.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{cmd: cmd}
}

// DisplaySurfaces prints the surface listing; it is short, so no program
// is started.
func (t *TUI) DisplaySurfaces(ctx context.Context, surfaces []m.Surface, e2ePins []m.Pin) error {
	return NewSimpleUI(t.cmd, false).DisplaySurfaces(ctx, surfaces, e2ePins)
}

// DisplayTopology shows the charts inside a scrollable viewport. When the
// output is not a terminal it falls back to plain printing.
func (t *TUI) DisplayTopology(ctx context.Context, topology m.Topology) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	out := t.cmd.OutOrStdout()
	if f, ok := out.(*os.File); !ok || !IsTTY(f) {
		return NewSimpleUI(t.cmd, false).DisplayTopology(ctx, topology)
	}

	model := newTopologyModel(topology)

	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run topology viewer: %w", err)
	}

	return nil
}

type topologyKeyMap struct {
	Quit key.Binding
}

var topologyKeys = topologyKeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

var (
	tuiTitleStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tuiFooterStyle = lipgloss.NewStyle().Faint(true).Padding(0, 1)
)

// topologyModel is the Bubble Tea model wrapping the rendered charts in a
// viewport.
type topologyModel struct {
	topology m.Topology
	viewport viewport.Model
	ready    bool
}

func newTopologyModel(topology m.Topology) topologyModel {
	return topologyModel{topology: topology}
}

func (tm topologyModel) Init() tea.Cmd {
	return nil
}

func (tm topologyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, topologyKeys.Quit) {
			return tm, tea.Quit
		}

	case tea.WindowSizeMsg:
		headerHeight := lipgloss.Height(tm.headerView())
		footerHeight := lipgloss.Height(tm.footerView())
		contentHeight := msg.Height - headerHeight - footerHeight

		if !tm.ready {
			tm.viewport = viewport.New(msg.Width, contentHeight)
			tm.viewport.SetContent(tm.content())
			tm.ready = true
		} else {
			tm.viewport.Width = msg.Width
			tm.viewport.Height = contentHeight
		}
	}

	var cmd tea.Cmd
	tm.viewport, cmd = tm.viewport.Update(msg)

	return tm, cmd
}

func (tm topologyModel) View() string {
	if !tm.ready {
		return "loading charts..."
	}

	return tm.headerView() + "\n" + tm.viewport.View() + "\n" + tm.footerView()
}

func (tm topologyModel) headerView() string {
	return tuiTitleStyle.Render("pintrace - switch topology")
}

func (tm topologyModel) footerView() string {
	return tuiFooterStyle.Render(fmt.Sprintf("%3.f%%  ↑/↓ scroll  q quit", tm.viewport.ScrollPercent()*100))
}

func (tm topologyModel) content() string {
	var b strings.Builder

	b.WriteString(renderPartitionTable(tm.topology.Partition))
	b.WriteString("\n")

	for _, line := range shortSummary(tm.topology) {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderComponentTable(tm.topology.Components))
	b.WriteString("\n")
	b.WriteString(renderTopology(tm.topology, true))

	return b.String()
}
