package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"pintrace.dev/pkg/pintrace/internal/controller"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view <state>...",
		Short: "Browse the analyzed topology interactively",
		Long: `Analyze the given combination of switch positions and browse the colored
grid charts in a scrollable viewer. Falls back to plain output when not
attached to a terminal.

` + stateArgsHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			ui := controller.NewUI(cmd, controller.IsTTY(os.Stdout))
			workflow := newWorkflow(definitionStore, stateFS, reportStore, ui)

			return workflow.Run(cmd.Context(), runArgsFromFlags(args))
		},
	}
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
