package cmd

import (
	"github.com/spf13/cobra"

	"pintrace.dev/pkg/pintrace/internal/controller"
)

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <state>...",
		Short: "Validate the definition and state inputs",
		Long:  checkLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			ui := controller.NewSimpleUI(cmd, false)
			workflow := newWorkflow(definitionStore, stateFS, reportStore, ui)

			if err := workflow.Check(cmd.Context(), runArgsFromFlags(args)); err != nil {
				return err
			}

			cmd.Println("OK")

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
