package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pintrace.dev/pkg/pintrace/internal/controller"
	m "pintrace.dev/pkg/pintrace/internal/model"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List defined surfaces and e2e pins",
		Long:  "List the surfaces declared by the definition input and the designated e2e pin set.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ui := controller.NewSimpleUI(cmd, false)
			workflow := newWorkflow(definitionStore, stateFS, reportStore, ui)

			return workflow.Describe(cmd.Context(), m.Path(viper.GetString(dataFlagName)))
		},
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
