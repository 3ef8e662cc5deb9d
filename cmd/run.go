package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pintrace.dev/pkg/pintrace/internal/controller"
)

var runParallelFlag int

// reportPathFlag, when set, is where run writes the topology report.
var reportPathFlag string

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <state>...",
		Short: "Analyze a combination of switch positions",
		Long:  runLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			ui := controller.NewSimpleUI(cmd, chartColor())
			workflow := newWorkflow(definitionStore, stateFS, reportStore, ui)

			return workflow.Run(cmd.Context(), runArgsFromFlags(args))
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&runParallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of parallel workers for state file parsing")
	bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)
	cmd.Flags().StringVarP(&reportPathFlag, "report", "o", "", "write the analyzed topology to this YAML file")
}
