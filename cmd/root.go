// Package cmd provides the root command and CLI setup for pintrace.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"pintrace.dev/pkg/pintrace/internal/adapter"
	"pintrace.dev/pkg/pintrace/internal/controller"
	"pintrace.dev/pkg/pintrace/internal/domain"
	m "pintrace.dev/pkg/pintrace/internal/model"
)

var definitionStore adapter.DefinitionStore
var stateFS adapter.StateFS
var reportStore adapter.ReportStore

// newWorkflow builds a workflow for one command invocation. Tests swap it
// to observe the arguments without touching the filesystem.
var newWorkflow = domain.NewWorkflow

// dataFileFlag points at the shared pinout definition input.
var dataFileFlag string

// stateDirFlag is the directory state file base names resolve against.
var stateDirFlag string

// noColorFlag disables colored chart output when set.
var noColorFlag bool

// verboseFlag raises the log level to debug.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	definitionStore = adapter.NewDefinitionStore()
	stateFS = adapter.NewLocalStateFS()
	reportStore = adapter.NewReportStore()
}

const stateArgsHelp = `Each positional argument is the extension-free base name of one switch
state file (left -> left.csv), one per surface defined in the data file,
in definition order.`

const rootLongDescription = `pintrace models multi-pole switches as pin grids, merges the connections
declared by each switch position file into electrical nodes, and reports
which of the designated end-to-end pins end up connected.

` + stateArgsHelp

const runLongDescription = `Analyze the given combination of switch positions and report the
resulting topology.

` + stateArgsHelp

const checkLongDescription = `Validate the definition input and the given state files without
producing a report.

` + stateArgsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pintrace",
		Short: "Switch pin connectivity analyzer",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger("", viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&dataFileFlag, dataFlagName, "d",
			viper.GetString(dataFlagName),
			"pinout definition file with grid and e2epins declarations",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(dataFlagName), dataFlagName)

	cmd.PersistentFlags().StringVar(&stateDirFlag, stateDirFlagName, viper.GetString(stateDirFlagName), "directory containing the switch state files")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(stateDirFlagName), stateDirFlagName)

	cmd.PersistentFlags().BoolVar(&noColorFlag, noColorFlagName, viper.GetBool(noColorFlagName), "disable colored chart output")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(noColorFlagName), noColorFlagName)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// runArgsFromFlags assembles RunArgs from the bound config values and the
// positional state file bases.
func runArgsFromFlags(args []string) domain.RunArgs {
	bases := make([]m.Path, 0, len(args))
	for _, arg := range args {
		bases = append(bases, m.Path(arg))
	}

	return domain.RunArgs{
		Definition: m.Path(viper.GetString(dataFlagName)),
		StateDir:   m.Path(viper.GetString(stateDirFlagName)),
		StateBases: bases,
		Threads:    viper.GetInt(runParallelConfigKey),
		Report:     m.Path(reportPathFlag),
	}
}

// chartColor reports whether charts should be colored: an attached
// terminal and no --no-color.
func chartColor() bool {
	return controller.IsTTY(os.Stdout) && !viper.GetBool(noColorFlagName)
}
