package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the pintrace build version",
		Long:  "Print the version and Go toolchain recorded in the binary's build info.",
		Run: func(cmd *cobra.Command, _ []string) {
			info, ok := debug.ReadBuildInfo()
			if !ok {
				cmd.Println("pintrace version unknown (no build info)")
				return
			}

			version := info.Main.Version
			if version == "" {
				version = "devel"
			}

			cmd.Printf("pintrace %s (%s)\n", version, info.GoVersion)
		},
	}
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
