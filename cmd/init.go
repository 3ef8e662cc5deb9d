package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// starterConfig mirrors the viper keys so the generated file can be edited
// by hand and read back unchanged.
type starterConfig struct {
	Version  int    `yaml:"version"`
	Data     string `yaml:"data"`
	StateDir string `yaml:"state-dir"`
	NoColor  bool   `yaml:"no-color"`
	Run      struct {
		Parallel int `yaml:"parallel"`
	} `yaml:"run"`
	Log struct {
		Filename   string `yaml:"filename"`
		Level      int    `yaml:"level"`
		Verbose    bool   `yaml:"verbose"`
		MaxSize    int    `yaml:"max_size"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAge     int    `yaml:"max_age"`
		Compress   bool   `yaml:"compress"`
	} `yaml:"log"`
}

func defaultStarterConfig() starterConfig {
	config := starterConfig{
		Version:  currentConfigVersion,
		Data:     defaultDataFile,
		StateDir: defaultStateDir,
		NoColor:  defaultNoColor,
	}
	config.Run.Parallel = defaultRunParallel
	config.Log.Filename = defaultLogFilename
	config.Log.Level = defaultLogLevel
	config.Log.Verbose = defaultLogVerbose
	config.Log.MaxSize = defaultLogMaxSize
	config.Log.MaxBackups = defaultLogMaxBackups
	config.Log.MaxAge = defaultLogMaxAge
	config.Log.Compress = defaultLogCompress

	return config
}

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a default pintrace.yaml configuration file",
		Long: `Create a pintrace.yaml in the current working directory populated with the
current CLI defaults so it can be edited manually.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			if _, err := os.Stat(targetPath); err == nil {
				return fmt.Errorf("config file %s already exists", targetPath)
			}

			content, err := yaml.Marshal(defaultStarterConfig())
			if err != nil {
				return fmt.Errorf("failed to render config: %w", err)
			}

			if err := os.WriteFile(targetPath, content, 0o644); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
}
