package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestInitCommand_WritesStarterConfig(t *testing.T) {
	_, err := executeCommand(t, "init")
	require.NoError(t, err)

	content, err := os.ReadFile(configFileName)
	require.NoError(t, err)

	var config starterConfig
	require.NoError(t, yaml.Unmarshal(content, &config))
	require.Equal(t, defaultStarterConfig(), config)
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile(configFileName, []byte("version: 1\n"), 0o644))

	var buffer bytes.Buffer

	rootCmd.SetOut(&buffer)
	rootCmd.SetErr(&buffer)
	rootCmd.SetArgs([]string{"init"})

	err := rootCmd.Execute()
	require.ErrorContains(t, err, "already exists")
}
