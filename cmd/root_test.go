package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"serve", "companies", "dossier", "export", "seed"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "targets-navigator", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestCompaniesCommand_Flags(t *testing.T) {
	for _, name := range []string{"country", "tier", "revenue-band", "category", "industry", "tag", "sort", "desc", "limit", "offset"} {
		assert.NotNil(t, companiesCmd.Flags().Lookup(name), "companies should have --%s flag", name)
	}
	assert.Equal(t, "overall_score", companiesCmd.Flags().Lookup("sort").DefValue)
	assert.Equal(t, "true", companiesCmd.Flags().Lookup("desc").DefValue)
}

func TestExportCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range exportCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"company", "dossier", "compare"} {
		assert.True(t, names[name], "export should have subcommand %q", name)
	}
	assert.NotNil(t, exportCompareCmd.Flags().Lookup("xlsx"))
}

func TestExportCompare_ArgsLimit(t *testing.T) {
	assert.Error(t, exportCompareCmd.Args(exportCompareCmd, nil))
	assert.NoError(t, exportCompareCmd.Args(exportCompareCmd, []string{"a", "b", "c", "d", "e"}))
	assert.Error(t, exportCompareCmd.Args(exportCompareCmd, []string{"a", "b", "c", "d", "e", "f"}))
}

func TestSeedCommand_Flags(t *testing.T) {
	flag := seedCmd.Flags().Lookup("driver")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "log-level", "log-format"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "root should have --%s flag", name)
	}
}

func newRootFlagsCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{}
	addRootFlags(cmd.Flags())
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestLoadConfig_FileAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "navigator.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n  format: json\nstore:\n  driver: sqlite\n"), 0o644))

	c, err := loadConfig(newRootFlagsCmd(t, "--config", path, "--log-format", "console"))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", c.Store.Driver)
	assert.Equal(t, "warn", c.Log.Level)
	assert.Equal(t, "console", c.Log.Format)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := loadConfig(newRootFlagsCmd(t, "--config", filepath.Join(t.TempDir(), "nope.yaml")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}
