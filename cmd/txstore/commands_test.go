package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(args ...string) error {
	root := newRootCommand()
	root.SetArgs(args)

	return root.Execute()
}

func TestRootCommand(t *testing.T) {
	require.NoError(t, execute("--log-level", "error"))
}

func TestCheckCommand(t *testing.T) {
	require.NoError(t, execute("check", "--log-level", "error", "--log-format", "console"))
}

func TestDemoCommandWithMetrics(t *testing.T) {
	require.NoError(t, execute("demo", "--log-level", "error", "--metrics"))
}

func TestInvalidFlags(t *testing.T) {
	require.Error(t, execute("check", "--log-level", "shout"))
	require.Error(t, execute("check", "--log-format", "xml"))
	require.Error(t, execute("check", "extra-arg"))
}

func TestConfigFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "txstore-cmd")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "txstore.toml")
	require.NoError(t, ioutil.WriteFile(path, []byte("log-level = \"error\"\nmetrics = true\n"), 0644))

	root := newRootCommand()
	root.SetArgs([]string{"demo", "--config", path})
	require.NoError(t, root.Execute())

	require.Error(t, execute("demo", "--config", filepath.Join(dir, "missing.toml")))
}

func TestNewAppFlagOverrides(t *testing.T) {
	root := newRootCommand()
	require.NoError(t, root.PersistentFlags().Parse([]string{"--log-level", "warn", "--metrics"}))

	opts := options{logLevel: "warn", metrics: true}
	a, err := newApp(root.PersistentFlags(), opts)
	require.NoError(t, err)
	require.Equal(t, "warn", a.conf.LogLevel)
	require.True(t, a.conf.Metrics)
	require.NotNil(t, a.registry)
}
