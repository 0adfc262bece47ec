package config_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/jrife/txstore/config"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	dir, err := ioutil.TempDir("", "txstore-config")
	require.NoError(t, err)

	t.Cleanup(func() { os.RemoveAll(dir) })

	path := filepath.Join(dir, "txstore.toml")
	require.NoError(t, ioutil.WriteFile(path, []byte(contents), 0644))

	return path
}

func TestDefaultConfig(t *testing.T) {
	os.Unsetenv("LOG_LEVEL")

	conf, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, "info", conf.LogLevel)
	require.Equal(t, "json", conf.LogFormat)
	require.False(t, conf.Metrics)
	require.NoError(t, conf.Validate())
}

func TestDefaultConfigLogLevelFromEnv(t *testing.T) {
	os.Setenv("LOG_LEVEL", "debug")
	defer os.Unsetenv("LOG_LEVEL")

	require.Equal(t, "debug", config.NewDefaultConfig().LogLevel)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
log-level = "warn"
log-format = "console"
metrics = true
metrics-namespace = "demo"
`)

	conf, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, &config.Config{
		LogLevel:         "warn",
		LogFormat:        "console",
		Metrics:          true,
		MetricsNamespace: "demo",
	}, conf)
	require.NoError(t, conf.Validate())
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	os.Unsetenv("LOG_LEVEL")
	path := writeConfig(t, `metrics = true`)

	conf, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "info", conf.LogLevel)
	require.Equal(t, "txstore", conf.MetricsNamespace)
	require.True(t, conf.Metrics)
}

func TestLoadUnknownKey(t *testing.T) {
	path := writeConfig(t, `log-levl = "debug"`)

	_, err := config.Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "log-levl")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(os.TempDir(), "txstore-does-not-exist.toml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	testCases := map[string]struct {
		conf config.Config
		ok   bool
	}{
		"valid":             {conf: config.Config{LogLevel: "error", LogFormat: "json"}, ok: true},
		"bad-level":         {conf: config.Config{LogLevel: "chatty", LogFormat: "json"}},
		"bad-format":        {conf: config.Config{LogLevel: "info", LogFormat: "yaml"}},
		"metrics-namespace": {conf: config.Config{LogLevel: "info", LogFormat: "json", Metrics: true}},
	}

	for name, testCase := range testCases {
		testCase := testCase

		t.Run(name, func(t *testing.T) {
			err := testCase.conf.Validate()

			if testCase.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}
