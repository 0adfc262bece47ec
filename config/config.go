package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jrife/txstore/utils/log"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

// Config controls the txstore command
type Config struct {
	LogLevel  string `toml:"log-level"`
	LogFormat string `toml:"log-format"`

	// Metrics enables the duration histogram on profiled operations.
	Metrics          bool   `toml:"metrics"`
	MetricsNamespace string `toml:"metrics-namespace"`
}

func getLogLevel() (logLevel string) {
	logLevel = "info"
	if l := os.Getenv("LOG_LEVEL"); len(l) != 0 {
		logLevel = l
	}
	return
}

// NewDefaultConfig returns the configuration used when no file is given
func NewDefaultConfig() *Config {
	return &Config{
		LogLevel:         getLogLevel(),
		LogFormat:        log.FormatJSON,
		Metrics:          false,
		MetricsNamespace: "txstore",
	}
}

// Load reads a TOML file on top of the default configuration.
// Keys the file sets that Config doesn't know about are an error.
func Load(path string) (*Config, error) {
	conf := NewDefaultConfig()

	if path == "" {
		return conf, nil
	}

	md, err := toml.DecodeFile(path, conf)

	if err != nil {
		return nil, errors.Wrapf(err, "could not decode config file %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		keys := make([]string, len(undecoded))

		for i, key := range undecoded {
			keys[i] = key.String()
		}

		return nil, errors.Errorf("unknown keys in config file %s: %s", path, strings.Join(keys, ", "))
	}

	return conf, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	var level zapcore.Level

	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return errors.Errorf("invalid log-level %q", c.LogLevel)
	}

	if c.LogFormat != log.FormatJSON && c.LogFormat != log.FormatConsole {
		return errors.Errorf("log-format must be %q or %q, got %q", log.FormatJSON, log.FormatConsole, c.LogFormat)
	}

	if c.Metrics && c.MetricsNamespace == "" {
		return errors.New("metrics-namespace must not be empty when metrics are enabled")
	}

	return nil
}
