package main

import (
	"context"

	"github.com/jrife/txstore/config"
	"github.com/jrife/txstore/instrument"
	"github.com/jrife/txstore/selfcheck"
	"github.com/jrife/txstore/utils/log"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

type options struct {
	configPath string
	logLevel   string
	logFormat  string
	metrics    bool
}

func bindFlags(flags *pflag.FlagSet, opts *options) {
	flags.StringVar(&opts.configPath, "config", "", "config file path")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level, overrides the config file")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format (json or console), overrides the config file")
	flags.BoolVar(&opts.metrics, "metrics", false, "record a duration histogram for profiled operations")
}

// app holds what every subcommand needs once flags and
// the config file have been resolved
type app struct {
	conf     *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	profiler *instrument.Profiler
}

func newApp(flags *pflag.FlagSet, opts options) (*app, error) {
	conf, err := config.Load(opts.configPath)

	if err != nil {
		return nil, err
	}

	if flags.Changed("log-level") {
		conf.LogLevel = opts.logLevel
	}

	if flags.Changed("log-format") {
		conf.LogFormat = opts.logFormat
	}

	if flags.Changed("metrics") {
		conf.Metrics = opts.metrics
	}

	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	logger, err := log.New(conf.LogLevel, conf.LogFormat)

	if err != nil {
		return nil, errors.Wrap(err, "could not build logger")
	}

	a := &app{conf: conf, logger: logger}
	profilerConfig := instrument.ProfilerConfig{Logger: logger}

	if conf.Metrics {
		histogram := instrument.NewHistogram(conf.MetricsNamespace)
		a.registry = prometheus.NewRegistry()

		if err := a.registry.Register(histogram); err != nil {
			return nil, errors.Wrap(err, "could not register histogram")
		}

		profilerConfig.Histogram = histogram
	}

	a.profiler = instrument.NewProfiler(profilerConfig)

	return a, nil
}

func (a *app) check(ctx context.Context) error {
	a.logger.Info("running self-check", zap.Int("scenarios", len(selfcheck.Scenarios)))

	if err := selfcheck.Run(ctx, a.logger); err != nil {
		return errors.Wrap(err, "self-check failed")
	}

	a.logger.Info("self-check passed")

	return nil
}

func (a *app) demo() error {
	a.logger.Info("running profiled demo")

	if err := selfcheck.Demo(a.profiler); err != nil {
		return errors.Wrap(err, "demo failed")
	}

	a.logMetrics()

	return nil
}

// logMetrics logs how many observations each histogram
// series received. It does nothing if metrics are disabled.
func (a *app) logMetrics() {
	if a.registry == nil {
		return
	}

	families, err := a.registry.Gather()

	if err != nil {
		a.logger.Warn("could not gather metrics", zap.Error(err))
		return
	}

	for _, family := range families {
		for _, metric := range family.GetMetric() {
			fields := []zap.Field{zap.String("metric", family.GetName())}

			for _, label := range metric.GetLabel() {
				fields = append(fields, zap.String(label.GetName(), label.GetValue()))
			}

			fields = append(fields,
				zap.Uint64("samples", metric.GetHistogram().GetSampleCount()),
				zap.Float64("sum_seconds", metric.GetHistogram().GetSampleSum()),
			)

			a.logger.Info("metric", fields...)
		}
	}
}

func newRootCommand() *cobra.Command {
	var opts options
	var a *app

	root := &cobra.Command{
		Use:           "txstore",
		Short:         "Exercise the nested transaction store",
		Long:          "Runs the transaction store self-check followed by a profiled demo. Use a subcommand to run only one of them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			a, err = newApp(cmd.Flags(), opts)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.logger.Sync()

			if err := a.check(context.Background()); err != nil {
				return err
			}

			return a.demo()
		},
	}

	bindFlags(root.PersistentFlags(), &opts)

	root.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Run the self-check scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.logger.Sync()
			return a.check(context.Background())
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "demo",
		Short: "Run a profiled transaction and log its cost",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.logger.Sync()
			return a.demo()
		},
	})

	return root
}
