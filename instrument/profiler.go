package instrument

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	resultOK    = "ok"
	resultError = "error"
)

// ProfilerConfig contains configuration
// for a profiler
type ProfilerConfig struct {
	// Logger receives one entry per profiled call.
	// zap.L() is used if it is nil.
	Logger *zap.Logger
	// Histogram, if set, observes call durations in seconds.
	// It must have the labels "operation" and "result".
	Histogram *prometheus.HistogramVec
}

// Profiler measures the duration and heap usage of
// the functions it wraps
type Profiler struct {
	logger    *zap.Logger
	histogram *prometheus.HistogramVec
}

// NewProfiler creates a profiler
func NewProfiler(config ProfilerConfig) *Profiler {
	profiler := &Profiler{logger: config.Logger, histogram: config.Histogram}

	if profiler.logger == nil {
		profiler.logger = zap.L()
	}

	return profiler
}

// With returns a profiler whose log entries carry fields
func (profiler *Profiler) With(fields ...zap.Field) *Profiler {
	return &Profiler{
		logger:    profiler.logger.With(fields...),
		histogram: profiler.histogram,
	}
}

// Wrap returns a function that calls fn and reports how long it
// took and how much heap it used. The returned function returns
// whatever fn returns.
func (profiler *Profiler) Wrap(operation string, fn func() error) func() error {
	logger := profiler.logger.With(zap.String("operation", operation))

	return func() error {
		var before runtime.MemStats
		runtime.ReadMemStats(&before)
		start := time.Now()

		err := fn()

		duration := time.Since(start)
		var after runtime.MemStats
		runtime.ReadMemStats(&after)

		usage := heapUsage(before, after)
		fields := []zap.Field{
			zap.Duration("duration", duration),
			zap.Uint64("allocated_bytes", usage.allocated),
			zap.Uint64("heap_bytes", usage.current),
			zap.Uint64("peak_heap_bytes", usage.peak),
		}

		result := resultOK

		if err != nil {
			result = resultError
			fields = append(fields, zap.Error(err))
		}

		logger.Info("profiled", fields...)

		if profiler.histogram != nil {
			profiler.histogram.WithLabelValues(operation, result).Observe(duration.Seconds())
		}

		return err
	}
}

type usage struct {
	allocated uint64
	current   uint64
	peak      uint64
}

// heapUsage derives usage figures from two memory snapshots. The
// heap can't have grown by more than was allocated between the
// snapshots, so the live heap before plus that allocation bounds
// the high-water mark from above.
func heapUsage(before, after runtime.MemStats) usage {
	allocated := after.TotalAlloc - before.TotalAlloc
	peak := before.HeapAlloc + allocated

	if after.HeapAlloc > peak {
		peak = after.HeapAlloc
	}

	return usage{
		allocated: allocated,
		current:   after.HeapAlloc,
		peak:      peak,
	}
}
