package instrument

import "github.com/prometheus/client_golang/prometheus"

// NewHistogram creates the duration histogram expected by
// ProfilerConfig. It is not registered anywhere.
func NewHistogram(namespace string) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "txstore",
			Name:      "operation_duration_seconds",
			Help:      "Bucketed histogram of processing time (s) of profiled store operations.",
			Buckets:   prometheus.ExponentialBuckets(0.000001, 4, 12),
		}, []string{"operation", "result"})
}
