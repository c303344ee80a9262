// Package metrics counts the work done by a simulation run and the
// numerical events worth a second look: extrapolated atmosphere queries and
// depths with too few electrons above the Cherenkov threshold. Metrics are
// kept in a package registry and written out in the Prometheus text format
// at the end of a run.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registry = prometheus.NewRegistry()

	showersGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cherenkov_showers_generated_total",
			Help: "Total number of shower profiles generated.",
		},
	)

	extrapolatedQueries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cherenkov_extrapolated_queries_total",
			Help: "Atmosphere queries outside the tabulated altitude range.",
		},
	)

	starvedDepths = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cherenkov_threshold_starved_depths_total",
			Help: "Shower depths with too few electrons above Cherenkov threshold.",
		},
	)

	computeDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cherenkov_compute_duration_seconds",
			Help:    "Duration of each computation stage in seconds.",
			Buckets: prometheus.ExponentialBuckets(1e-4, 4, 10),
		},
		[]string{"stage"},
	)
)

func init() {
	registry.MustRegister(showersGenerated)
	registry.MustRegister(extrapolatedQueries)
	registry.MustRegister(starvedDepths)
	registry.MustRegister(computeDurationSeconds)
}

// Registry returns the registry holding every metric of this package.
func Registry() *prometheus.Registry { return registry }

// ShowerGenerated counts one generated shower profile.
func ShowerGenerated() { showersGenerated.Inc() }

// Extrapolated counts n atmosphere queries outside the table.
func Extrapolated(n int) { extrapolatedQueries.Add(float64(n)) }

// Starved counts n threshold-starved depths.
func Starved(n int) { starvedDepths.Add(float64(n)) }

// Now returns the current time. It is meant to be paired with ObserveStage
// in a defer statement.
func Now() time.Time { return time.Now() }

// ObserveStage records the time elapsed since start for the named stage.
func ObserveStage(stage string, start time.Time) {
	computeDurationSeconds.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// WriteTextfile writes every metric to path in the Prometheus text format,
// as read by the node exporter's textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry())
}
