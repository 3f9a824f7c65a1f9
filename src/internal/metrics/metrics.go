package metrics

import "github.com/prometheus/client_golang/prometheus"

// Registrar is used to update values of metrics.
type Registrar interface {
	Set(name string, value float64, labels ...string)
	Add(name string, delta float64, labels ...string)
	Inc(name string, labels ...string)
	Histogram(name string, labels ...string) prometheus.Observer
	Registerer() prometheus.Registerer
	Gatherer() prometheus.Gatherer
}

const (
	TicksEventsWrittenTotal        = "ticks_events_written_total"
	TicksEventsSuppressedTotal     = "ticks_events_suppressed_total"
	TicksEventWriteDurationSeconds = "ticks_event_write_duration_seconds"

	TicksProfilesRecordedTotal = "ticks_profiles_recorded_total"

	TicksHeartbeatsTotal                      = "ticks_heartbeats_total"
	TicksHeartbeatLastSuccessTimestampSeconds = "ticks_heartbeat_last_success_timestamp_seconds"
)

// EventLoggerMetrics registers the metrics written by an event logger and
// the profilers built on top of it.
func EventLoggerMetrics() []RegistrarOption {
	return []RegistrarOption{
		WithLabelledCounter(TicksEventsWrittenTotal, prometheus.CounterOpts{
			Help: "Number of events written to the time-series backend",
		}, []string{"measurement"}),
		WithLabelledCounter(TicksEventsSuppressedTotal, prometheus.CounterOpts{
			Help: "Number of events dropped because the backend write failed",
		}, []string{"measurement"}),
		WithHistogram(TicksEventWriteDurationSeconds, prometheus.HistogramOpts{
			Help:    "Time spent writing a single event to the backend",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
		WithCounter(TicksProfilesRecordedTotal, prometheus.CounterOpts{
			Help: "Number of profiled operations that reached the recorded state",
		}),
	}
}
