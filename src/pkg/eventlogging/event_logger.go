package eventlogging

import (
	"fmt"
	"sync"
	"time"

	"github.com/cloudfoundry/ticks-release/src/internal/metrics"
	"github.com/cloudfoundry/ticks-release/src/pkg/influx"
	"github.com/cloudfoundry/ticks-release/src/pkg/logger"
	"github.com/cloudfoundry/ticks-release/src/pkg/ticks"
)

var influxPrecisions = map[ticks.Precision]string{
	ticks.Hours:        influx.PrecisionHours,
	ticks.Minutes:      influx.PrecisionMinutes,
	ticks.Seconds:      influx.PrecisionSeconds,
	ticks.Milliseconds: influx.PrecisionMilliseconds,
	ticks.Microseconds: influx.PrecisionMicroseconds,
	ticks.Nanoseconds:  influx.PrecisionNanoseconds,
}

// EventLogger creates events and writes them to InfluxDB. Write failures
// are logged as warnings and never returned to the caller.
type EventLogger struct {
	client      influx.Client
	log         *logger.Logger
	metrics     metrics.Registrar
	clock       ticks.Clock
	backendName string
	defaultTags Tags

	mu              sync.RWMutex
	database        string
	retentionPolicy *string
}

func NewEventLogger(client influx.Client, log *logger.Logger, opts ...EventLoggerOption) *EventLogger {
	l := &EventLogger{
		client:      client,
		log:         log,
		metrics:     metrics.NewNullRegistrar(),
		clock:       ticks.SystemClock,
		backendName: "InfluxDB",
		defaultTags: Tags{},
	}

	for _, o := range opts {
		o(l)
	}

	return l
}

type EventLoggerOption func(*EventLogger)

// WithDefaultTags sets tags applied to every new event. The map is copied.
func WithDefaultTags(tags Tags) EventLoggerOption {
	return func(l *EventLogger) {
		l.defaultTags = make(Tags, len(tags))
		for k, v := range tags {
			l.defaultTags[k] = v
		}
	}
}

func WithDatabase(database string) EventLoggerOption {
	return func(l *EventLogger) {
		l.database = database
	}
}

func WithRetentionPolicy(retentionPolicy string) EventLoggerOption {
	return func(l *EventLogger) {
		l.retentionPolicy = &retentionPolicy
	}
}

func WithMetrics(m metrics.Registrar) EventLoggerOption {
	return func(l *EventLogger) {
		l.metrics = m
	}
}

func WithClock(clock ticks.Clock) EventLoggerOption {
	return func(l *EventLogger) {
		l.clock = clock
	}
}

// WithBackendName changes the backend name used in warning messages.
func WithBackendName(name string) EventLoggerOption {
	return func(l *EventLogger) {
		l.backendName = name
	}
}

// NewEvent returns an event carrying the default tags. It uses the logger's
// retention policy at write time.
func (l *EventLogger) NewEvent(name string) *Event {
	return &Event{
		eventLogger: l,
		point:       newPoint(name, l.defaultTags),
	}
}

// NewEventWithRetentionPolicy returns an event bound to retentionPolicy,
// regardless of later SetRetentionPolicy calls.
func (l *EventLogger) NewEventWithRetentionPolicy(name, retentionPolicy string) *Event {
	e := l.NewEvent(name)
	e.retentionPolicy = &retentionPolicy
	return e
}

func (l *EventLogger) SetDatabase(database string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.database = database
}

func (l *EventLogger) Database() string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.database
}

func (l *EventLogger) SetRetentionPolicy(retentionPolicy string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.retentionPolicy = &retentionPolicy
}

func (l *EventLogger) RetentionPolicy() (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.retentionPolicy == nil {
		return "", false
	}
	return *l.retentionPolicy, true
}

// DefaultTags returns a copy of the tags applied to new events.
func (l *EventLogger) DefaultTags() Tags {
	tags := make(Tags, len(l.defaultTags))
	for k, v := range l.defaultTags {
		tags[k] = v
	}
	return tags
}

// Record makes a single write attempt for point. A non-nil retentionPolicy
// takes precedence over the logger's policy. A precision without a backend
// unit is a programming error and panics with ticks.ErrUnsupportedPrecision.
func (l *EventLogger) Record(point *Point, precision ticks.Precision, retentionPolicy *string) RecordOutcome {
	unit, ok := influxPrecisions[precision]
	if !ok {
		panic(fmt.Errorf("%w: %s", ticks.ErrUnsupportedPrecision, precision))
	}

	l.mu.RLock()
	database := l.database
	rp := l.retentionPolicy
	l.mu.RUnlock()

	if retentionPolicy != nil {
		rp = retentionPolicy
	}

	var policy string
	if rp != nil {
		policy = *rp
	}

	start := time.Now()

	err := l.write(point, precision, database, policy, unit)
	if err != nil {
		l.log.Warn(
			fmt.Sprintf("Logging to %s failed: %s", l.backendName, err),
			logger.String("error", err.Error()),
		)
		l.metrics.Inc(metrics.TicksEventsSuppressedTotal, point.measurement)

		return RecordOutcome{Status: StatusSuppressed, Reason: err}
	}

	l.metrics.Histogram(metrics.TicksEventWriteDurationSeconds).Observe(time.Since(start).Seconds())
	l.metrics.Inc(metrics.TicksEventsWrittenTotal, point.measurement)

	return RecordOutcome{Status: StatusWritten}
}

func (l *EventLogger) write(point *Point, precision ticks.Precision, database, retentionPolicy, unit string) error {
	pt, err := point.Build(precision)
	if err != nil {
		return err
	}

	return l.client.Write(database, retentionPolicy, unit, pt)
}
