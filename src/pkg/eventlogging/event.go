package eventlogging

import "github.com/cloudfoundry/ticks-release/src/pkg/ticks"

// Trace identifiers are high-cardinality, so they are stored as fields.
const (
	TraceIDField      = "traceID"
	SpanIDField       = "spanID"
	ParentSpanIDField = "parentSpanID"
)

// Event is one measurement: a name, tags, fields and a timestamp. Events are
// created by an EventLogger and are not safe for concurrent use.
type Event struct {
	eventLogger     *EventLogger
	point           *Point
	retentionPolicy *string
}

func (e *Event) SetName(name string) {
	e.point.measurement = name
}

func (e *Event) Name() string {
	return e.point.measurement
}

func (e *Event) SetTraceID(traceID string) {
	e.point.fields[TraceIDField] = String(traceID)
}

func (e *Event) TraceID() (string, bool) {
	return e.stringField(TraceIDField)
}

func (e *Event) SetSpanID(spanID string) {
	e.point.fields[SpanIDField] = String(spanID)
}

func (e *Event) SpanID() (string, bool) {
	return e.stringField(SpanIDField)
}

func (e *Event) SetParentSpanID(spanID string) {
	e.point.fields[ParentSpanIDField] = String(spanID)
}

func (e *Event) ParentSpanID() (string, bool) {
	return e.stringField(ParentSpanIDField)
}

// SetUUIDValue stores an identifier under key. The value is not validated.
func (e *Event) SetUUIDValue(key, uuid string) {
	e.point.fields[key] = String(uuid)
}

// SetTags replaces all tags.
func (e *Event) SetTags(tags Tags) {
	e.point.tags = make(Tags, len(tags))
	e.AddTags(tags)
}

// AddTags sets tags on top of the existing ones.
func (e *Event) AddTags(tags Tags) {
	for k, v := range tags {
		e.point.tags[k] = v
	}
}

// Tags returns a copy of the tags.
func (e *Event) Tags() Tags {
	tags := make(Tags, len(e.point.tags))
	for k, v := range e.point.tags {
		tags[k] = v
	}
	return tags
}

// SetFields replaces all fields, including trace identifiers.
func (e *Event) SetFields(fields Fields) {
	e.point.fields = make(Fields, len(fields))
	e.AddFields(fields)
}

// AddFields sets fields on top of the existing ones.
func (e *Event) AddFields(fields Fields) {
	for k, v := range fields {
		e.point.fields[k] = v
	}
}

// Fields returns a copy of the fields.
func (e *Event) Fields() Fields {
	fields := make(Fields, len(e.point.fields))
	for k, v := range e.point.fields {
		fields[k] = v
	}
	return fields
}

// SetTimestamp stores a caller supplied timestamp. It must be expressed in
// the precision later passed to RecordWithPrecision.
func (e *Event) SetTimestamp(timestamp int64) {
	e.point.timestamp = IntTimestamp(timestamp)
}

// SetTimestampString stores a numeric string timestamp verbatim.
func (e *Event) SetTimestampString(timestamp string) {
	e.point.timestamp = StringTimestamp(timestamp)
}

func (e *Event) Timestamp() Timestamp {
	return e.point.timestamp
}

// RecordTimestamp stamps the event with the current time in nanoseconds.
func (e *Event) RecordTimestamp() error {
	return e.RecordTimestampWithPrecision(ticks.Nanoseconds)
}

// RecordTimestampWithPrecision stamps the event with the current time at the
// given precision. On error the previous timestamp is kept.
func (e *Event) RecordTimestampWithPrecision(precision ticks.Precision) error {
	timestamp, err := ticks.Resolve(e.eventLogger.clock, precision)
	if err != nil {
		return err
	}

	e.point.timestamp = IntTimestamp(timestamp)
	return nil
}

// RetentionPolicy returns the policy bound when the event was created.
func (e *Event) RetentionPolicy() (string, bool) {
	if e.retentionPolicy == nil {
		return "", false
	}
	return *e.retentionPolicy, true
}

// Record writes the event with nanosecond precision.
func (e *Event) Record() RecordOutcome {
	return e.RecordWithPrecision(ticks.Nanoseconds)
}

// RecordWithPrecision writes the event through its logger. Every call is a
// separate write.
func (e *Event) RecordWithPrecision(precision ticks.Precision) RecordOutcome {
	return e.eventLogger.Record(e.point, precision, e.retentionPolicy)
}

// Point exposes the event's point for direct use with EventLogger.Record.
func (e *Event) Point() *Point {
	return e.point
}

func (e *Event) stringField(key string) (string, bool) {
	v, ok := e.point.fields[key]
	if !ok {
		return "", false
	}
	return v.StringValue()
}
