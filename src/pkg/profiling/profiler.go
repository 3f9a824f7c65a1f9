package profiling

import (
	"math"
	"time"

	"go.uber.org/atomic"

	"github.com/cloudfoundry/ticks-release/src/internal/metrics"
	"github.com/cloudfoundry/ticks-release/src/pkg/eventlogging"
	"github.com/cloudfoundry/ticks-release/src/pkg/ticks"
	"github.com/cloudfoundry/ticks-release/src/pkg/tracing"
)

const (
	StartTimestampField = "startTimestamp"
	EndTimestampField   = "endTimestamp"
	ExecutionTimeField  = "executionTime"
)

type State int32

const (
	Created State = iota
	Running
	Recorded
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Running:
		return "running"
	case Recorded:
		return "recorded"
	default:
		return "unknown"
	}
}

// Profiler times one operation and records it as a single event. It is not
// safe for concurrent use, except for Finish which records at most once.
type Profiler struct {
	event      *eventlogging.Event
	controller tracing.Controller
	metrics    metrics.Registrar
	now        func() time.Time

	retentionPolicy *string
	startTimestamp  *float64
	start           time.Time

	tags   eventlogging.Tags
	fields eventlogging.Fields
	spans  []Span
	open   *Span

	state   atomic.Int32
	outcome eventlogging.RecordOutcome
}

// New starts profiling name. The start instant is captured here unless
// WithStartTimestamp is given.
func New(eventLogger *eventlogging.EventLogger, name string, opts ...Option) *Profiler {
	p := &Profiler{
		metrics: metrics.NewNullRegistrar(),
		now:     time.Now,
		tags:    eventlogging.Tags{},
		fields:  eventlogging.Fields{},
	}

	for _, o := range opts {
		o(p)
	}

	if p.retentionPolicy != nil {
		p.event = eventLogger.NewEventWithRetentionPolicy(name, *p.retentionPolicy)
	} else {
		p.event = eventLogger.NewEvent(name)
	}

	if p.startTimestamp != nil {
		p.start = time.Unix(0, int64(math.Round(*p.startTimestamp*1e6))*int64(time.Microsecond))
	} else {
		p.start = p.now()
	}

	return p
}

type Option func(*Profiler)

// WithRetentionPolicy binds the event to retentionPolicy.
func WithRetentionPolicy(retentionPolicy string) Option {
	return func(p *Profiler) {
		p.retentionPolicy = &retentionPolicy
	}
}

// WithTracingController sets the source of the trace, span and parent span
// ids written with the event.
func WithTracingController(c tracing.Controller) Option {
	return func(p *Profiler) {
		p.controller = c
	}
}

// WithStartTimestamp uses seconds since the epoch as the start instant.
func WithStartTimestamp(seconds float64) Option {
	return func(p *Profiler) {
		p.startTimestamp = &seconds
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *Profiler) {
		p.now = now
	}
}

func WithMetrics(m metrics.Registrar) Option {
	return func(p *Profiler) {
		p.metrics = m
	}
}

func (p *Profiler) State() State {
	return State(p.state.Load())
}

// StartTimestamp returns the start instant in seconds since the epoch.
func (p *Profiler) StartTimestamp() float64 {
	return seconds(p.start)
}

// Event returns the underlying event. Changes made to it are kept unless
// Finish overwrites them.
func (p *Profiler) Event() *eventlogging.Event {
	return p.event
}

func (p *Profiler) AddTag(key, value string) {
	p.running()
	p.tags[key] = value
}

func (p *Profiler) AddTags(tags eventlogging.Tags) {
	p.running()
	for k, v := range tags {
		p.tags[k] = v
	}
}

func (p *Profiler) AddField(key string, value eventlogging.FieldValue) {
	p.running()
	p.fields[key] = value
}

func (p *Profiler) AddFields(fields eventlogging.Fields) {
	p.running()
	for k, v := range fields {
		p.fields[k] = v
	}
}

// StartNewSpan finishes the open span, if any, and opens a new one.
func (p *Profiler) StartNewSpan(name string) {
	p.running()

	now := p.now()
	p.finishSpan(now)
	p.open = &Span{
		Name:        name,
		StartOffset: now.Sub(p.start).Seconds(),
		start:       now,
	}
}

func (p *Profiler) FinishSpan() {
	p.running()
	p.finishSpan(p.now())
}

// Spans returns the finished spans in the order they were started.
func (p *Profiler) Spans() []Span {
	return append([]Span(nil), p.spans...)
}

// Finish records the event. Only the first call writes; later calls return
// false.
func (p *Profiler) Finish() (eventlogging.RecordOutcome, bool) {
	for {
		s := p.state.Load()
		if State(s) == Recorded {
			return eventlogging.RecordOutcome{}, false
		}
		if p.state.CompareAndSwap(s, int32(Recorded)) {
			break
		}
	}

	end := p.now()
	p.finishSpan(end)

	fields := eventlogging.Fields{
		StartTimestampField: eventlogging.Float(seconds(p.start)),
		EndTimestampField:   eventlogging.Float(seconds(end)),
		ExecutionTimeField:  eventlogging.Float(end.Sub(p.start).Seconds()),
	}
	for k, v := range p.fields {
		fields[k] = v
	}
	for i, name := range spanFieldNames(p.spans) {
		fields[name+".startOffset"] = eventlogging.Float(p.spans[i].StartOffset)
		fields[name+".executionTime"] = eventlogging.Float(p.spans[i].ExecutionTime)
	}

	p.event.AddTags(p.tags)
	p.event.AddFields(fields)
	p.setTraceIDs()
	p.event.SetTimestamp(p.start.UnixNano() / int64(time.Microsecond))

	p.outcome = p.event.RecordWithPrecision(ticks.Microseconds)
	p.metrics.Inc(metrics.TicksProfilesRecordedTotal)

	return p.outcome, true
}

func (p *Profiler) setTraceIDs() {
	if p.controller == nil {
		return
	}

	if id := p.controller.TraceID(); id != "" {
		p.event.SetTraceID(id)
	}
	if id := p.controller.SpanID(); id != "" {
		p.event.SetSpanID(id)
	}
	if id := p.controller.ParentSpanID(); id != "" {
		p.event.SetParentSpanID(id)
	}
}

func (p *Profiler) finishSpan(now time.Time) {
	if p.open == nil {
		return
	}

	p.open.ExecutionTime = now.Sub(p.open.start).Seconds()
	p.spans = append(p.spans, *p.open)
	p.open = nil
}

func (p *Profiler) running() {
	p.state.CompareAndSwap(int32(Created), int32(Running))
}

// Profile runs fn inside a profiler and records it on every exit path. A
// panic in fn is re-raised after the event is recorded.
func Profile(eventLogger *eventlogging.EventLogger, name string, fn func(*Profiler), opts ...Option) eventlogging.RecordOutcome {
	p := New(eventLogger, name, opts...)
	func() {
		defer p.Finish()
		fn(p)
	}()

	return p.outcome
}

func seconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
