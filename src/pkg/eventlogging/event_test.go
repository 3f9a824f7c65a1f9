package eventlogging_test

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cloudfoundry/ticks-release/src/internal/testing"
	. "github.com/cloudfoundry/ticks-release/src/pkg/eventlogging"
	"github.com/cloudfoundry/ticks-release/src/pkg/logger"
	"github.com/cloudfoundry/ticks-release/src/pkg/ticks"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

type eventTestContext struct {
	eventLogger *EventLogger
	event       *Event
	client      *testing.SpyInfluxClient
	clock       *testing.StubClock
	logs        *observer.ObservedLogs
	spyMetrics  *testing.SpyMetricRegistrar
}

func setupEventLogger(opts ...EventLoggerOption) eventTestContext {
	client := testing.NewSpyInfluxClient()
	clock := testing.NewStubClock(time.Unix(1730723729, 161300000), 1730723729161388499)
	core, logs := observer.New(zap.WarnLevel)
	spyMetrics := testing.NewSpyMetricRegistrar()

	opts = append([]EventLoggerOption{
		WithClock(clock),
		WithMetrics(spyMetrics),
		WithDefaultTags(Tags{"host": "test-host"}),
	}, opts...)

	eventLogger := NewEventLogger(client, logger.New(zap.New(core)), opts...)

	return eventTestContext{
		eventLogger: eventLogger,
		event:       eventLogger.NewEvent("request"),
		client:      client,
		clock:       clock,
		logs:        logs,
		spyMetrics:  spyMetrics,
	}
}

var _ = Describe("Event", func() {
	Describe("name", func() {
		It("starts with the name given to the logger", func() {
			tc := setupEventLogger()

			Expect(tc.event.Name()).To(Equal("request"))
		})

		It("can be changed", func() {
			tc := setupEventLogger()

			tc.event.SetName("response")
			Expect(tc.event.Name()).To(Equal("response"))
		})
	})

	Describe("trace identifiers", func() {
		It("stores the trace id as a field", func() {
			tc := setupEventLogger()

			tc.event.SetTraceID("T1")

			traceID, ok := tc.event.TraceID()
			Expect(ok).To(BeTrue())
			Expect(traceID).To(Equal("T1"))
			Expect(tc.event.Fields()).To(HaveKeyWithValue("traceID", String("T1")))
			Expect(tc.event.Tags()).ToNot(HaveKey("traceID"))
		})

		It("stores span and parent span ids as fields", func() {
			tc := setupEventLogger()

			tc.event.SetSpanID("S1")
			tc.event.SetParentSpanID("P1")

			spanID, ok := tc.event.SpanID()
			Expect(ok).To(BeTrue())
			Expect(spanID).To(Equal("S1"))

			parentSpanID, ok := tc.event.ParentSpanID()
			Expect(ok).To(BeTrue())
			Expect(parentSpanID).To(Equal("P1"))

			Expect(tc.event.Fields()).To(HaveKeyWithValue("spanID", String("S1")))
			Expect(tc.event.Fields()).To(HaveKeyWithValue("parentSpanID", String("P1")))
		})

		It("reports unset identifiers as absent", func() {
			tc := setupEventLogger()

			_, ok := tc.event.TraceID()
			Expect(ok).To(BeFalse())
			_, ok = tc.event.SpanID()
			Expect(ok).To(BeFalse())
			_, ok = tc.event.ParentSpanID()
			Expect(ok).To(BeFalse())
		})

		It("reports a non-string identifier field as absent", func() {
			tc := setupEventLogger()

			tc.event.AddFields(Fields{"spanID": Int(7)})

			_, ok := tc.event.SpanID()
			Expect(ok).To(BeFalse())
		})
	})

	Describe("SetUUIDValue()", func() {
		It("stores any string as a field", func() {
			tc := setupEventLogger()

			tc.event.SetUUIDValue("requestID", "not-a-uuid")

			Expect(tc.event.Fields()).To(HaveKeyWithValue("requestID", String("not-a-uuid")))
		})
	})

	Describe("tags", func() {
		It("carries the default tags", func() {
			tc := setupEventLogger()

			Expect(tc.event.Tags()).To(Equal(Tags{"host": "test-host"}))
		})

		It("replaces all tags with SetTags()", func() {
			tc := setupEventLogger()

			tc.event.SetTags(Tags{"a": "0", "c": "4"})

			Expect(tc.event.Tags()).To(Equal(Tags{"a": "0", "c": "4"}))
		})

		It("merges tags with AddTags()", func() {
			tc := setupEventLogger()

			tc.event.SetTags(Tags{"a": "0", "c": "4"})
			tc.event.AddTags(Tags{"a": "1"})
			tc.event.AddTags(Tags{"a": "2", "b": "3"})

			Expect(tc.event.Tags()).To(Equal(Tags{"a": "2", "b": "3", "c": "4"}))
		})

		It("does not keep a reference to the caller's map", func() {
			tc := setupEventLogger()

			tags := Tags{"a": "1"}
			tc.event.SetTags(tags)
			tags["a"] = "2"

			Expect(tc.event.Tags()).To(Equal(Tags{"a": "1"}))
		})

		It("returns a copy", func() {
			tc := setupEventLogger()

			tc.event.Tags()["host"] = "changed"

			Expect(tc.event.Tags()).To(Equal(Tags{"host": "test-host"}))
		})
	})

	Describe("fields", func() {
		It("replaces all fields with SetFields()", func() {
			tc := setupEventLogger()

			tc.event.SetTraceID("T1")
			tc.event.SetFields(Fields{"duration": Float(1.5)})

			Expect(tc.event.Fields()).To(Equal(Fields{"duration": Float(1.5)}))
			_, ok := tc.event.TraceID()
			Expect(ok).To(BeFalse())
		})

		It("merges fields with AddFields()", func() {
			tc := setupEventLogger()

			tc.event.SetFields(Fields{"a": Int(1), "ok": Bool(false)})
			tc.event.AddFields(Fields{"a": String("2"), "b": Float(3)})

			Expect(tc.event.Fields()).To(Equal(Fields{
				"a":  String("2"),
				"b":  Float(3),
				"ok": Bool(false),
			}))
		})
	})

	Describe("timestamps", func() {
		It("has no timestamp until one is set", func() {
			tc := setupEventLogger()

			Expect(tc.event.Timestamp().IsSet()).To(BeFalse())
		})

		It("stores integer timestamps verbatim", func() {
			tc := setupEventLogger()

			tc.event.SetTimestamp(1734352683)

			ts := tc.event.Timestamp()
			Expect(ts.IsString()).To(BeFalse())
			Expect(ts.Int64()).To(Equal(int64(1734352683)))
		})

		It("stores string timestamps verbatim", func() {
			tc := setupEventLogger()

			tc.event.SetTimestampString("1734352683351600")

			ts := tc.event.Timestamp()
			Expect(ts.IsString()).To(BeTrue())
			Expect(ts.String()).To(Equal("1734352683351600"))
		})

		It("keeps only the last value", func() {
			tc := setupEventLogger()

			tc.event.SetTimestampString("1")
			tc.event.SetTimestamp(2)

			Expect(tc.event.Timestamp()).To(Equal(IntTimestamp(2)))
		})

		DescribeTable("RecordTimestampWithPrecision() stores the current time",
			func(precision ticks.Precision, expected int64) {
				tc := setupEventLogger()

				Expect(tc.event.RecordTimestampWithPrecision(precision)).To(Succeed())
				Expect(tc.event.Timestamp()).To(Equal(IntTimestamp(expected)))
			},
			Entry("hours", ticks.Hours, int64(480757)),
			Entry("minutes", ticks.Minutes, int64(28845395)),
			Entry("seconds", ticks.Seconds, int64(1730723729)),
			Entry("milliseconds", ticks.Milliseconds, int64(1730723729161)),
			Entry("microseconds", ticks.Microseconds, int64(1730723729161300)),
			Entry("nanoseconds", ticks.Nanoseconds, int64(1730723729161388499)),
		)

		It("records nanoseconds by default", func() {
			tc := setupEventLogger()

			Expect(tc.event.RecordTimestamp()).To(Succeed())
			Expect(tc.event.Timestamp()).To(Equal(IntTimestamp(1730723729161388499)))
		})

		It("keeps the previous timestamp when the wall clock fails", func() {
			tc := setupEventLogger()
			tc.event.SetTimestamp(42)
			tc.clock.FailWallClock(errors.New("clock unavailable"))

			err := tc.event.RecordTimestamp()

			Expect(errors.Is(err, ticks.ErrTimestampUnavailable)).To(BeTrue())
			Expect(tc.event.Timestamp()).To(Equal(IntTimestamp(42)))
		})
	})

	Describe("Record()", func() {
		It("writes with nanosecond precision by default", func() {
			tc := setupEventLogger(WithDatabase("events"))
			tc.event.AddFields(Fields{"value": Int(1)})

			outcome := tc.event.Record()

			Expect(outcome.Written()).To(BeTrue())
			Expect(tc.client.LastWrite().Precision).To(Equal("ns"))
			Expect(tc.client.LastWrite().Database).To(Equal("events"))
		})

		It("writes with the given precision", func() {
			tc := setupEventLogger()
			tc.event.AddFields(Fields{"value": Int(1)})
			tc.event.SetTimestamp(1734352683)

			tc.event.RecordWithPrecision(ticks.Seconds)

			Expect(tc.client.LastWrite().Precision).To(Equal("s"))
			Expect(tc.client.LastPoint().Time()).To(BeTemporally("==", time.Unix(1734352683, 0)))
		})

		It("writes again on every call", func() {
			tc := setupEventLogger()
			tc.event.AddFields(Fields{"value": Int(1)})

			tc.event.Record()
			tc.event.AddFields(Fields{"value": Int(2)})
			tc.event.Record()

			writes := tc.client.Writes()
			Expect(writes).To(HaveLen(2))

			first, err := writes[0].Points[0].Fields()
			Expect(err).ToNot(HaveOccurred())
			Expect(first).To(HaveKeyWithValue("value", int64(1)))

			second, err := writes[1].Points[0].Fields()
			Expect(err).ToNot(HaveOccurred())
			Expect(second).To(HaveKeyWithValue("value", int64(2)))
		})

		It("passes the bound retention policy", func() {
			tc := setupEventLogger(WithRetentionPolicy("1-month"))
			event := tc.eventLogger.NewEventWithRetentionPolicy("request", "7d")
			event.AddFields(Fields{"value": Int(1)})

			rp, ok := event.RetentionPolicy()
			Expect(ok).To(BeTrue())
			Expect(rp).To(Equal("7d"))

			event.Record()

			Expect(tc.client.LastWrite().RetentionPolicy).To(Equal("7d"))
		})
	})
})
