package testing

import "go.uber.org/atomic"

// SpyTracingController returns fixed identifiers and counts how often they
// are read.
type SpyTracingController struct {
	Trace  string
	Span   string
	Parent string

	TraceIDCalls atomic.Int32
	SpanIDCalls  atomic.Int32
}

func NewSpyTracingController(traceID, spanID, parentSpanID string) *SpyTracingController {
	return &SpyTracingController{
		Trace:  traceID,
		Span:   spanID,
		Parent: parentSpanID,
	}
}

func (s *SpyTracingController) TraceID() string {
	s.TraceIDCalls.Inc()
	return s.Trace
}

func (s *SpyTracingController) SpanID() string {
	s.SpanIDCalls.Inc()
	return s.Span
}

func (s *SpyTracingController) ParentSpanID() string {
	return s.Parent
}
