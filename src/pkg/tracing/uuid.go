package tracing

import "github.com/google/uuid"

// UUIDController generates random identifiers for processes that are not
// instrumented with OpenTelemetry.
type UUIDController struct {
	traceID      string
	spanID       string
	parentSpanID string
}

// NewUUIDController starts a new trace. parentSpanID may be empty.
func NewUUIDController(parentSpanID string) *UUIDController {
	return &UUIDController{
		traceID:      uuid.NewString(),
		spanID:       uuid.NewString(),
		parentSpanID: parentSpanID,
	}
}

// Child returns a controller for a nested span in the same trace.
func (c *UUIDController) Child() *UUIDController {
	return &UUIDController{
		traceID:      c.traceID,
		spanID:       uuid.NewString(),
		parentSpanID: c.spanID,
	}
}

func (c *UUIDController) TraceID() string      { return c.traceID }
func (c *UUIDController) SpanID() string       { return c.spanID }
func (c *UUIDController) ParentSpanID() string { return c.parentSpanID }
