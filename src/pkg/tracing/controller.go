package tracing

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// Controller supplies the identifiers of the operation being profiled. An
// empty string means the identifier is absent.
type Controller interface {
	TraceID() string
	SpanID() string
	ParentSpanID() string
}

type spanContextController struct {
	traceID      string
	spanID       string
	parentSpanID string
}

// FromContext reads the OpenTelemetry span context stored in ctx. A context
// without a valid span context yields a controller with empty identifiers.
func FromContext(ctx context.Context) Controller {
	return fromContext(ctx)
}

// FromContextWithParent is FromContext with the parent span id read from
// parent.
func FromContextWithParent(ctx, parent context.Context) Controller {
	c := fromContext(ctx)
	if c.traceID == "" {
		return c
	}

	psc := trace.SpanContextFromContext(parent)
	if psc.IsValid() && psc.TraceID().String() == c.traceID {
		c.parentSpanID = psc.SpanID().String()
	}
	return c
}

func fromContext(ctx context.Context) spanContextController {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return spanContextController{}
	}

	return spanContextController{
		traceID: sc.TraceID().String(),
		spanID:  sc.SpanID().String(),
	}
}

func (c spanContextController) TraceID() string      { return c.traceID }
func (c spanContextController) SpanID() string       { return c.spanID }
func (c spanContextController) ParentSpanID() string { return c.parentSpanID }
