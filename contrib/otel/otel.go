// Package otel records machinebox calls as OpenTelemetry spans.
//
//	tb := textbox.New(url, core.WithTelemetry(otel.NewHook()))
//
// Each call becomes one client span named "<box>.<op>", timed from the
// start and end of the call and parented on the span in the call's context.
package otel

import (
	"context"

	gootel "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/petal-labs/machinebox/core"
)

const instrumentationName = "github.com/petal-labs/machinebox/contrib/otel"

// Span attribute keys.
const (
	AttrBox       = attribute.Key("machinebox.box")
	AttrOp        = attribute.Key("machinebox.op")
	AttrRequestID = attribute.Key("machinebox.request_id")
	AttrMethod    = attribute.Key("http.request.method")
	AttrPath      = attribute.Key("url.path")
	AttrStatus    = attribute.Key("http.response.status_code")
)

// Hook implements core.TelemetryHook.
type Hook struct {
	tracer trace.Tracer
}

// Option configures a Hook.
type Option func(*Hook)

// WithTracerProvider sets the provider spans are created from. The global
// provider is used by default.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(h *Hook) {
		h.tracer = tp.Tracer(instrumentationName)
	}
}

// NewHook creates a tracing hook.
func NewHook(opts ...Option) *Hook {
	h := &Hook{}
	for _, opt := range opts {
		opt(h)
	}
	if h.tracer == nil {
		h.tracer = gootel.GetTracerProvider().Tracer(instrumentationName)
	}
	return h
}

// OnCallStart does nothing; the span is recorded when the call ends.
func (h *Hook) OnCallStart(core.CallStartEvent) {}

// OnCallEnd records the finished call as a span.
func (h *Hook) OnCallEnd(e core.CallEndEvent) {
	attrs := []attribute.KeyValue{
		AttrBox.String(e.Box),
		AttrOp.String(e.Op),
		AttrMethod.String(e.Method),
		AttrPath.String(e.Path),
	}
	if e.Status != 0 {
		attrs = append(attrs, AttrStatus.Int(e.Status))
	}
	if e.RequestID != "" {
		attrs = append(attrs, AttrRequestID.String(e.RequestID))
	}

	ctx := e.Context
	if ctx == nil {
		ctx = context.Background()
	}
	_, span := h.tracer.Start(ctx, e.Box+"."+e.Op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithTimestamp(e.Start),
		trace.WithAttributes(attrs...),
	)
	if e.Err != nil {
		span.RecordError(e.Err)
		span.SetStatus(codes.Error, e.Err.Error())
	}
	span.End(trace.WithTimestamp(e.End))
}

// Compile-time check that Hook implements core.TelemetryHook.
var _ core.TelemetryHook = (*Hook)(nil)
