package core

import (
	"context"
	"time"
)

// TelemetryHook receives notifications about call lifecycle events.
// Implementations can use this for logging, metrics, tracing, etc.
// Hooks are invoked synchronously on the calling goroutine and must be
// safe for concurrent use.
//
// Events never include request or response bodies (analysed text, images,
// model features) or credentials. Only operational metadata is exposed.
type TelemetryHook interface {
	// OnCallStart is called before a request is handed to the transport.
	OnCallStart(e CallStartEvent)

	// OnCallEnd is called once the call has produced its result or error.
	OnCallEnd(e CallEndEvent)
}

// CallStartEvent contains metadata about a starting call.
type CallStartEvent struct {
	Context   context.Context // The call's context, carrying the caller's trace
	Box       string          // Box identifier (e.g., "textbox")
	Op        string          // Operation name (e.g., "check")
	Method    string          // HTTP method
	Path      string          // Request path relative to the base URL
	RequestID string          // Client request ID, empty unless enabled
	Start     time.Time       // When the call started
}

// CallEndEvent contains metadata about a completed call.
type CallEndEvent struct {
	Context   context.Context
	Box       string
	Op        string
	Method    string
	Path      string
	RequestID string
	Status    int // HTTP status, zero when no response was received
	Start     time.Time
	End       time.Time
	Err       error // Error if the call failed, nil on success
}

// Duration returns the elapsed time for the call.
func (e CallEndEvent) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// NoopTelemetryHook is a no-op implementation of TelemetryHook.
type NoopTelemetryHook struct{}

// OnCallStart does nothing.
func (NoopTelemetryHook) OnCallStart(CallStartEvent) {}

// OnCallEnd does nothing.
func (NoopTelemetryHook) OnCallEnd(CallEndEvent) {}

// MultiTelemetryHook fans events out to several hooks in order.
type MultiTelemetryHook []TelemetryHook

// OnCallStart forwards e to every hook.
func (m MultiTelemetryHook) OnCallStart(e CallStartEvent) {
	for _, h := range m {
		h.OnCallStart(e)
	}
}

// OnCallEnd forwards e to every hook.
func (m MultiTelemetryHook) OnCallEnd(e CallEndEvent) {
	for _, h := range m {
		h.OnCallEnd(e)
	}
}

// Compile-time checks that the hooks implement TelemetryHook.
var (
	_ TelemetryHook = NoopTelemetryHook{}
	_ TelemetryHook = MultiTelemetryHook(nil)
)
