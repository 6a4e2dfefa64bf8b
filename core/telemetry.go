package core

import "time"

// TelemetryHook receives notifications about request lifecycle events.
// Implementations can use this for logging, metrics, tracing, etc.
//
// Event types carry only operational metadata: request and response payloads
// are never included, so telemetry output can be logged or shipped to
// monitoring systems without leaking document contents.
type TelemetryHook interface {
	// OnRequestStart is called when a request to the service begins.
	OnRequestStart(e RequestStartEvent)

	// OnRequestEnd is called when a request to the service completes.
	OnRequestEnd(e RequestEndEvent)
}

// RequestStartEvent contains metadata about a starting request.
type RequestStartEvent struct {
	Op     string    // "find" or "insert"
	Method string    // HTTP method on the wire
	Path   string    // endpoint path, e.g. /db/data/find/user/1.0
	Start  time.Time // when the request started
}

// RequestEndEvent contains metadata about a completed request.
type RequestEndEvent struct {
	Op     string
	Method string
	Path   string
	Status int       // HTTP status, 0 if the request never reached the service
	Start  time.Time // when the request started
	End    time.Time // when the request completed
	Err    error     // nil on success
}

// Duration returns the elapsed time for the request.
func (e RequestEndEvent) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// NoopTelemetryHook is a no-op implementation of TelemetryHook.
// Use this as a default when no telemetry is configured.
type NoopTelemetryHook struct{}

// OnRequestStart does nothing.
func (NoopTelemetryHook) OnRequestStart(RequestStartEvent) {}

// OnRequestEnd does nothing.
func (NoopTelemetryHook) OnRequestEnd(RequestEndEvent) {}
