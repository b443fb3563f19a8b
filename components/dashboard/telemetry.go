package dashboard

import "context"

// Telemetry records dashboard events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

// TelemetryFunc adapts a function to the Telemetry interface.
type TelemetryFunc func(ctx context.Context, event string, payload map[string]any)

// Record satisfies Telemetry.
func (f TelemetryFunc) Record(ctx context.Context, event string, payload map[string]any) {
	f(ctx, event, payload)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

// TelemetryOrNoop returns t, or a no-op recorder when t is nil. Subpackages
// use it to apply the same default the core package does.
func TelemetryOrNoop(t Telemetry) Telemetry {
	return normalizeTelemetry(t)
}
