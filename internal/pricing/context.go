package pricing

import "context"

type contextKey string

const capabilitiesKey contextKey = "capabilities"

// Capabilities are granted by whoever authenticated the caller.
type Capabilities struct {
	Activate bool
	Export   bool
}

func NewContextWithCapabilities(ctx context.Context, caps Capabilities) context.Context {
	return context.WithValue(ctx, capabilitiesKey, caps)
}

func CapabilitiesFromContext(ctx context.Context) (Capabilities, bool) {
	caps, ok := ctx.Value(capabilitiesKey).(Capabilities)

	return caps, ok
}
