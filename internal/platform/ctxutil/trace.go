package ctxutil

import "context"

type traceKey struct{}

// Trace carries the ids that tie a request's log lines and spans together.
type Trace struct {
	TraceID   string
	RequestID string
}

func WithTrace(ctx context.Context, t Trace) context.Context {
	return context.WithValue(ctx, traceKey{}, t)
}

func TraceFrom(ctx context.Context) (Trace, bool) {
	if ctx == nil {
		return Trace{}, false
	}
	t, ok := ctx.Value(traceKey{}).(Trace)
	return t, ok
}

// LogFields returns key/value pairs for the ids present on ctx.
func LogFields(ctx context.Context) []any {
	t, ok := TraceFrom(ctx)
	if !ok {
		return nil
	}
	var kv []any
	if t.TraceID != "" {
		kv = append(kv, "trace_id", t.TraceID)
	}
	if t.RequestID != "" {
		kv = append(kv, "request_id", t.RequestID)
	}
	return kv
}
