package logger

import (
	"context"
	log "log/slog"
)

// TraceIDKey is the context key carrying the request trace id.
const TraceIDKey = "trace_id"

// ContextHandler attaches the trace id from ctx to every record.
type ContextHandler struct {
	log.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r log.Record) error {
	if ctx != nil {
		if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
			r.AddAttrs(log.String("trace_id", traceID))
		}
	}
	return h.Handler.Handle(ctx, r)
}
