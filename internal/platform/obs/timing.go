package obs

import (
	"context"
	"time"

	"field-ops-service/internal/platform/logger"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// WithRequestID stores the request id used to correlate timing lines.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// RequestID returns the request id stored in ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// Time starts timing the named operation. Call the returned func (usually
// deferred) with a pointer to the operation's error.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	reqID := RequestID(ctx)

	return func(errp *error) {
		dur := time.Since(start)
		timingLog := logger.New("obs")
		OperationDuration.WithLabelValues(name).Observe(dur.Seconds())

		if errp != nil && *errp != nil {
			timingLog.Warnf("req_id=%s op=%s dur=%dms err=%v", reqID, name, dur.Milliseconds(), *errp)
			return
		}
		timingLog.Debugf("req_id=%s op=%s dur=%dms", reqID, name, dur.Milliseconds())
	}
}
