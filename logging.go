package caelum

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Logger returns middleware that logs one line per dispatched request,
// after the handler runs. Requests carrying an ID from the RequestID
// middleware include it as a field.
func Logger(log *zap.Logger) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *Request, res *Response) {
			start := time.Now()
			next(ctx, req, res)

			fields := []zap.Field{
				zap.String("verb", req.Verb),
				zap.String("path", req.Path),
				zap.Int("status", res.Status),
				zap.Duration("latency", time.Since(start)),
				zap.Int("size", len(res.Body)),
				zap.String("remote", req.RemoteAddr),
			}
			if id := RequestIDFromContext(ctx); id != "" {
				fields = append(fields, zap.String("request_id", id))
			}
			log.Info("request", fields...)
		}
	}
}
