package caelum

import (
	"context"
	"time"
)

// Timeout returns middleware that adds a deadline to the request context.
// Handlers are expected to observe ctx.Done and finish on their own; the
// response they leave behind is still written.
func Timeout(d time.Duration) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *Request, res *Response) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			next(ctx, req, res)
		}
	}
}
