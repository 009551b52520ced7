package caelum

import (
	"context"

	"github.com/google/uuid"
)

type requestIDKey struct{}

// RequestIDConfig configures the RequestID middleware.
type RequestIDConfig struct {
	Header    string        // default: "X-Request-ID"
	Generator func() string // default: uuid.NewString
}

// RequestID returns middleware that assigns a unique ID to each request.
// The ID is read from the request header (if present) or generated.
// It is stored in the context and set on the response header.
func RequestID(cfg ...RequestIDConfig) Middleware {
	c := RequestIDConfig{
		Header:    "X-Request-ID",
		Generator: uuid.NewString,
	}
	if len(cfg) > 0 {
		if cfg[0].Header != "" {
			c.Header = cfg[0].Header
		}
		if cfg[0].Generator != nil {
			c.Generator = cfg[0].Generator
		}
	}

	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *Request, res *Response) {
			id := req.Headers.Get(c.Header)
			if id == "" {
				id = c.Generator()
			}

			ctx = context.WithValue(ctx, requestIDKey{}, id)
			res.header().Set(c.Header, id)
			next(ctx, req, res)
		}
	}
}

// RequestIDFromContext extracts the request ID set by the RequestID
// middleware, or "" when none is present.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
