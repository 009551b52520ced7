package caelum

import "context"

// HandlerFunc is the contract between the routing registry and
// application code: the handler reads the matched request and mutates the
// response. Expected business failures are expressed as non-2xx statuses
// on the response, never as panics; panics are reserved for defects and
// become 500s at the dispatch boundary.
type HandlerFunc func(ctx context.Context, req *Request, res *Response)

// Dispatcher produces a Response for a parsed Request. The inbound server
// depends on this contract alone; Router is the standard implementation.
type Dispatcher interface {
	Dispatch(ctx context.Context, req *Request) *Response
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(ctx context.Context, req *Request) *Response

// Dispatch calls f.
func (f DispatcherFunc) Dispatch(ctx context.Context, req *Request) *Response {
	return f(ctx, req)
}
