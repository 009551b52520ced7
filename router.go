package caelum

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"
)

// Router is the routing registry: an ordered route table plus middleware,
// implementing Dispatcher. Routes are registered at startup and must not
// change once a server is serving the table.
type Router struct {
	routes     []*route
	middleware []Middleware

	log       *zap.Logger
	panicHook func(ctx context.Context, req *Request, recovered any)

	mu sync.Mutex
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithRouterLogger sets the logger used to report recovered panics.
func WithRouterLogger(log *zap.Logger) RouterOption {
	return func(r *Router) {
		r.log = log
	}
}

// WithPanicHook sets a hook observing values recovered at the dispatch
// boundary. The hook runs after the 500 response has been prepared;
// error trackers plug in here.
func WithPanicHook(hook func(ctx context.Context, req *Request, recovered any)) RouterOption {
	return func(r *Router) {
		r.panicHook = hook
	}
}

// NewRouter creates a Router with the given options.
func NewRouter(opts ...RouterOption) *Router {
	r := &Router{
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Use adds middleware. Middleware runs in the order added, around every
// dispatch including synthesized 404s.
func (r *Router) Use(mw ...Middleware) {
	r.middleware = append(r.middleware, mw...)
}

// Handle registers a handler for verb and pattern. It panics on a
// malformed pattern or a duplicate registration: both are startup
// configuration errors and must never surface at request time.
func (r *Router) Handle(verb, pattern string, h HandlerFunc) {
	rt := newRoute(verb, pattern, h)

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.routes {
		if existing.verb == verb && sameShape(existing.segments, rt.segments) {
			panic(fmt.Sprintf("caelum: duplicate route %s %s (conflicts with %s)", verb, pattern, existing.pattern))
		}
	}
	r.routes = append(r.routes, rt)
}

// Get registers a GET handler.
func (r *Router) Get(pattern string, h HandlerFunc) { r.Handle(http.MethodGet, pattern, h) }

// Post registers a POST handler.
func (r *Router) Post(pattern string, h HandlerFunc) { r.Handle(http.MethodPost, pattern, h) }

// Put registers a PUT handler.
func (r *Router) Put(pattern string, h HandlerFunc) { r.Handle(http.MethodPut, pattern, h) }

// Delete registers a DELETE handler.
func (r *Router) Delete(pattern string, h HandlerFunc) { r.Handle(http.MethodDelete, pattern, h) }

// Patch registers a PATCH handler.
func (r *Router) Patch(pattern string, h HandlerFunc) { r.Handle(http.MethodPatch, pattern, h) }

// Dispatch matches req against the route table and invokes the winning
// handler through the middleware chain. With no matching route it
// synthesizes a 404; a panic anywhere below becomes a 500 so one defect
// never kills the listener.
func (r *Router) Dispatch(ctx context.Context, req *Request) *Response {
	res := NewResponse()
	r.invoke(ctx, req, res, chain(r.route, r.middleware))
	return res
}

// route is the innermost handler: match, bind parameters, invoke.
func (r *Router) route(ctx context.Context, req *Request, res *Response) {
	var (
		best       *route
		bestParams map[string]string
	)
	for _, rt := range r.routes {
		if rt.verb != req.Verb {
			continue
		}
		params, ok := rt.match(req.Path)
		if !ok {
			continue
		}
		if best == nil || moreSpecific(rt.segments, best.segments) {
			best, bestParams = rt, params
		}
	}

	if best == nil {
		res.Error(http.StatusNotFound, http.StatusText(http.StatusNotFound))
		return
	}

	req.Params = bestParams
	best.handler(ctx, req, res)
}

// invoke runs h and converts a panic into a fresh 500 response.
func (r *Router) invoke(ctx context.Context, req *Request, res *Response, h HandlerFunc) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		r.log.Error("panic recovered",
			zap.Any("panic", rec),
			zap.String("verb", req.Verb),
			zap.String("path", req.Path),
			zap.String("stack", string(debug.Stack())),
		)
		res.Headers = Header{}
		res.Body = nil
		res.Error(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		if r.panicHook != nil {
			r.panicHook(ctx, req, rec)
		}
	}()
	h(ctx, req, res)
}
