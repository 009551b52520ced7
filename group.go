package caelum

import "net/http"

// Group registers routes under a shared prefix with shared middleware.
type Group struct {
	router     *Router
	prefix     string
	middleware []Middleware
}

// GroupOption configures a Group.
type GroupOption func(*Group)

// WithGroupMiddleware adds middleware applied to every route registered
// on the group. Group middleware is baked in at registration time and
// runs inside the router's global middleware.
func WithGroupMiddleware(mw ...Middleware) GroupOption {
	return func(g *Group) {
		g.middleware = append(g.middleware, mw...)
	}
}

// Group creates a route group with the given prefix and options.
func (r *Router) Group(prefix string, opts ...GroupOption) *Group {
	g := &Group{
		router: r,
		prefix: prefix,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Handle registers a handler for verb under the group prefix.
func (g *Group) Handle(verb, pattern string, h HandlerFunc) {
	g.router.Handle(verb, g.prefix+pattern, chain(h, g.middleware))
}

// Get registers a GET handler under the group prefix.
func (g *Group) Get(pattern string, h HandlerFunc) { g.Handle(http.MethodGet, pattern, h) }

// Post registers a POST handler under the group prefix.
func (g *Group) Post(pattern string, h HandlerFunc) { g.Handle(http.MethodPost, pattern, h) }

// Put registers a PUT handler under the group prefix.
func (g *Group) Put(pattern string, h HandlerFunc) { g.Handle(http.MethodPut, pattern, h) }

// Delete registers a DELETE handler under the group prefix.
func (g *Group) Delete(pattern string, h HandlerFunc) { g.Handle(http.MethodDelete, pattern, h) }

// Patch registers a PATCH handler under the group prefix.
func (g *Group) Patch(pattern string, h HandlerFunc) { g.Handle(http.MethodPatch, pattern, h) }
