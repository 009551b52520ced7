package caelum

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"gopkg.in/yaml.v3"
)

// RouteInfo describes one registered route.
type RouteInfo struct {
	Verb    string `json:"verb" yaml:"verb"`
	Pattern string `json:"pattern" yaml:"pattern"`
}

// Routes returns the registered routes in registration order.
func (r *Router) Routes() []RouteInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]RouteInfo, 0, len(r.routes))
	for _, rt := range r.routes {
		out = append(out, RouteInfo{Verb: rt.verb, Pattern: rt.pattern})
	}
	return out
}

// WriteRoutes writes the route manifest to w as indented JSON.
func (r *Router) WriteRoutes(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r.Routes())
}

// WriteRoutesYAML writes the route manifest to w as YAML.
func (r *Router) WriteRoutesYAML(w io.Writer) error {
	return yaml.NewEncoder(w).Encode(r.Routes())
}

// ServeRoutes registers a GET route at pattern that serves the manifest.
// The response is JSON unless the Accept header asks for YAML.
func (r *Router) ServeRoutes(pattern string) {
	r.Get(pattern, func(_ context.Context, req *Request, res *Response) {
		if acceptsYAML(req.Headers.Get("Accept")) {
			b, err := yaml.Marshal(r.Routes())
			if err != nil {
				res.Error(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
				return
			}
			res.header().Set("Content-Type", "application/yaml")
			res.Body = b
			return
		}
		res.JSON(r.Routes())
	})
}

func acceptsYAML(accept string) bool {
	for _, part := range strings.Split(accept, ",") {
		mt, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		switch strings.ToLower(strings.TrimSpace(mt)) {
		case "application/yaml", "text/yaml", "application/x-yaml":
			return true
		}
	}
	return false
}
