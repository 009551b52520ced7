// Package caelum is a small, portable HTTP capability surface: outbound
// request primitives, an inbound listener, and a routing registry that
// dispatches plain Request/Response values.
//
// Handlers receive the matched request and a mutable response to fill in:
//
//	r := caelum.NewRouter()
//	r.Get("/users/{id:int}", func(ctx context.Context, req *caelum.Request, res *caelum.Response) {
//	    res.JSON(map[string]int64{"id": req.IntParam("id")})
//	})
//
//	srv := caelum.NewServer(r, caelum.WithAddr(":3000"))
//	if err := srv.Run(ctx); err != nil {
//	    // startup failure: *PortInUseError or a listener error
//	}
//
// Route patterns are literal segments plus {name} string parameters and
// {name:int} integer parameters. A literal segment outranks a parameter
// segment at the same position; among equally specific patterns the first
// registered wins. A typed segment that fails to parse does not match, and
// a request matching no route gets a 404 synthesized by the router itself.
// Panics below the dispatch boundary become 500 responses, so one broken
// handler never takes down the listener.
//
// Outbound calls return the received response whatever its status; only
// URL validation and transport failures produce errors:
//
//	resp, err := caelum.Get(ctx, "http://localhost:3000/health", nil)
//	if err != nil {
//	    // *InvalidURLError or *TransportError
//	}
//	fmt.Println(resp.Status, string(resp.Body))
package caelum
