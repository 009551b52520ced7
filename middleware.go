package caelum

// Middleware wraps a HandlerFunc. The router applies its middleware in
// the order added, around every dispatch including synthesized 404s.
type Middleware func(next HandlerFunc) HandlerFunc

// chain applies mw to h in reverse so the first middleware added is the
// outermost.
func chain(h HandlerFunc, mw []Middleware) HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}
