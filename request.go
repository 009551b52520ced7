package caelum

import "strconv"

// Request is the portable form of one HTTP request. The routing registry
// fills Params from the matched pattern; everything else comes off the
// wire. A Request belongs to its dispatch call and must not be retained
// after the handler returns.
type Request struct {
	// Verb is the HTTP method, e.g. "GET".
	Verb string

	// Path is the decoded request path, e.g. "/users/7".
	Path string

	// Params holds path parameters bound by the matched pattern.
	Params map[string]string

	// Headers holds the request header fields.
	Headers Header

	// Body is the full request body, possibly empty.
	Body []byte

	// Host is the requested host, RemoteAddr the peer's address.
	Host       string
	RemoteAddr string
}

// Param returns the named path parameter, or "" when the pattern did not
// bind it.
func (r *Request) Param(name string) string {
	return r.Params[name]
}

// IntParam returns the named path parameter as an integer. It returns 0
// when the parameter is absent or not integer text; an {name:int} pattern
// segment only ever binds integer text.
func (r *Request) IntParam(name string) int64 {
	n, err := strconv.ParseInt(r.Params[name], 10, 64)
	if err != nil {
		return 0
	}
	return n
}
