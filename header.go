package caelum

import (
	"net/http"
	"net/textproto"
)

// Header holds HTTP header fields with case-insensitive keys. Keys are
// stored in canonical MIME form and each field carries a single value;
// setting a field replaces any previous value.
type Header map[string]string

// Get returns the value for key, or "" if the field is absent.
func (h Header) Get(key string) string {
	if h == nil {
		return ""
	}
	return h[textproto.CanonicalMIMEHeaderKey(key)]
}

// Set stores value under key, replacing any existing value.
func (h Header) Set(key, value string) {
	h[textproto.CanonicalMIMEHeaderKey(key)] = value
}

// Del removes the field for key.
func (h Header) Del(key string) {
	delete(h, textproto.CanonicalMIMEHeaderKey(key))
}

// Has reports whether the field is present.
func (h Header) Has(key string) bool {
	_, ok := h[textproto.CanonicalMIMEHeaderKey(key)]
	return ok
}

// Clone returns a copy of h. Cloning a nil Header returns nil.
func (h Header) Clone() Header {
	if h == nil {
		return nil
	}
	out := make(Header, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// headerFromHTTP flattens a net/http header, keeping the first value of
// each field.
func headerFromHTTP(src http.Header) Header {
	h := make(Header, len(src))
	for k, vs := range src {
		if len(vs) > 0 {
			h[textproto.CanonicalMIMEHeaderKey(k)] = vs[0]
		}
	}
	return h
}

// setOnHTTP copies h onto a net/http header.
func (h Header) setOnHTTP(dst http.Header) {
	for k, v := range h {
		dst.Set(k, v)
	}
}
