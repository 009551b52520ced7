package caelum

import "fmt"

// InvalidURLError reports an outbound URL rejected before any I/O was
// attempted: the URL must parse and carry an http or https scheme and a
// host.
type InvalidURLError struct {
	URL    string
	Reason string
}

// Error returns the validation failure.
func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid url %q: %s", e.URL, e.Reason)
}

// TransportError reports a network-level failure of an outbound request:
// connection refused, timeout, DNS failure. A response received with a
// 4xx or 5xx status is not a TransportError; it is returned as an
// ordinary Response.
type TransportError struct {
	Verb string
	URL  string
	Err  error
}

// Error returns the failed round trip and its cause.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Verb, e.URL, e.Err)
}

// Unwrap returns the underlying transport failure.
func (e *TransportError) Unwrap() error { return e.Err }

// PortInUseError reports a listen address that is already bound. It is
// returned by Server.Run before any request is handled.
type PortInUseError struct {
	Addr string
	Err  error
}

// Error returns the busy address.
func (e *PortInUseError) Error() string {
	return fmt.Sprintf("listen %s: address already in use", e.Addr)
}

// Unwrap returns the underlying listen failure.
func (e *PortInUseError) Unwrap() error { return e.Err }
