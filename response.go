package caelum

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// Response is the mutable reply a handler fills in, written out exactly
// once per request.
type Response struct {
	// Status is the HTTP status code. 0 is written as 200.
	Status int

	// Headers holds the response header fields.
	Headers Header

	// Body is the response body.
	Body []byte
}

// NewResponse returns an empty 200 response.
func NewResponse() *Response {
	return &Response{Status: http.StatusOK, Headers: Header{}}
}

// Respond constructs a Response from its parts. It has no side effects;
// nil headers are replaced with an empty Header.
func Respond(status int, headers Header, body []byte) *Response {
	if headers == nil {
		headers = Header{}
	}
	return &Response{Status: status, Headers: headers, Body: body}
}

// JSON marshals v into the body and sets the JSON content type. A value
// that cannot marshal is a programming defect: JSON panics, and the
// router's dispatch boundary turns the panic into a 500.
func (r *Response) JSON(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("caelum: marshal response body: %v", err))
	}
	r.header().Set("Content-Type", "application/json")
	r.Body = b
}

// Text sets a plain-text body.
func (r *Response) Text(s string) {
	r.header().Set("Content-Type", "text/plain; charset=utf-8")
	r.Body = []byte(s)
}

// NoContent sets status 204 and clears the body.
func (r *Response) NoContent() {
	r.Status = http.StatusNoContent
	r.Body = nil
}

// Error sets status and an {"error": message} JSON body.
func (r *Response) Error(status int, message string) {
	r.Status = status
	r.JSON(map[string]string{"error": message})
}

// header returns the header map, allocating it for zero-value Responses.
func (r *Response) header() Header {
	if r.Headers == nil {
		r.Headers = Header{}
	}
	return r.Headers
}

// writeTo serializes the response onto w: headers, status (default 200),
// then the body.
func (r *Response) writeTo(w http.ResponseWriter) error {
	r.Headers.setOnHTTP(w.Header())
	if len(r.Body) > 0 && !r.Headers.Has("Content-Length") {
		w.Header().Set("Content-Length", strconv.Itoa(len(r.Body)))
	}

	status := r.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)

	if len(r.Body) == 0 {
		return nil
	}
	_, err := w.Write(r.Body)
	return err
}
