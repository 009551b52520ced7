package caelum

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client issues outbound HTTP requests. The zero value is not usable;
// construct one with NewClient.
type Client struct {
	hc      *http.Client
	headers Header
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the total request timeout, covering connection,
// redirects, and reading the response body.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.hc.Timeout = d
	}
}

// WithTransport sets the underlying round tripper.
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *Client) {
		c.hc.Transport = rt
	}
}

// WithDefaultHeader sets a header sent with every request. Per-request
// headers with the same name take precedence.
func WithDefaultHeader(name, value string) ClientOption {
	return func(c *Client) {
		c.headers.Set(name, value)
	}
}

// NewClient creates a Client with the given options.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		hc:      &http.Client{},
		headers: Header{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do issues a request with the given verb. The response is returned for
// any status code the server produces; a non-nil error means the request
// never completed. URL validation failures surface as *InvalidURLError
// before any network activity, transport failures as *TransportError.
func (c *Client) Do(ctx context.Context, verb, rawURL string, headers Header, body []byte) (*Response, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}

	var rd io.Reader
	if len(body) > 0 {
		rd = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, verb, rawURL, rd)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	c.headers.setOnHTTP(req.Header)
	headers.setOnHTTP(req.Header)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &TransportError{Verb: verb, URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Verb: verb, URL: rawURL, Err: err}
	}

	return &Response{
		Status:  resp.StatusCode,
		Headers: headerFromHTTP(resp.Header),
		Body:    b,
	}, nil
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, url string, headers Header) (*Response, error) {
	return c.Do(ctx, http.MethodGet, url, headers, nil)
}

// Post issues a POST request with the given body.
func (c *Client) Post(ctx context.Context, url string, headers Header, body []byte) (*Response, error) {
	return c.Do(ctx, http.MethodPost, url, headers, body)
}

// Put issues a PUT request with the given body.
func (c *Client) Put(ctx context.Context, url string, headers Header, body []byte) (*Response, error) {
	return c.Do(ctx, http.MethodPut, url, headers, body)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, url string, headers Header) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, url, headers, nil)
}

// Patch issues a PATCH request with the given body.
func (c *Client) Patch(ctx context.Context, url string, headers Header, body []byte) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, url, headers, body)
}

func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return &InvalidURLError{URL: rawURL, Reason: err.Error()}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &InvalidURLError{URL: rawURL, Reason: fmt.Sprintf("unsupported scheme %q", u.Scheme)}
	}
	if u.Host == "" {
		return &InvalidURLError{URL: rawURL, Reason: "missing host"}
	}
	return nil
}

// DefaultClient is the client used by the package-level request functions.
var DefaultClient = NewClient()

// Get issues a GET request using DefaultClient.
func Get(ctx context.Context, url string, headers Header) (*Response, error) {
	return DefaultClient.Get(ctx, url, headers)
}

// Post issues a POST request using DefaultClient.
func Post(ctx context.Context, url string, headers Header, body []byte) (*Response, error) {
	return DefaultClient.Post(ctx, url, headers, body)
}

// Put issues a PUT request using DefaultClient.
func Put(ctx context.Context, url string, headers Header, body []byte) (*Response, error) {
	return DefaultClient.Put(ctx, url, headers, body)
}

// Delete issues a DELETE request using DefaultClient.
func Delete(ctx context.Context, url string, headers Header) (*Response, error) {
	return DefaultClient.Delete(ctx, url, headers)
}

// Patch issues a PATCH request using DefaultClient.
func Patch(ctx context.Context, url string, headers Header, body []byte) (*Response, error) {
	return DefaultClient.Patch(ctx, url, headers, body)
}

// Do issues a request with an arbitrary verb using DefaultClient.
func Do(ctx context.Context, verb, url string, headers Header, body []byte) (*Response, error) {
	return DefaultClient.Do(ctx, verb, url, headers, body)
}
