package caelum

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultAddr is the listen address used when WithAddr is not given.
	DefaultAddr = ":3000"

	defaultMaxBodyBytes      = 1 << 20
	defaultReadHeaderTimeout = 10 * time.Second
	defaultShutdownTimeout   = 30 * time.Second
)

// Server accepts inbound HTTP requests and hands them to a Dispatcher.
type Server struct {
	dispatcher        Dispatcher
	addr              string
	log               *zap.Logger
	maxBodyBytes      int64
	readHeaderTimeout time.Duration
	shutdownTimeout   time.Duration
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithAddr sets the listen address, e.g. ":8080" or "127.0.0.1:3000".
func WithAddr(addr string) ServerOption {
	return func(s *Server) {
		s.addr = addr
	}
}

// WithLogger sets the server's logger.
func WithLogger(log *zap.Logger) ServerOption {
	return func(s *Server) {
		s.log = log
	}
}

// WithMaxBodyBytes caps inbound request bodies. Requests exceeding the
// cap are rejected with 413 before dispatch. A value <= 0 disables
// the cap.
func WithMaxBodyBytes(n int64) ServerOption {
	return func(s *Server) {
		s.maxBodyBytes = n
	}
}

// WithReadHeaderTimeout bounds how long the server waits for request
// headers.
func WithReadHeaderTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		s.readHeaderTimeout = d
	}
}

// WithShutdownTimeout bounds how long Run waits for in-flight requests
// to drain after its context is cancelled.
func WithShutdownTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		s.shutdownTimeout = d
	}
}

// NewServer creates a Server dispatching to d.
func NewServer(d Dispatcher, opts ...ServerOption) *Server {
	s := &Server{
		dispatcher:        d,
		addr:              DefaultAddr,
		log:               zap.NewNop(),
		maxBodyBytes:      defaultMaxBodyBytes,
		readHeaderTimeout: defaultReadHeaderTimeout,
		shutdownTimeout:   defaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Run binds the configured address and serves until ctx is cancelled.
// It blocks for the lifetime of the server. A busy port surfaces as
// *PortInUseError; after a clean shutdown Run returns nil.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return &PortInUseError{Addr: s.addr, Err: err}
		}
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections from ln until ctx is cancelled, then drains
// in-flight requests within the shutdown timeout. The listener is closed
// when Serve returns.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.readHeaderTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()

	s.log.Info("server started", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	s.log.Info("server stopped", zap.String("addr", ln.Addr().String()))
	return err
}

// Handler returns the server's dispatch bridge as a standard
// http.Handler, for mounting in test servers or other hosts.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := s.readBody(w, r)
		if err != nil {
			res := NewResponse()
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				res.Error(http.StatusRequestEntityTooLarge, http.StatusText(http.StatusRequestEntityTooLarge))
			} else {
				res.Error(http.StatusBadRequest, http.StatusText(http.StatusBadRequest))
			}
			res.writeTo(w) //nolint:errcheck // client may be gone already
			return
		}

		req := &Request{
			Verb:       r.Method,
			Path:       r.URL.Path,
			Headers:    headerFromHTTP(r.Header),
			Body:       body,
			Host:       r.Host,
			RemoteAddr: r.RemoteAddr,
		}

		res := s.dispatcher.Dispatch(r.Context(), req)
		if res == nil {
			res = NewResponse()
			res.Error(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		}

		if err := res.writeTo(w); err != nil {
			s.log.Warn("write response",
				zap.String("verb", req.Verb),
				zap.String("path", req.Path),
				zap.Error(err),
			)
		}
	})
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	rd := r.Body
	if s.maxBodyBytes > 0 {
		rd = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	}
	return io.ReadAll(rd)
}
