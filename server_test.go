package caelum_test

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caelo/caelum"
)

func okDispatcher() caelum.Dispatcher {
	return caelum.DispatcherFunc(func(_ context.Context, _ *caelum.Request) *caelum.Response {
		return caelum.NewResponse()
	})
}

func TestServer_defaults(t *testing.T) {
	t.Parallel()

	srv := caelum.NewServer(okDispatcher())
	assert.Equal(t, caelum.DefaultAddr, srv.Addr())

	srv = caelum.NewServer(okDispatcher(), caelum.WithAddr("127.0.0.1:8123"))
	assert.Equal(t, "127.0.0.1:8123", srv.Addr())
}

func TestServer_Run_portInUse(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, ln.Close())
	})

	srv := caelum.NewServer(okDispatcher(), caelum.WithAddr(ln.Addr().String()))
	err = srv.Run(context.Background())

	var portErr *caelum.PortInUseError
	require.ErrorAs(t, err, &portErr)
	assert.Equal(t, ln.Addr().String(), portErr.Addr)
	assert.ErrorIs(t, err, syscall.EADDRINUSE)
}

func TestServer_Run_stopsOnContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	srv := caelum.NewServer(okDispatcher(), caelum.WithAddr("127.0.0.1:0"))

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	// Give the listener a moment to bind, then trigger shutdown.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after context cancel")
	}
}

func TestServer_Handler_dispatch(t *testing.T) {
	t.Parallel()

	var got *caelum.Request
	d := caelum.DispatcherFunc(func(_ context.Context, req *caelum.Request) *caelum.Response {
		got = req
		return caelum.Respond(http.StatusTeapot, caelum.Header{"X-Served": "yes"}, []byte("short and stout"))
	})

	ts := httptest.NewServer(caelum.NewServer(d).Handler())
	t.Cleanup(ts.Close)
	closeIdle(t)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, ts.URL+"/brew?sugar=2", strings.NewReader("please"))
	require.NoError(t, err)
	req.Header.Set("x-flavor", "earl grey")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, resp.Body.Close())
	})

	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.Equal(t, "yes", resp.Header.Get("X-Served"))

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "short and stout", buf.String())

	require.NotNil(t, got)
	assert.Equal(t, http.MethodPost, got.Verb)
	assert.Equal(t, "/brew", got.Path)
	assert.Equal(t, "earl grey", got.Headers.Get("X-Flavor"))
	assert.Equal(t, []byte("please"), got.Body)
	assert.NotEmpty(t, got.Host)
	assert.NotEmpty(t, got.RemoteAddr)
}

func TestServer_Handler_nilResponse(t *testing.T) {
	t.Parallel()

	d := caelum.DispatcherFunc(func(_ context.Context, _ *caelum.Request) *caelum.Response {
		return nil
	})

	ts := httptest.NewServer(caelum.NewServer(d).Handler())
	t.Cleanup(ts.Close)
	closeIdle(t)

	resp, err := http.Get(ts.URL)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, resp.Body.Close())
	})

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestServer_Handler_bodyLimit(t *testing.T) {
	t.Parallel()

	dispatched := false
	d := caelum.DispatcherFunc(func(_ context.Context, _ *caelum.Request) *caelum.Response {
		dispatched = true
		return caelum.NewResponse()
	})

	ts := httptest.NewServer(caelum.NewServer(d, caelum.WithMaxBodyBytes(16)).Handler())
	t.Cleanup(ts.Close)
	closeIdle(t)

	resp, err := http.Post(ts.URL, "text/plain", strings.NewReader(strings.Repeat("x", 64)))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, resp.Body.Close())
	})

	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.False(t, dispatched, "oversized request must be rejected before dispatch")
}

func TestServer_Handler_bodyUnderLimit(t *testing.T) {
	t.Parallel()

	d := caelum.DispatcherFunc(func(_ context.Context, req *caelum.Request) *caelum.Response {
		return caelum.Respond(http.StatusOK, nil, req.Body)
	})

	ts := httptest.NewServer(caelum.NewServer(d, caelum.WithMaxBodyBytes(16)).Handler())
	t.Cleanup(ts.Close)
	closeIdle(t)

	resp, err := http.Post(ts.URL, "text/plain", strings.NewReader("fits"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, resp.Body.Close())
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_Serve_malformedRequestLine(t *testing.T) {
	t.Parallel()

	dispatched := false
	d := caelum.DispatcherFunc(func(_ context.Context, _ *caelum.Request) *caelum.Response {
		dispatched = true
		return caelum.NewResponse()
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- caelum.NewServer(d).Serve(ctx, ln)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("server did not stop after context cancel")
		}
	})

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, conn.Close())
	})

	_, err = conn.Write([]byte("BOGUS\r\n\r\n"))
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	line, err := bufio.NewReader(conn).ReadString('\n')
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(line, "HTTP/1.1 400"), "got status line %q", line)
	assert.False(t, dispatched, "malformed request must never reach the dispatcher")
}

func TestServer_Run_errors(t *testing.T) {
	t.Parallel()

	srv := caelum.NewServer(okDispatcher(), caelum.WithAddr("256.256.256.256:99999"))
	err := srv.Run(context.Background())

	require.Error(t, err)
	var portErr *caelum.PortInUseError
	assert.False(t, errors.As(err, &portErr), "unresolvable address is not a busy port")
}
