// Command salve runs the demo HTTP service.
//
// Run:
//
//	go run ./cmd/salve
//
// Then explore:
//
//	GET    http://localhost:3000/            greeting
//	GET    http://localhost:3000/health      health check
//	GET    http://localhost:3000/users       list users
//	GET    http://localhost:3000/users/1     get user by ID
//	POST   http://localhost:3000/users       create user
//	DELETE http://localhost:3000/users/1     delete user
//
// Configuration is layered from salve.json, .env, and SALVE_-prefixed
// environment variables. Setting SENTRY_DSN enables panic reporting.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"github.com/caelo/caelum"
	"github.com/caelo/caelum/salve"
	"github.com/caelo/caelum/util/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	fmt.Println("Initializing HTTP server...")

	if setupSentry() {
		defer sentry.Flush(2 * time.Second)
	}

	cfg, err := salve.LoadConfig(nil)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	//nolint:errcheck // stdout sync is best-effort
	defer log.Sync()

	app := salve.NewApp(log)
	r := app.Routes(
		caelum.WithRouterLogger(log),
		caelum.WithPanicHook(reportPanic),
	)

	srv := caelum.NewServer(r,
		caelum.WithAddr(cfg.Addr),
		caelum.WithLogger(log),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Server running on http://localhost%s\n", cfg.Addr)

	if err := srv.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", zap.Error(err))
		return err
	}
	return nil
}

func setupSentry() bool {
	dsn := os.Getenv("SENTRY_DSN")
	if dsn == "" {
		return false
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: os.Getenv("SALVE_ENV"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "sentry init: %v\n", err)
		return false
	}
	return true
}

func reportPanic(_ context.Context, req *caelum.Request, recovered any) {
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("verb", req.Verb)
		scope.SetTag("path", req.Path)
		sentry.CurrentHub().Recover(recovered)
	})
}
