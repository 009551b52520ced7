// Command caelum issues HTTP requests from the command line.
//
// Examples:
//
//	caelum get https://example.com/health
//	caelum -i get https://example.com/health
//	caelum post -d '{"nomen":"Marcus"}' -H 'Content-Type: application/json' https://example.com/users
//	caelum request -X OPTIONS https://example.com/users
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/caelo/caelum"
	"github.com/caelo/caelum/util/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	headerFlag = &cli.StringSliceFlag{
		Name:    "header",
		Aliases: []string{"H"},
		Usage:   "request header as 'Name: Value', repeatable",
	}
	dataFlag = &cli.StringFlag{
		Name:    "data",
		Aliases: []string{"d"},
		Usage:   "request body",
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "caelum",
		Usage: "issue HTTP requests from the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Value: "warn",
				Usage: "log verbosity",
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Aliases: []string{"t"},
				Value:   30 * time.Second,
				Usage:   "total request timeout",
			},
			&cli.BoolFlag{
				Name:    "include",
				Aliases: []string{"i"},
				Usage:   "print the status line and headers before the body",
			},
		},
		Before: func(c *cli.Context) error {
			log, err := logging.New(logging.Config{
				Level:  c.String("log-level"),
				Format: "development",
			})
			if err != nil {
				return err
			}
			c.Context = logging.ContextWithLogger(c.Context, log)
			return nil
		},
		Commands: []*cli.Command{
			verbCommand("get", http.MethodGet, false),
			verbCommand("post", http.MethodPost, true),
			verbCommand("put", http.MethodPut, true),
			verbCommand("patch", http.MethodPatch, true),
			verbCommand("delete", http.MethodDelete, false),
			requestCommand(),
		},
	}
}

func verbCommand(name, verb string, hasBody bool) *cli.Command {
	flags := []cli.Flag{headerFlag}
	if hasBody {
		flags = append(flags, dataFlag)
	}
	return &cli.Command{
		Name:      name,
		Usage:     fmt.Sprintf("issue a %s request", verb),
		ArgsUsage: "URL",
		Flags:     flags,
		Action: func(c *cli.Context) error {
			return request(c, verb)
		},
	}
}

func requestCommand() *cli.Command {
	return &cli.Command{
		Name:      "request",
		Usage:     "issue a request with an arbitrary verb",
		ArgsUsage: "URL",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "request",
				Aliases: []string{"X"},
				Value:   http.MethodGet,
				Usage:   "HTTP verb",
			},
			headerFlag,
			dataFlag,
		},
		Action: func(c *cli.Context) error {
			return request(c, strings.ToUpper(c.String("request")))
		},
	}
}

func request(c *cli.Context, verb string) error {
	if c.NArg() != 1 {
		return cli.Exit("exactly one URL argument is required", 2)
	}
	url := c.Args().First()

	log, err := logging.LoggerFromContext(c.Context)
	if err != nil {
		log = zap.NewNop()
	}

	headers := caelum.Header{}
	for _, h := range c.StringSlice("header") {
		name, value, ok := strings.Cut(h, ":")
		if !ok {
			return cli.Exit(fmt.Sprintf("malformed header %q, want 'Name: Value'", h), 2)
		}
		headers.Set(strings.TrimSpace(name), strings.TrimSpace(value))
	}

	var body []byte
	if d := c.String("data"); d != "" {
		body = []byte(d)
	}

	client := caelum.NewClient(caelum.WithTimeout(c.Duration("timeout")))

	log.Debug("sending request", zap.String("verb", verb), zap.String("url", url))

	res, err := client.Do(c.Context, verb, url, headers, body)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if c.Bool("include") {
		fmt.Printf("%d %s\n", res.Status, http.StatusText(res.Status))
		names := make([]string, 0, len(res.Headers))
		for name := range res.Headers {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("%s: %s\n", name, res.Headers[name])
		}
		fmt.Println()
	}

	if out := string(res.Body); out != "" {
		fmt.Print(out)
		if !strings.HasSuffix(out, "\n") {
			fmt.Println()
		}
	}
	return nil
}
