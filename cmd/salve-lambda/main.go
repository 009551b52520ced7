// Command salve-lambda serves the demo behind AWS API Gateway. The
// router is bridged to Lambda through the API Gateway proxy adapter;
// deploy with a proxy integration routing all paths here.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"

	"github.com/caelo/caelum"
	"github.com/caelo/caelum/salve"
	"github.com/caelo/caelum/util/logging"
)

func main() {
	log, err := logging.New(logging.Config{Level: "info", Format: "production"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "build logger: %v\n", err)
		os.Exit(1)
	}
	//nolint:errcheck // stdout sync is best-effort
	defer log.Sync()

	app := salve.NewApp(log)
	handler := caelum.NewServer(app.Routes(caelum.WithRouterLogger(log))).Handler()

	ctx := logging.ContextWithLogger(context.Background(), log)
	lambda.StartWithOptions(
		httpadapter.New(handler).ProxyWithContext,
		lambda.WithContext(ctx),
	)
}
