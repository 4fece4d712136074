package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/bandyer/mvninvalidate/internal/cli"
	"github.com/bandyer/mvninvalidate/internal/config"
	"github.com/bandyer/mvninvalidate/internal/handler"
	"github.com/bandyer/mvninvalidate/internal/inject"
	"github.com/bandyer/mvninvalidate/internal/log"
	"github.com/samber/do"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ctx := log.NewContext(context.Background(), log.New(os.Stderr, log.ParseLevel(cfg.LogLevel)))

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		startLambda(ctx, cfg)
		return
	}

	if err := cli.NewCommand(cli.InjectedRunner(cfg)).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func startLambda(ctx context.Context, cfg *config.Config) {
	if err := cfg.ValidateLambda(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	injector := inject.Setup(ctx, inject.Options{Config: cfg, DefaultBasePath: cfg.BasePath})
	handler := do.MustInvoke[*handler.Handler](injector)
	lambda.StartWithOptions(handler.Handle, lambda.WithContext(ctx), lambda.WithEnableSIGTERM(func() {
		_ = injector.Shutdown()
	}))
}
