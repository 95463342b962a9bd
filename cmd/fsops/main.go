package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/jmgilman/go/fsops/internal/cli"
)

func main() {
	ctx, done := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.New().ExecuteContext(ctx)
	done()

	if err != nil {
		cli.PrintError(ctx, os.Stderr, err)
		os.Exit(1)
	}
}
