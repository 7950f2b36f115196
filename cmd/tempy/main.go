package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/noprobelm/tempy/internal/cli"
)

func main() {
	// Ctrl-C aborts the in-flight API request instead of hanging the render.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCmd(cli.Options{}).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
