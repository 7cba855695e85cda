package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shubh-io/dockboard/internal/cli"
)

// ============================================================================
// Main
// ============================================================================

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		// the precheck report is already on stderr
		if !errors.Is(err, cli.ErrPreCheckFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Stderr.Sync()
		stop()
		os.Exit(1)
	}
}
