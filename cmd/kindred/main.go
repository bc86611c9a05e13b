// Package main provides the kindred command line journal.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// Create context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	opts := &RootOptions{}
	cmd := NewRootCommand(opts)
	err := cmd.ExecuteContext(ctx)

	// Flush deferred writes even when the command failed.
	if closeErr := opts.Close(); err == nil && closeErr != nil {
		err = WrapExitError(ExitFailure, "failed to close journal", closeErr)
	}
	stop()

	os.Exit(opts.report(err, os.Stderr))
}
