package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// ============================================================================
// WORDGROUP CLI: rhymes, similar words and record grouping
// ============================================================================

const version = "0.3.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
