// Package graceful ties process lifetime to OS termination signals.
package graceful

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Context returns a context cancelled on SIGINT or SIGTERM, so an
// in-flight enrichment batch can stop cleanly mid-run.
func Context(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}
