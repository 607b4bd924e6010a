// Package utils provides watch mode for continuously refreshing CLI output.
//
// Watch mode clears the terminal and re-runs a fetch-and-display function every
// 2 seconds until SIGINT or SIGTERM. It backs `sakatonctl ranking --watch`.
package utils

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/concave-dev/sakaton/internal/logging"
)

// WatchInterval is the refresh period of watch mode.
const WatchInterval = 2 * time.Second

// RunWithWatch executes fn once or, when enableWatch is set, repeatedly until
// interrupted. Errors after the first run are logged and the loop continues.
func RunWithWatch(fn func() error, enableWatch bool) error {
	if !enableWatch {
		return fn()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return runWatchLoop(ctx, fn, WatchInterval)
}

func runWatchLoop(ctx context.Context, fn func() error, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	fmt.Print("\033[2J\033[H") // Clear screen and move cursor to top
	if err := fn(); err != nil {
		return err
	}

	for {
		select {
		case <-ticker.C:
			fmt.Print("\033[2J\033[H")
			if err := fn(); err != nil {
				logging.Error("Error updating display: %v", err)
				continue
			}
		case <-ctx.Done():
			fmt.Println("\nWatch mode interrupted")
			return nil
		}
	}
}
