package handlers

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/concave-dev/sakaton/cmd/sakatonctl/client"
	"github.com/concave-dev/sakaton/cmd/sakatonctl/config"
	"github.com/concave-dev/sakaton/cmd/sakatonctl/display"
	"github.com/concave-dev/sakaton/cmd/sakatonctl/tapscreen"
	"github.com/concave-dev/sakaton/cmd/sakatonctl/utils"
	"github.com/concave-dev/sakaton/internal/clicker"
	"github.com/concave-dev/sakaton/internal/logging"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
)

// HandleTap runs a tap session. With --auto N it sends N taps headlessly at
// --interval; otherwise it opens the interactive terminal coin. Pending
// clicks below the batch threshold are dropped when the session ends.
func HandleTap(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()
	ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := client.OpenTokenStore()
	if err != nil {
		return err
	}
	defer store.Close()

	token, err := readToken(ctx, store)
	if err != nil {
		return describeError("load session", err)
	}

	clickerConfig := clicker.DefaultConfig()
	clickerConfig.ApplyEnv()
	clickerConfig.RetryIntervalMs = int(config.Tap.RetryInterval / time.Millisecond)

	apiClient := client.CreateAPIClient()
	sess, err := clicker.NewSession(clickerConfig, apiClient, store)
	if err != nil {
		return err
	}

	// Optimistic points count up from the server balance.
	if points, err := apiClient.GetPoints(ctx, token); err != nil {
		logging.Warn("Could not fetch current balance, counting from 0: %v", err)
	} else {
		sess.SetPoints(points)
	}

	var summary display.TapSummary
	if config.Tap.Auto > 0 {
		summary = runHeadless(ctx, sess, config.Tap.Auto, config.Tap.Interval)
	} else {
		summary, err = runInteractive(ctx, sess, clickerConfig)
		if err != nil {
			return err
		}
	}

	display.DisplayTapSummary(summary)
	return nil
}

// runHeadless sends n taps spaced by interval, then waits for any submission
// still in flight.
func runHeadless(ctx context.Context, sess *clicker.Session, n int, interval time.Duration) display.TapSummary {
	sess.SetResultHook(func(result clicker.Result, err error) {
		if err == nil {
			logging.Info("Submitted batch of %d clicks", result.Batch)
		}
	})
	sess.Start()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var summary display.TapSummary
	start := time.Now()

loop:
	for i := 0; i < n; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				logging.Warn("Interrupted after %d of %d taps", i, n)
				break loop
			case <-ticker.C:
			}
		}
		summary.Taps++
		if sess.Click(clicker.ClickEvent{}) {
			summary.Admitted++
		} else {
			summary.Rejected++
		}
	}

	// Let a batch triggered by the last taps land before stopping.
	sess.Wait()
	sess.Stop()
	summary.Elapsed = time.Since(start)
	summary.Final = sess.Snapshot()
	return summary
}

// runInteractive opens the tcell tap screen until the user quits.
func runInteractive(ctx context.Context, sess *clicker.Session, clickerConfig *clicker.Config) (display.TapSummary, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return display.TapSummary{}, fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return display.TapSummary{}, fmt.Errorf("failed to initialize terminal: %w", err)
	}

	// Log lines would be written over the terminal UI.
	logging.SetOutput(nil)

	view := tapscreen.New(screen, sess, tapscreen.Limits{
		MaxClicksPerWindow: clickerConfig.MaxClicksPerSecond,
		ClicksPerRequest:   clickerConfig.ClicksPerRequest,
	})
	sess.SetResultHook(view.Notify)
	sess.Start()

	start := time.Now()
	runErr := view.Run(ctx)
	elapsed := time.Since(start)

	screen.Fini()
	logging.RestoreOutput()
	utils.SetupLogging()

	sess.SetResultHook(nil)
	sess.Wait()
	sess.Stop()

	stats := view.Stats()
	return display.TapSummary{
		Taps:     stats.Taps,
		Admitted: stats.Admitted,
		Rejected: stats.Rejected,
		Elapsed:  elapsed,
		Final:    sess.Snapshot(),
	}, runErr
}
