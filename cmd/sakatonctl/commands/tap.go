package commands

import (
	"time"

	"github.com/spf13/cobra"
)

// Tap command
var tapCmd = &cobra.Command{
	Use:   "tap",
	Short: "Tap the coin",
	Long: `Open an interactive coin in the terminal. Click it, or press space or
enter, to earn points. Taps above 8 per second are ignored and every 20
accepted taps are submitted to the backend as one signed batch.

With --auto the command taps headlessly and prints a summary instead.
Pending taps that never reach a full batch are not submitted.`,
	Example: `  # Interactive coin
  sakatonctl tap

  # Send 100 taps headlessly
  sakatonctl tap --auto=100

  # Retry a failed batch every 5 seconds
  sakatonctl tap --retry-interval=5s`,
	Args: cobra.NoArgs,
	// PreRunE and RunE will be set by the main package that imports this
}

// GetTapCommand returns the tap command for handler assignment
func GetTapCommand() *cobra.Command {
	return tapCmd
}

// SetupTapFlags configures flags for the tap command
func SetupTapFlags(tapCmd *cobra.Command, autoPtr *int, intervalPtr *time.Duration,
	retryIntervalPtr *time.Duration, defaultInterval time.Duration) {
	tapCmd.Flags().IntVar(autoPtr, "auto", 0,
		"Send this many taps headlessly instead of opening the coin")
	tapCmd.Flags().DurationVar(intervalPtr, "interval", defaultInterval,
		"Delay between headless taps")
	tapCmd.Flags().DurationVar(retryIntervalPtr, "retry-interval", 0,
		"Retry a failed batch on this interval (0 disables)")
}
