// Package commands provides the command tree for sakatonctl.
//
// Commands are declared here without handlers; the main package assigns RunE
// functions so this package stays free of API and terminal dependencies.
//
// COMMAND STRUCTURE:
//   - login/logout: Session management against the SakaTON backend
//   - me, ranking: Account balance and leaderboard
//   - task: Task list and start/claim actions
//   - tap: Interactive terminal coin, or headless tapping with --auto
package commands

import (
	"github.com/spf13/cobra"
)

// Root command
var RootCmd = &cobra.Command{
	Use:   "sakatonctl",
	Short: "Terminal client for the SakaTON tap-to-earn game",
	Long: `SakaTON CLI (sakatonctl) is a terminal client for the SakaTON game.

Log in with the Telegram WebApp init data, then tap the coin, check the
leaderboard and claim task rewards from your terminal. Clicks are rate
limited locally and submitted to the backend in signed batches.`,
	SilenceUsage: true,
	Example: `  # Log in with Telegram init data
  sakatonctl login --init-data="$INIT_DATA"

  # Tap the coin interactively
  sakatonctl tap

  # Show your balance and the leaderboard
  sakatonctl me
  sakatonctl ranking

  # Talk to a local development backend
  sakatonctl --api=http://127.0.0.1:3000/api me

  # Output in JSON format
  sakatonctl -o json task ls`,
}

// SetupCommands initializes all commands and their relationships
func SetupCommands() {
	RootCmd.AddCommand(loginCmd)
	RootCmd.AddCommand(logoutCmd)
	RootCmd.AddCommand(meCmd)
	RootCmd.AddCommand(rankingCmd)
	RootCmd.AddCommand(taskCmd)
	RootCmd.AddCommand(tapCmd)

	setupTaskCommands()
}

// SetupGlobalFlags configures all global persistent flags
func SetupGlobalFlags(rootCmd *cobra.Command, apiAddrPtr *string, logLevelPtr *string,
	timeoutPtr *int, verbosePtr *bool, outputPtr *string, tokenDBPtr *string,
	defaultAPIAddr string, defaultTimeout int) {
	rootCmd.PersistentFlags().StringVar(apiAddrPtr, "api", defaultAPIAddr,
		"API base URL")
	rootCmd.PersistentFlags().StringVar(logLevelPtr, "log-level", "ERROR",
		"Log level: DEBUG, INFO, WARN, ERROR")
	rootCmd.PersistentFlags().IntVar(timeoutPtr, "timeout", defaultTimeout,
		"Request timeout in seconds")
	rootCmd.PersistentFlags().BoolVarP(verbosePtr, "verbose", "v", false,
		"Show verbose output")
	rootCmd.PersistentFlags().StringVarP(outputPtr, "output", "o", "table",
		"Output format: table, json")
	rootCmd.PersistentFlags().StringVar(tokenDBPtr, "token-db", "",
		"Session token database (default ~/.sakaton/session.db)")
}
