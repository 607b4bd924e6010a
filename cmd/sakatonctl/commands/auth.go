package commands

import (
	"github.com/spf13/cobra"
)

// Login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with Telegram WebApp init data",
	Long: `Exchange Telegram WebApp init data for a session token.

The token is stored locally and used by every other command until
'sakatonctl logout' removes it.`,
	Example: `  # Log in
  sakatonctl login --init-data="query_id=...&user=...&hash=..."

  # Log in against a local development backend
  sakatonctl --api=http://127.0.0.1:3000/api login --init-data="user=%7B%22id%22%3A1%7D"`,
	Args: cobra.NoArgs,
	// RunE will be set by the main package that imports this
}

// Logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored session token",
	Args:  cobra.NoArgs,
	// RunE will be set by the main package that imports this
}

// GetAuthCommands returns the login and logout commands for handler assignment
func GetAuthCommands() (*cobra.Command, *cobra.Command) {
	return loginCmd, logoutCmd
}

// SetupLoginFlags configures flags for the login command
func SetupLoginFlags(loginCmd *cobra.Command, initDataPtr *string) {
	loginCmd.Flags().StringVar(initDataPtr, "init-data", "",
		"Telegram WebApp init data (the raw query string)")
	loginCmd.MarkFlagRequired("init-data")
}
