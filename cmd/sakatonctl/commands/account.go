package commands

import (
	"github.com/spf13/cobra"
)

// Me command
var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show your profile and points balance",
	Example: `  # Show your account
  sakatonctl me

  # Output in JSON format
  sakatonctl -o json me`,
	Args: cobra.NoArgs,
	// RunE will be set by the main package that imports this
}

// Ranking command
var rankingCmd = &cobra.Command{
	Use:     "ranking",
	Aliases: []string{"leaderboard"},
	Short:   "Show the leaderboard",
	Long: `Show the top players by points.

Your own rank is reported for the logged-in user, or for --user-id.`,
	Example: `  # Show the top 10
  sakatonctl ranking

  # Show the top 50 with live updates
  sakatonctl ranking --limit=50 --watch

  # Report the rank of another user
  sakatonctl ranking --user-id=123456789`,
	Args: cobra.NoArgs,
	// RunE will be set by the main package that imports this
}

// GetAccountCommands returns the me and ranking commands for handler assignment
func GetAccountCommands() (*cobra.Command, *cobra.Command) {
	return meCmd, rankingCmd
}

// SetupRankingFlags configures flags for the ranking command
func SetupRankingFlags(rankingCmd *cobra.Command, userIDPtr *string, limitPtr *int,
	watchPtr *bool, defaultLimit int) {
	rankingCmd.Flags().StringVar(userIDPtr, "user-id", "",
		"Report the rank of this user instead of the logged-in one")
	rankingCmd.Flags().IntVar(limitPtr, "limit", defaultLimit,
		"Number of leaderboard rows to show")
	rankingCmd.Flags().BoolVarP(watchPtr, "watch", "w", false,
		"Watch for changes and continuously update the display")
}
