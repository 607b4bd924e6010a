// Package main provides the entry point for the SakaTON CLI tool (sakatonctl).
//
// The main package wires the command tree from the commands package to the
// handlers, binds flags to the config package and runs the root command.
package main

import (
	"os"

	"github.com/concave-dev/sakaton/cmd/sakatonctl/commands"
	"github.com/concave-dev/sakaton/cmd/sakatonctl/config"
	"github.com/concave-dev/sakaton/cmd/sakatonctl/handlers"
)

func init() {
	rootCmd := commands.RootCmd

	// Set version and validation
	rootCmd.Version = config.Version
	rootCmd.PersistentPreRunE = config.ValidateGlobalFlags

	commands.SetupCommands()

	commands.SetupGlobalFlags(rootCmd, &config.Global.APIAddr, &config.Global.LogLevel,
		&config.Global.Timeout, &config.Global.Verbose, &config.Global.Output,
		&config.Global.TokenDB, config.DefaultAPIAddr, config.DefaultTimeout)

	loginCmd, _ := commands.GetAuthCommands()
	commands.SetupLoginFlags(loginCmd, &config.Login.InitData)

	_, rankingCmd := commands.GetAccountCommands()
	commands.SetupRankingFlags(rankingCmd, &config.Ranking.UserID, &config.Ranking.Limit,
		&config.Ranking.Watch, config.DefaultRankingLimit)

	tapCmd := commands.GetTapCommand()
	commands.SetupTapFlags(tapCmd, &config.Tap.Auto, &config.Tap.Interval,
		&config.Tap.RetryInterval, config.DefaultTapInterval)

	setupCommandHandlers()
}

// setupCommandHandlers assigns RunE functions to commands
func setupCommandHandlers() {
	loginCmd, logoutCmd := commands.GetAuthCommands()
	meCmd, rankingCmd := commands.GetAccountCommands()
	taskLsCmd, taskStartCmd, taskClaimCmd := commands.GetTaskCommands()
	tapCmd := commands.GetTapCommand()

	loginCmd.RunE = handlers.HandleLogin
	logoutCmd.RunE = handlers.HandleLogout
	meCmd.RunE = handlers.HandleMe
	rankingCmd.RunE = handlers.HandleRanking
	taskLsCmd.RunE = handlers.HandleTaskList
	taskStartCmd.RunE = handlers.HandleTaskStart
	taskClaimCmd.RunE = handlers.HandleTaskClaim
	tapCmd.PreRunE = config.ValidateTapFlags
	tapCmd.RunE = handlers.HandleTap
}

func main() {
	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
