// Package commands contains Cobra CLI command definitions for sakatond.
package commands

import (
	"github.com/concave-dev/sakaton/cmd/sakatond/config"
	"github.com/spf13/cobra"
)

// SetupFlags configures all command line flags for the dev backend
func SetupFlags(cmd *cobra.Command) {
	// API flags
	cmd.Flags().StringVar(&config.Global.APIAddr, "api", config.DefaultAPI,
		"Address and port for the HTTP API (e.g., "+config.DefaultAPI+")\n"+
			"If not specified, the next free port after the default is used when it is busy")

	// Click verification flags
	cmd.Flags().StringVar(&config.Global.Secret, "secret", "",
		"Shared HMAC secret for click batches (default: $CLICKER_SECRET, then the built-in secret)")
	cmd.Flags().DurationVar(&config.Global.ClickTolerance, "tolerance", config.DefaultClickTolerance,
		"Maximum skew between a batch timestamp and the server clock")
	cmd.Flags().IntVar(&config.Global.ClicksPerRequest, "clicks-per-request", config.DefaultClicksPerRequest,
		"Points credited per accepted click batch (default: $CLICKS_PER_REQUEST when set)")

	// Operational flags
	cmd.Flags().StringVar(&config.Global.LogLevel, "log-level", config.DefaultLogLevel,
		"Log level: DEBUG, INFO, WARN, ERROR")
	cmd.Flags().StringVar(&config.Global.LogFile, "log-file", "",
		"Write logs to this file instead of stdout/stderr")
}

// CheckExplicitFlags checks if flags were explicitly set by the user
func CheckExplicitFlags(cmd *cobra.Command) {
	config.Global.SetExplicitlySet(config.APIAddrField, cmd.Flags().Changed("api"))
	config.Global.SetExplicitlySet(config.SecretField, cmd.Flags().Changed("secret"))
	config.Global.SetExplicitlySet(config.ClicksPerRequestField, cmd.Flags().Changed("clicks-per-request"))
	config.Global.SetExplicitlySet(config.LogFileField, cmd.Flags().Changed("log-file"))
}
