// Package commands provides the CLI command structure for the sakaton dev
// backend.
//
// sakatond is a single root command: flags configure the listen address, the
// click verification parameters and logging, a validation pipeline runs before
// startup, and the daemon package owns the server lifecycle.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/concave-dev/sakaton/cmd/sakatond/config"
	"github.com/concave-dev/sakaton/cmd/sakatond/daemon"
	"github.com/concave-dev/sakaton/cmd/sakatond/utils"
	"github.com/concave-dev/sakaton/internal/logging"
	"github.com/concave-dev/sakaton/internal/version"
	"github.com/spf13/cobra"
)

// Global variable to track log file handle for cleanup
var logFileHandle *os.File

// CleanupLogFile closes the log file handle if it exists
func CleanupLogFile() {
	if logFileHandle != nil {
		if err := logFileHandle.Close(); err != nil {
			// Log to stderr since we're cleaning up the log file
			fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
		}
		logFileHandle = nil
	}
}

// RootCmd is the root command for the dev backend
var RootCmd = &cobra.Command{
	Use:   "sakatond",
	Short: "Local development backend for the SakaTON tap-to-earn API",
	Long: `sakatond serves the SakaTON API from memory for local development.

Every route of the production backend is available under /api. Click batches
are verified with the same HMAC integrity tag the client computes, stale or
replayed timestamps are rejected, and each accepted batch credits points.

State is lost when the process exits.`,
	Version:      version.SakatondVersion,
	SilenceUsage: true, // Don't show usage on errors
	Example: `  # Start on the default address (127.0.0.1:3000, next free port if busy)
  sakatond

  # Explicit address and secret
  sakatond --api=0.0.0.0:3000 --secret=my-shared-secret

  # Point the client at it
  sakatonctl --api=http://127.0.0.1:3000/api login --init-data='user={"id":1,"first_name":"Ada"}'`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Display logo first, before any validation or logging
		utils.DisplayLogo(version.SakatondVersion)
	},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		CheckExplicitFlags(cmd)

		if config.Global.IsExplicitlySet(config.LogFileField) && config.Global.LogFile != "" {
			logDir := filepath.Dir(config.Global.LogFile)
			if err := os.MkdirAll(logDir, 0755); err != nil {
				return fmt.Errorf("failed to create log directory %s: %w", logDir, err)
			}

			var err error
			logFileHandle, err = os.OpenFile(config.Global.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return fmt.Errorf("failed to open log file %s: %w", config.Global.LogFile, err)
			}

			logging.SetOutput(logFileHandle)
		}

		// Set the level before InitializeConfig so --log-level=ERROR hides its
		// INFO lines, then again to pick up the DEBUG override.
		logging.SetLevel(config.Global.LogLevel)
		config.InitializeConfig()
		logging.SetLevel(config.Global.LogLevel)

		if err := config.ValidateConfig(); err != nil {
			CleanupLogFile()
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		defer CleanupLogFile()
		return daemon.Run()
	},
}

// SetupCommands initializes all commands and their relationships
func SetupCommands() {
	SetupFlags(RootCmd)
}
