// Package utils provides utility functions for the sakatonctl CLI.
// This file contains logging setup for CLI commands.
package utils

import (
	"os"

	"github.com/concave-dev/sakaton/cmd/sakatonctl/config"
	"github.com/concave-dev/sakaton/internal/logging"
)

// SetupLogging configures CLI logging behavior based on environment and config.
// DEBUG=true restores full debug output; otherwise only errors are shown so
// table and JSON output stay clean.
func SetupLogging() {
	if os.Getenv("DEBUG") == "true" {
		logging.RestoreOutput()
		logging.SetLevel("DEBUG")
		return
	}

	logging.SetLevel(config.Global.LogLevel)
	if config.Global.LogLevel == "ERROR" {
		logging.SuppressOutput()
	}
}
