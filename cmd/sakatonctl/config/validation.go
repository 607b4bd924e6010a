// Package config provides configuration management for the sakatonctl CLI.
package config

import (
	"fmt"

	"github.com/concave-dev/sakaton/internal/logging"
	"github.com/concave-dev/sakaton/internal/validate"
	"github.com/spf13/cobra"
)

// ValidateGlobalFlags validates all global flags before running any command
func ValidateGlobalFlags(cmd *cobra.Command, args []string) error {
	if err := ValidateAPIAddress(); err != nil {
		return err
	}

	if err := ValidateOutputFormat(); err != nil {
		return err
	}

	if err := ValidateTimeout(); err != nil {
		return err
	}

	return logging.ValidateLogLevel(Global.LogLevel)
}

// ValidateAPIAddress validates the --api flag
func ValidateAPIAddress() error {
	if err := validate.ValidateBaseURL(Global.APIAddr); err != nil {
		logging.Error("Invalid API address '%s': %v", Global.APIAddr, err)
		return fmt.Errorf("invalid API address - expected a base URL (e.g., %s)", DefaultAPIAddr)
	}
	return nil
}

// ValidateOutputFormat validates the --output flag
func ValidateOutputFormat() error {
	validOutputs := map[string]bool{
		"table": true,
		"json":  true,
	}
	if !validOutputs[Global.Output] {
		logging.Error("Invalid output format '%s' - valid formats are: table, json", Global.Output)
		return fmt.Errorf("invalid output format - valid: table, json")
	}
	return nil
}

// ValidateTimeout validates the --timeout flag
func ValidateTimeout() error {
	if Global.Timeout < 1 || Global.Timeout > 300 {
		logging.Error("Invalid timeout %d - must be between 1 and 300 seconds", Global.Timeout)
		return fmt.Errorf("timeout must be between 1 and 300 seconds")
	}
	return nil
}

// ValidateTapFlags validates the tap command flags
func ValidateTapFlags(cmd *cobra.Command, args []string) error {
	if Tap.Auto < 0 {
		return fmt.Errorf("--auto must not be negative")
	}
	if Tap.Auto > 0 {
		if err := validate.ValidatePositiveTimeout(Tap.Interval, "--interval"); err != nil {
			return err
		}
	}
	if Tap.RetryInterval < 0 {
		return fmt.Errorf("--retry-interval must not be negative")
	}
	return nil
}
