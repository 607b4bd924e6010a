package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/concave-dev/sakaton/internal/clicker"
	"github.com/concave-dev/sakaton/internal/integrity"
	"github.com/concave-dev/sakaton/internal/logging"
	"github.com/concave-dev/sakaton/internal/validate"
)

// InitializeConfig applies environment variable overrides and defaults to
// Global before validation runs.
//
// Recognized variables: DEBUG=true forces the DEBUG log level, CLICKER_SECRET
// supplies the secret when --secret was not given, CLICKS_PER_REQUEST supplies
// the batch credit when --clicks-per-request was not given, and MAX_PORTS
// bounds the fallback port search.
func InitializeConfig() {
	if os.Getenv("DEBUG") == "true" {
		Global.LogLevel = "DEBUG"
		logging.Info("DEBUG environment variable detected, setting log level to DEBUG")
	}

	if !Global.secretExplicitlySet || Global.Secret == "" {
		if secret := os.Getenv(clicker.EnvSecret); secret != "" {
			Global.Secret = secret
			logging.Info("%s environment variable detected, using it as the click secret", clicker.EnvSecret)
		}
	}
	if Global.Secret == "" {
		Global.Secret = integrity.DefaultSecret
		logging.Warn("%s not set, using the built-in default secret", clicker.EnvSecret)
	}

	if !Global.clicksPerRequestExplicitlySet {
		if raw := os.Getenv(clicker.EnvClicksPerRequest); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				Global.ClicksPerRequest = n
				logging.Info("%s environment variable detected, crediting %d points per batch", clicker.EnvClicksPerRequest, n)
			} else {
				logging.Warn("Invalid %s environment variable '%s', using default: %d", clicker.EnvClicksPerRequest, raw, Global.ClicksPerRequest)
			}
		}
	}

	if Global.MaxPorts == 0 {
		Global.MaxPorts = DefaultMaxPorts
	}
	if maxPortsEnv := os.Getenv("MAX_PORTS"); maxPortsEnv != "" {
		if maxPorts, err := strconv.Atoi(maxPortsEnv); err == nil {
			Global.MaxPorts = maxPorts
			logging.Info("MAX_PORTS environment variable detected, setting max ports to %d", maxPorts)
		} else {
			logging.Warn("Invalid MAX_PORTS environment variable '%s', using default: %d", maxPortsEnv, Global.MaxPorts)
		}
	}
}

// ValidateConfig validates and normalizes Global before the server starts.
// The API address is split into APIAddr (host) and APIPort.
func ValidateConfig() error {
	if Global.MaxPorts < 1 || Global.MaxPorts > 10000 {
		logging.Error("Invalid max-ports value: %d (must be between 1 and 10000)", Global.MaxPorts)
		return fmt.Errorf("max-ports must be between 1 and 10000, got: %d", Global.MaxPorts)
	}

	if err := logging.ValidateLogLevel(Global.LogLevel); err != nil {
		return err
	}

	apiNetAddr, err := validate.ParseBindAddress(Global.APIAddr)
	if err != nil {
		logging.Error("Invalid API address '%s': %v", Global.APIAddr, err)
		return fmt.Errorf("invalid API address: %w", err)
	}
	if Global.apiAddrExplicitlySet {
		if err := validate.ValidatePortRange(apiNetAddr.Port); err != nil {
			logging.Error("API port cannot be 0 (auto-assigned) - clients need a known port")
			return fmt.Errorf("API address requires specific port (not 0): %w", err)
		}
	}
	Global.APIAddr = apiNetAddr.Host
	Global.APIPort = apiNetAddr.Port

	if err := validate.ValidateRequiredString(Global.Secret, "click secret"); err != nil {
		return err
	}
	if err := validate.ValidatePositiveTimeout(Global.ClickTolerance, "click tolerance"); err != nil {
		return err
	}
	if Global.ClicksPerRequest < 1 {
		logging.Error("Invalid clicks-per-request value: %d", Global.ClicksPerRequest)
		return fmt.Errorf("clicks-per-request must be positive, got: %d", Global.ClicksPerRequest)
	}

	return nil
}
