// Package config provides configuration management for the sakaton dev backend.
//
// Values come from cobra flags, then environment overrides applied by
// InitializeConfig, then normalization by ValidateConfig. The configuration
// tracks which values the user set explicitly so that defaults can adapt:
// an explicit --api address is bound exactly, while the default address falls
// back to the next free port, and an explicit --secret is never replaced by
// $CLICKER_SECRET.
package config

import (
	"time"

	configDefaults "github.com/concave-dev/sakaton/internal/config"
)

// ConfigField represents a configuration field that can be explicitly set
type ConfigField int

const (
	// Configuration field identifiers
	APIAddrField ConfigField = iota
	SecretField
	ClicksPerRequestField
	LogFileField
)

const (
	DefaultAPI              = configDefaults.DefaultBindAddr + ":3000" // Default API address
	DefaultLogLevel         = configDefaults.DefaultLogLevel           // Default log level
	DefaultClickTolerance   = 30 * time.Second                         // Allowed batch timestamp skew
	DefaultClicksPerRequest = 20                                       // Points per accepted batch
	DefaultMaxPorts         = 100                                      // Fallback port search range
)

// Config holds all dev backend configuration values
type Config struct {
	APIAddr          string        // HTTP API bind address (host part after validation)
	APIPort          int           // HTTP API port (derived from APIAddr)
	Secret           string        // Shared HMAC secret for click batches
	ClickTolerance   time.Duration // Allowed skew between batch timestamp and server clock
	ClicksPerRequest int           // Points credited per accepted batch
	LogLevel         string        // Log level: DEBUG, INFO, WARN, ERROR
	LogFile          string        // Optional log file path
	MaxPorts         int           // Ports to try when the default port is busy

	// Flags to track if values were explicitly set by user
	apiAddrExplicitlySet          bool
	secretExplicitlySet           bool
	clicksPerRequestExplicitlySet bool
	logFileExplicitlySet          bool
}

// Global configuration instance
var Global Config

// SetExplicitlySet marks a configuration field as explicitly set by the user.
func (c *Config) SetExplicitlySet(field ConfigField, value bool) {
	switch field {
	case APIAddrField:
		c.apiAddrExplicitlySet = value
	case SecretField:
		c.secretExplicitlySet = value
	case ClicksPerRequestField:
		c.clicksPerRequestExplicitlySet = value
	case LogFileField:
		c.logFileExplicitlySet = value
	}
}

// IsExplicitlySet returns whether a configuration field was explicitly set by the user.
func (c *Config) IsExplicitlySet(field ConfigField) bool {
	switch field {
	case APIAddrField:
		return c.apiAddrExplicitlySet
	case SecretField:
		return c.secretExplicitlySet
	case ClicksPerRequestField:
		return c.clicksPerRequestExplicitlySet
	case LogFileField:
		return c.logFileExplicitlySet
	}
	return false
}
