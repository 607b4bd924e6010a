// Package logging provides centralized log level validation.
//
// The same set of levels is accepted by the CLI --log-level flag, the dev
// backend configuration and the DEBUG environment override.
package logging

import "fmt"

// ValidLogLevels defines the supported log levels. Level strings are
// case-sensitive and must be uppercase.
var ValidLogLevels = map[string]bool{
	"DEBUG": true,
	"INFO":  true,
	"WARN":  true,
	"ERROR": true,
}

// IsValidLogLevel checks if the provided log level string is supported.
func IsValidLogLevel(level string) bool {
	return ValidLogLevels[level]
}

// ValidateLogLevel validates a log level string and returns an error if invalid.
func ValidateLogLevel(level string) error {
	if !IsValidLogLevel(level) {
		return fmt.Errorf("invalid log level: %s", level)
	}
	return nil
}
