// Package api provides the HTTP server of the sakaton development backend.
//
// The server exposes the same routes as the production API under /api so the
// CLI, the tap screen and the click submitter can be exercised end to end on
// one machine. State lives in an in-memory store; click batches are verified
// with the same HMAC tag the client computes.
package api

import (
	"fmt"
	"time"

	configDefaults "github.com/concave-dev/sakaton/internal/config"
	"github.com/concave-dev/sakaton/internal/validate"
)

const (
	// DefaultAPIPort is the default port for the dev backend
	DefaultAPIPort = configDefaults.DefaultAPIPort

	// DefaultClickTolerance bounds the skew between a batch timestamp and
	// the server clock.
	DefaultClickTolerance = 30 * time.Second
)

// Config holds the parameters for running the dev backend.
//
// TODO: Add support for TLS/HTTPS configuration (cert/key files)
type Config struct {
	BindAddr string // HTTP server bind address (e.g., "127.0.0.1")
	BindPort int    // HTTP server bind port

	Secret           string        // shared HMAC secret for click batches
	ClickTolerance   time.Duration // allowed timestamp skew on /click
	ClicksPerRequest int           // points credited per accepted batch

	Version string // reported by /api/health
}

// DefaultConfig creates a Config with loopback binding and the client's
// default batch size.
func DefaultConfig() *Config {
	return &Config{
		BindAddr:         configDefaults.DefaultBindAddr,
		BindPort:         DefaultAPIPort,
		ClickTolerance:   DefaultClickTolerance,
		ClicksPerRequest: 20,
		Version:          "dev",
	}
}

// Validate checks that the server can start with this configuration.
func (c *Config) Validate() error {
	if err := validate.ValidateRequiredString(c.BindAddr, "bind address"); err != nil {
		return err
	}
	if err := validate.ValidatePortRange(c.BindPort); err != nil {
		return fmt.Errorf("bind port validation failed: %w", err)
	}
	if err := validate.ValidateRequiredString(c.Secret, "click secret"); err != nil {
		return err
	}
	if err := validate.ValidatePositiveTimeout(c.ClickTolerance, "click tolerance"); err != nil {
		return err
	}
	if c.ClicksPerRequest < 1 {
		return fmt.Errorf("clicks per request must be positive, got %d", c.ClicksPerRequest)
	}
	return nil
}
