// Package clicker implements the client side of the tap-to-earn protocol: a
// sliding-window Input Governor that admits or rejects clicks, and a Batch
// Submitter that signs and sends accumulated clicks once a batch threshold is
// reached, with at most one submission in flight.
package clicker

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/concave-dev/sakaton/internal/integrity"
	"github.com/concave-dev/sakaton/internal/logging"
	"github.com/concave-dev/sakaton/internal/validate"
)

// Environment variables read by ApplyEnv.
const (
	EnvSecret             = "CLICKER_SECRET"
	EnvMaxClicksPerSecond = "MAX_CLICKS_PER_SECOND"
	EnvClicksPerRequest   = "CLICKS_PER_REQUEST"
)

// Config holds the governor and submitter parameters.
type Config struct {
	// Shared HMAC secret. Embedded in every client, so not a secret in any
	// meaningful sense; see package integrity.
	Secret string `json:"-" validate:"required"`

	// Governor
	MaxClicksPerSecond int `json:"max_clicks_per_second" validate:"min=1,max=1000"`
	WindowMs           int `json:"window_ms" validate:"min=1,max=60000"`

	// Submitter
	ClicksPerRequest int `json:"clicks_per_request" validate:"min=1,max=100000"`
	SubmitTimeoutMs  int `json:"submit_timeout_ms" validate:"min=1,max=120000"`

	// Periodic retry of a batch left over by a failed submission. 0 disables
	// it, leaving retries to the next organic threshold crossing.
	RetryIntervalMs int `json:"retry_interval_ms" validate:"min=0,max=3600000"`
}

// DefaultConfig returns the values the Mini App shipped with plus an explicit
// 10s submission timeout.
func DefaultConfig() *Config {
	return &Config{
		Secret:             integrity.DefaultSecret,
		MaxClicksPerSecond: 8,
		WindowMs:           1000,
		ClicksPerRequest:   20,
		SubmitTimeoutMs:    10000,
		RetryIntervalMs:    0,
	}
}

// ApplyEnv overrides fields from CLICKER_SECRET, MAX_CLICKS_PER_SECOND and
// CLICKS_PER_REQUEST. Malformed numbers are logged and ignored.
func (c *Config) ApplyEnv() {
	if secret := os.Getenv(EnvSecret); secret != "" {
		c.Secret = secret
	}
	if c.Secret == integrity.DefaultSecret {
		logging.Warn("%s not set, using the built-in default secret", EnvSecret)
	}

	c.MaxClicksPerSecond = envInt(EnvMaxClicksPerSecond, c.MaxClicksPerSecond)
	c.ClicksPerRequest = envInt(EnvClicksPerRequest, c.ClicksPerRequest)
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		logging.Warn("Invalid %s environment variable '%s', using default: %d", key, raw, fallback)
		return fallback
	}
	logging.Debug("%s environment variable detected, setting to %d", key, v)
	return v
}

// Validate checks every field against its bounds.
func (c *Config) Validate() error {
	if err := validate.ValidateStruct(c); err != nil {
		return fmt.Errorf("clicker config: %w", err)
	}
	return nil
}

// GetWindow returns the admission window as a duration.
func (c *Config) GetWindow() time.Duration {
	return time.Duration(c.WindowMs) * time.Millisecond
}

// GetSubmitTimeout returns the per-submission timeout.
func (c *Config) GetSubmitTimeout() time.Duration {
	return time.Duration(c.SubmitTimeoutMs) * time.Millisecond
}

// GetRetryInterval returns the retry ticker interval, zero when disabled.
func (c *Config) GetRetryInterval() time.Duration {
	return time.Duration(c.RetryIntervalMs) * time.Millisecond
}
