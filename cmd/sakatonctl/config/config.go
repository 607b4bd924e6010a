// Package config provides configuration management for the sakatonctl CLI.
package config

import (
	"time"

	"github.com/concave-dev/sakaton/internal/backend"
	"github.com/concave-dev/sakaton/internal/version"
)

const (
	DefaultAPIAddr      = backend.DefaultBaseURL // Production API base URL
	DefaultTimeout      = 10                     // Request timeout in seconds
	DefaultTapInterval  = 150 * time.Millisecond // Headless tap spacing, under the 8/s cap
	DefaultRankingLimit = 10                     // Leaderboard rows shown
)

// Version returns the current sakatonctl CLI version from the centralized version package
var Version = version.SakatonctlVersion

// Global holds the global CLI configuration
var Global struct {
	APIAddr  string // API base URL, e.g. https://sakaton.vercel.app/api
	LogLevel string // Log level for CLI operations
	Timeout  int    // Request timeout in seconds
	Verbose  bool   // Show verbose output
	Output   string // Output format: table, json
	TokenDB  string // Session token database (default: ~/.sakaton/session.db)
}

// Login holds the login command configuration
var Login struct {
	InitData string // Telegram WebApp init data
}

// Tap holds the tap command configuration
var Tap struct {
	Auto          int           // Headless mode: number of taps to send (0 = interactive)
	Interval      time.Duration // Headless mode: delay between taps
	RetryInterval time.Duration // Periodic retry of a failed batch (0 = disabled)
}

// Ranking holds the ranking command configuration
var Ranking struct {
	UserID string // Whose rank to report (default: the logged-in user)
	Limit  int    // Leaderboard rows to show
	Watch  bool   // Refresh every 2 seconds
}
