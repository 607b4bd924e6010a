// Package version provides centralized version information for the sakaton
// binaries. The sakatond dev backend and the sakatonctl client are versioned
// independently. All versions follow semantic versioning (semver) conventions.

package version

// SakatondVersion holds the current sakatond dev backend version.
// Format: major.minor.patch[-prerelease][+build]
const SakatondVersion = "0.1.0-dev"

// SakatonctlVersion holds the current sakatonctl CLI version.
// Format: major.minor.patch[-prerelease][+build]
const SakatonctlVersion = "0.1.0-dev"
