// Package config provides default configuration values shared by the sakaton
// binaries: the sakatonctl client and the sakatond development backend.
package config

const (
	// DefaultBindAddr is the default bind address for the dev backend.
	// Loopback keeps the unauthenticated dev store off the network.
	// TODO: Add support for IPv6 bind addresses (::1)
	DefaultBindAddr = "127.0.0.1"

	// DefaultAPIPort matches the port the Mini App's local dev server used.
	DefaultAPIPort = 3000

	// DefaultLogLevel is the default log level for all components
	DefaultLogLevel = "INFO"

	// DefaultTokenDB is the SQLite file sakatonctl keeps its session token in,
	// relative to the user's home directory.
	DefaultTokenDB = ".sakaton/session.db"
)
