// Package client builds the API client and opens the session token store for
// sakatonctl commands from the global CLI configuration.
package client

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/concave-dev/sakaton/cmd/sakatonctl/config"
	"github.com/concave-dev/sakaton/internal/backend"
	configDefaults "github.com/concave-dev/sakaton/internal/config"
	"github.com/concave-dev/sakaton/internal/logging"
	"github.com/concave-dev/sakaton/internal/session"
)

// CreateAPIClient creates a backend client using the global --api and
// --timeout settings.
func CreateAPIClient() *backend.Client {
	opts := backend.DefaultOptions()
	opts.BaseURL = config.Global.APIAddr
	opts.Timeout = time.Duration(config.Global.Timeout) * time.Second
	opts.UserAgent = fmt.Sprintf("sakatonctl/%s", config.Version)

	logging.Debug("Creating API client for %s (timeout %s)", opts.BaseURL, opts.Timeout)
	return backend.New(opts)
}

// TokenDBPath resolves the session database path: --token-db when set,
// otherwise ~/.sakaton/session.db.
func TokenDBPath() (string, error) {
	if config.Global.TokenDB != "" {
		return config.Global.TokenDB, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory (use --token-db): %w", err)
	}
	return filepath.Join(home, configDefaults.DefaultTokenDB), nil
}

// OpenTokenStore opens the SQLite session store. Callers must Close it.
func OpenTokenStore() (session.TokenStore, error) {
	path, err := TokenDBPath()
	if err != nil {
		return nil, err
	}
	logging.Debug("Opening session store at %s", path)

	store, err := session.NewSQLiteStore(path)
	if err != nil {
		return nil, err
	}
	return store, nil
}
