// Package handlers provides command handler functions for sakatonctl.
//
// The package is organized as follows:
//   - auth.go: login and logout (session token store)
//   - account.go: profile, balance and leaderboard
//   - task.go: task listing, starting and claiming
//   - tap.go: interactive and headless tapping through the clicker
//
// All handlers follow the same pattern: configure CLI logging, build the API
// client from global flags, read the session token when the route needs it,
// and hand results to the display package.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/concave-dev/sakaton/cmd/sakatonctl/client"
	"github.com/concave-dev/sakaton/cmd/sakatonctl/config"
	"github.com/concave-dev/sakaton/internal/backend"
	"github.com/concave-dev/sakaton/internal/logging"
	"github.com/concave-dev/sakaton/internal/netutil"
	"github.com/concave-dev/sakaton/internal/session"
	"github.com/spf13/cobra"
)

// ErrNotLoggedIn is returned by commands that need a stored session token.
var ErrNotLoggedIn = errors.New("not logged in: run 'sakatonctl login --init-data=...' first")

// commandContext returns the command's context, or Background when the
// command was not started through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

// loadToken reads the stored session token.
func loadToken(ctx context.Context) (string, error) {
	store, err := client.OpenTokenStore()
	if err != nil {
		return "", err
	}
	defer store.Close()

	return readToken(ctx, store)
}

// readToken reads the session token from an already open store.
func readToken(ctx context.Context, store session.TokenSource) (string, error) {
	token, err := store.Token(ctx)
	if err != nil {
		if errors.Is(err, session.ErrNoToken) {
			return "", ErrNotLoggedIn
		}
		return "", err
	}
	logging.Debug("Using session token %s", logging.FormatToken(token))
	return token, nil
}

// describeError logs a hint for common failures and wraps err with action.
func describeError(action string, err error) error {
	switch {
	case errors.Is(err, ErrNotLoggedIn):
		return err
	case backend.IsStatus(err, http.StatusUnauthorized), backend.IsStatus(err, http.StatusForbidden):
		logging.Error("TIP: the session was rejected, log in again with 'sakatonctl login'")
	case netutil.IsConnectionRefusedError(err):
		logging.Error("TIP: check that the API at %s is reachable", config.Global.APIAddr)
		logging.Error("     For local development start one with: sakatond")
	}
	logging.Error("Failed to %s: %v", action, err)
	return fmt.Errorf("failed to %s: %w", action, err)
}
