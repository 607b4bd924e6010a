// Package daemon provides the sakaton dev backend lifecycle.
//
// STARTUP:
//  1. Pre-bind the API listener. An explicit --api port is bound exactly; the
//     default port falls back to the next free one so a second instance on the
//     same machine still starts.
//  2. Create the in-memory store with the default task catalog.
//  3. Start the gin server on the pre-bound listener.
//
// SHUTDOWN:
// SIGINT/SIGTERM (or context cancellation) triggers a graceful HTTP shutdown
// with a 5 second deadline for in-flight requests.
package daemon

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/concave-dev/sakaton/cmd/sakatond/config"
	"github.com/concave-dev/sakaton/cmd/sakatond/utils"
	"github.com/concave-dev/sakaton/internal/api"
	"github.com/concave-dev/sakaton/internal/api/store"
	"github.com/concave-dev/sakaton/internal/logging"
	"github.com/concave-dev/sakaton/internal/netutil"
	"github.com/concave-dev/sakaton/internal/version"
)

// shutdownTimeout bounds the graceful HTTP shutdown.
const shutdownTimeout = 5 * time.Second

// buildAPIConfig converts daemon config to the API server config
func buildAPIConfig() *api.Config {
	apiConfig := api.DefaultConfig()
	apiConfig.BindAddr = config.Global.APIAddr
	apiConfig.BindPort = config.Global.APIPort
	apiConfig.Secret = config.Global.Secret
	apiConfig.ClickTolerance = config.Global.ClickTolerance
	apiConfig.ClicksPerRequest = config.Global.ClicksPerRequest
	apiConfig.Version = version.SakatondVersion
	return apiConfig
}

// Run starts the dev backend and blocks until SIGINT or SIGTERM.
func Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return Serve(ctx, nil)
}

// Serve runs the dev backend until ctx is cancelled. When ready is non-nil it
// receives the bound address once the server is accepting connections.
func Serve(ctx context.Context, ready chan<- string) error {
	logging.SetLevel(config.Global.LogLevel)
	logging.Info("Starting SakaTON dev backend v%s", version.SakatondVersion)

	// net/http reports accept and handler panics through the standard logger
	logging.RedirectStandardLog(logging.NewLevelWriter("WARN", "http"))

	portBinder := netutil.NewPortBinder()
	listener, port, err := utils.PreBindServiceListener("API", portBinder,
		config.Global.IsExplicitlySet(config.APIAddrField), config.Global.APIAddr, config.Global.APIPort)
	if err != nil {
		logging.Error("Failed to pre-bind API listener: %v", err)
		if netutil.IsAddressInUseError(err) {
			logging.Error("TIP: another sakatond may already be running on %s:%d", config.Global.APIAddr, config.Global.APIPort)
		}
		return err
	}
	if port == 0 {
		// Port 0 asks the OS for a port; report the one it chose.
		if port, err = portBinder.GetListenerPort(listener); err != nil {
			listener.Close()
			return err
		}
	}
	config.Global.APIPort = port

	memStore := store.NewMemory(store.DefaultTasks())

	apiServer, err := api.NewServerWithListener(buildAPIConfig(), listener, memStore)
	if err != nil {
		logging.Error("Failed to create API server: %v", err)
		listener.Close() // Clean up pre-bound listener on error
		return fmt.Errorf("failed to create API server: %w", err)
	}
	if err := apiServer.Start(); err != nil {
		logging.Error("Failed to start API server: %v", err)
		return fmt.Errorf("failed to start API server: %w", err)
	}

	logging.Success("SakaTON dev backend started successfully")
	logging.Info("  - HTTP API: http://%s:%d/api", config.Global.APIAddr, config.Global.APIPort)
	logging.Info("  - Clicks per request: %d, tolerance: %s", config.Global.ClicksPerRequest, config.Global.ClickTolerance)
	logging.Info("Daemon running... Press Ctrl+C to shutdown")

	if ready != nil {
		ready <- apiServer.Addr()
	}

	<-ctx.Done()
	logging.Info("Initiating graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logging.Error("Error shutting down API server: %v", err)
		return err
	}

	logging.Success("SakaTON dev backend shutdown completed")
	return nil
}
