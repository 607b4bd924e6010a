// Package utils contains utility functions for the sakaton dev backend.
// This includes listener pre-binding used during daemon startup.
package utils

import (
	"fmt"
	"net"

	"github.com/concave-dev/sakaton/cmd/sakatond/config"
	"github.com/concave-dev/sakaton/internal/logging"
	"github.com/concave-dev/sakaton/internal/netutil"
)

// PreBindServiceListener binds the TCP listener a service will serve on.
//
// An explicitly set port is bound exactly; failure is an error. A default port
// falls back to the next free port within GetMaxPorts attempts, with a
// warning when the bound port differs from the default.
//
// Returns the bound listener and actual port.
func PreBindServiceListener(serviceName string, portBinder *netutil.PortBinder, explicitlySet bool, addr string, port int) (net.Listener, int, error) {
	if explicitlySet {
		logging.Info("Pre-binding %s listener to explicit port %d", serviceName, port)

		listener, err := portBinder.BindTCP(addr, port)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to pre-bind %s listener to %s:%d: %w", serviceName, addr, port, err)
		}
		return listener, port, nil
	}

	logging.Info("Pre-binding %s listener starting from port %d", serviceName, port)

	listener, actualPort, err := portBinder.BindTCPWithFallback(addr, port, GetMaxPorts())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to pre-bind %s listener: %w", serviceName, err)
	}

	if actualPort != port {
		logging.Warn("Default %s port %d was busy, pre-bound to port %d", serviceName, port, actualPort)
	} else {
		logging.Info("Pre-bound %s listener to port %d", serviceName, actualPort)
	}

	return listener, actualPort, nil
}

// GetMaxPorts returns the configured maximum number of ports to try during
// fallback binding.
func GetMaxPorts() int {
	if config.Global.MaxPorts <= 0 {
		return config.DefaultMaxPorts
	}
	return config.Global.MaxPorts
}
