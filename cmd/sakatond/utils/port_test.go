package utils

import (
	"testing"

	"github.com/concave-dev/sakaton/cmd/sakatond/config"
	"github.com/concave-dev/sakaton/internal/netutil"
)

func TestPreBindServiceListener(t *testing.T) {
	saved := config.Global
	t.Cleanup(func() { config.Global = saved })
	config.Global.MaxPorts = 20

	pb := netutil.NewPortBinder()

	busy, err := pb.BindTCP("127.0.0.1", 0)
	if err != nil {
		t.Fatalf("BindTCP() error = %v", err)
	}
	defer busy.Close()
	busyPort, err := pb.GetListenerPort(busy)
	if err != nil {
		t.Fatalf("GetListenerPort() error = %v", err)
	}

	if _, _, err := PreBindServiceListener("API", pb, true, "127.0.0.1", busyPort); err == nil {
		t.Error("explicit busy port should fail")
	}

	listener, port, err := PreBindServiceListener("API", pb, false, "127.0.0.1", busyPort)
	if err != nil {
		t.Skipf("no free port near %d: %v", busyPort, err)
	}
	defer listener.Close()
	if port == busyPort {
		t.Errorf("fallback returned the busy port %d", port)
	}
	if got, _ := pb.GetListenerPort(listener); got != port {
		t.Errorf("listener port = %d, reported %d", got, port)
	}
}

func TestGetMaxPorts(t *testing.T) {
	saved := config.Global
	t.Cleanup(func() { config.Global = saved })

	config.Global.MaxPorts = 0
	if got := GetMaxPorts(); got != config.DefaultMaxPorts {
		t.Errorf("GetMaxPorts() = %d, want %d", got, config.DefaultMaxPorts)
	}
	config.Global.MaxPorts = 7
	if got := GetMaxPorts(); got != 7 {
		t.Errorf("GetMaxPorts() = %d, want 7", got)
	}
}
