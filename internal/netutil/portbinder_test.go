package netutil

import (
	"errors"
	"net"
	"testing"
)

func TestBindTCPWithFallback(t *testing.T) {
	pb := NewPortBinder()

	first, port, err := pb.BindTCPWithFallback("127.0.0.1", 0, 1)
	if err != nil {
		t.Fatalf("BindTCPWithFallback(port 0) error = %v", err)
	}
	defer first.Close()

	busy, err := pb.GetListenerPort(first)
	if err != nil {
		t.Fatalf("GetListenerPort() error = %v", err)
	}
	if port != 0 {
		t.Errorf("returned port = %d, want the requested 0", port)
	}

	_, err = pb.BindTCP("127.0.0.1", busy)
	var inUse *AddressInUseError
	if !errors.As(err, &inUse) {
		t.Fatalf("BindTCP(busy) error = %v, want *AddressInUseError", err)
	}
	if !IsAddressInUseError(err) {
		t.Error("IsAddressInUseError() = false for a busy port")
	}

	second, got, err := pb.BindTCPWithFallback("127.0.0.1", busy, 20)
	if err != nil {
		t.Skipf("no free port near %d: %v", busy, err)
	}
	defer second.Close()
	if got == busy {
		t.Errorf("fallback bound the busy port %d", busy)
	}

	if _, _, err := pb.BindTCPWithFallback("127.0.0.1", busy, 1); err == nil {
		t.Error("single attempt on a busy port should fail")
	}
}

func TestIsConnectionRefusedError(t *testing.T) {
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	addr := listener.Addr().String()
	listener.Close()

	_, err = net.Dial("tcp4", addr)
	if err == nil {
		t.Skip("port was reused before dialing")
	}
	if !IsConnectionRefusedError(err) {
		t.Errorf("IsConnectionRefusedError(%v) = false", err)
	}
	if IsConnectionRefusedError(errors.New("other")) {
		t.Error("plain error classified as connection refused")
	}
}
