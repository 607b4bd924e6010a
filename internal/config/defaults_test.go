package config

import (
	"net"
	"path/filepath"
	"strings"
	"testing"
)

// TestDefaultBindAddrIsLoopback validates that the dev backend binds to loopback
func TestDefaultBindAddrIsLoopback(t *testing.T) {
	ip := net.ParseIP(DefaultBindAddr)
	if ip == nil {
		t.Fatalf("DefaultBindAddr %q is not a valid IP address", DefaultBindAddr)
	}
	if ip.To4() == nil {
		t.Errorf("DefaultBindAddr %q is not a valid IPv4 address", DefaultBindAddr)
	}
	if !ip.IsLoopback() {
		t.Errorf("DefaultBindAddr %q should be a loopback address", DefaultBindAddr)
	}
}

func TestDefaultAPIPort(t *testing.T) {
	if DefaultAPIPort < 1 || DefaultAPIPort > 65535 {
		t.Errorf("DefaultAPIPort %d out of range", DefaultAPIPort)
	}
}

// TestDefaultLogLevelIsValid validates that the default log level is a recognized level
func TestDefaultLogLevelIsValid(t *testing.T) {
	validLevels := []string{"DEBUG", "INFO", "WARN", "ERROR"}

	isValid := false
	for _, level := range validLevels {
		if DefaultLogLevel == level {
			isValid = true
			break
		}
	}

	if !isValid {
		t.Errorf("DefaultLogLevel %q is not a valid log level. Valid levels: %v",
			DefaultLogLevel, validLevels)
	}
	if DefaultLogLevel != strings.ToUpper(DefaultLogLevel) {
		t.Errorf("DefaultLogLevel %q should be uppercase", DefaultLogLevel)
	}
}

func TestDefaultTokenDBIsRelative(t *testing.T) {
	if filepath.IsAbs(DefaultTokenDB) {
		t.Errorf("DefaultTokenDB %q should be relative to the home directory", DefaultTokenDB)
	}
	if filepath.Ext(DefaultTokenDB) != ".db" {
		t.Errorf("DefaultTokenDB %q should be a .db file", DefaultTokenDB)
	}
}
