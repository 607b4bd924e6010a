package validate

import (
	"strings"
	"testing"
	"time"
)

func TestParseBindAddress(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectError  bool
		expectedIP   string
		expectedPort int
	}{
		{"valid IPv4 address", "192.168.1.1:8080", false, "192.168.1.1", 8080},
		{"valid localhost", "127.0.0.1:3000", false, "127.0.0.1", 3000},
		{"valid any address", "0.0.0.0:9000", false, "0.0.0.0", 9000},
		{"empty address", "", true, "", 0},
		{"missing port", "192.168.1.1", true, "", 0},
		{"hostname instead of IP", "localhost:8080", true, "", 0},
		{"non-numeric port", "127.0.0.1:http", true, "", 0},
		{"port out of range", "127.0.0.1:70000", true, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := ParseBindAddress(tt.input)
			if tt.expectError {
				if err == nil {
					t.Errorf("ParseBindAddress(%q) expected error, got %v", tt.input, addr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBindAddress(%q) unexpected error: %v", tt.input, err)
			}
			if addr.Host != tt.expectedIP || addr.Port != tt.expectedPort {
				t.Errorf("ParseBindAddress(%q) = %s:%d, want %s:%d",
					tt.input, addr.Host, addr.Port, tt.expectedIP, tt.expectedPort)
			}
			if addr.String() != tt.input {
				t.Errorf("String() = %q, want %q", addr.String(), tt.input)
			}
		})
	}
}

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
	}{
		{"production api", "https://sakaton.vercel.app/api", false},
		{"local dev backend", "http://127.0.0.1:3000/api", false},
		{"empty", "", true},
		{"no scheme", "sakaton.vercel.app/api", true},
		{"ftp scheme", "ftp://example.com/api", true},
		{"query string", "https://example.com/api?x=1", true},
		{"fragment", "https://example.com/api#top", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBaseURL(tt.input)
			if tt.expectError && err == nil {
				t.Errorf("ValidateBaseURL(%q) expected error", tt.input)
			}
			if !tt.expectError && err != nil {
				t.Errorf("ValidateBaseURL(%q) unexpected error: %v", tt.input, err)
			}
		})
	}
}

func TestIdentifierFormat(t *testing.T) {
	tests := []struct {
		id          string
		expectError bool
	}{
		{"task_01", false},
		{"Zx9-abc", false},
		{"", true},
		{"has space", true},
		{"semi;colon", true},
		{strings.Repeat("a", 129), true},
		{strings.Repeat("a", 128), false},
	}

	for _, tt := range tests {
		err := IdentifierFormat("task id", tt.id)
		if tt.expectError && err == nil {
			t.Errorf("IdentifierFormat(%q) expected error", tt.id)
		}
		if !tt.expectError && err != nil {
			t.Errorf("IdentifierFormat(%q) unexpected error: %v", tt.id, err)
		}
	}
}

func TestValidateStruct(t *testing.T) {
	type sample struct {
		Limit int    `validate:"min=1,max=10"`
		Name  string `validate:"required"`
	}

	if err := ValidateStruct(sample{Limit: 5, Name: "ok"}); err != nil {
		t.Errorf("ValidateStruct(valid) error = %v", err)
	}

	err := ValidateStruct(sample{Limit: 0})
	if err == nil {
		t.Fatal("ValidateStruct(invalid) expected error")
	}
	if !strings.Contains(err.Error(), "Limit must satisfy min=1") {
		t.Errorf("error %q should describe the Limit rule", err)
	}
	if !strings.Contains(err.Error(), "Name failed required validation") {
		t.Errorf("error %q should describe the Name rule", err)
	}
}

func TestSimpleValidators(t *testing.T) {
	if err := ValidatePortRange(0); err == nil {
		t.Error("ValidatePortRange(0) expected error")
	}
	if err := ValidatePortRange(8008); err != nil {
		t.Errorf("ValidatePortRange(8008) error = %v", err)
	}
	if err := ValidateRequiredString("", "secret"); err == nil || err.Error() != "secret cannot be empty" {
		t.Errorf("ValidateRequiredString(\"\") = %v", err)
	}
	if err := ValidatePositiveTimeout(0, "timeout"); err == nil {
		t.Error("ValidatePositiveTimeout(0) expected error")
	}
	if err := ValidatePositiveTimeout(time.Second, "timeout"); err != nil {
		t.Errorf("ValidatePositiveTimeout(1s) error = %v", err)
	}
}
