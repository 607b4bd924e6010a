package clicker

import (
	"testing"
	"time"

	"github.com/concave-dev/sakaton/internal/integrity"
)

func TestConfigApplyEnv(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		wantSecret string
		wantMax    int
		wantBatch  int
	}{
		{"defaults", nil, integrity.DefaultSecret, 8, 20},
		{"all overrides", map[string]string{
			EnvSecret: "s3cret", EnvMaxClicksPerSecond: "12", EnvClicksPerRequest: "50",
		}, "s3cret", 12, 50},
		{"malformed numbers ignored", map[string]string{
			EnvMaxClicksPerSecond: "fast", EnvClicksPerRequest: "",
		}, integrity.DefaultSecret, 8, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{EnvSecret, EnvMaxClicksPerSecond, EnvClicksPerRequest} {
				t.Setenv(key, tt.env[key])
			}

			cfg := DefaultConfig()
			cfg.ApplyEnv()

			if cfg.Secret != tt.wantSecret {
				t.Errorf("Secret = %q, want %q", cfg.Secret, tt.wantSecret)
			}
			if cfg.MaxClicksPerSecond != tt.wantMax {
				t.Errorf("MaxClicksPerSecond = %d, want %d", cfg.MaxClicksPerSecond, tt.wantMax)
			}
			if cfg.ClicksPerRequest != tt.wantBatch {
				t.Errorf("ClicksPerRequest = %d, want %d", cfg.ClicksPerRequest, tt.wantBatch)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"empty secret", func(c *Config) { c.Secret = "" }, true},
		{"zero ceiling", func(c *Config) { c.MaxClicksPerSecond = 0 }, true},
		{"zero batch", func(c *Config) { c.ClicksPerRequest = 0 }, true},
		{"negative retry", func(c *Config) { c.RetryIntervalMs = -1 }, true},
		{"retry enabled", func(c *Config) { c.RetryIntervalMs = 5000 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigDurations(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.GetWindow() != time.Second {
		t.Errorf("GetWindow() = %v", cfg.GetWindow())
	}
	if cfg.GetSubmitTimeout() != 10*time.Second {
		t.Errorf("GetSubmitTimeout() = %v", cfg.GetSubmitTimeout())
	}
	if cfg.GetRetryInterval() != 0 {
		t.Errorf("GetRetryInterval() = %v, want disabled", cfg.GetRetryInterval())
	}
}
