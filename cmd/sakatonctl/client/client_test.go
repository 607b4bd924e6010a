package client

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/concave-dev/sakaton/cmd/sakatonctl/config"
)

func TestTokenDBPath(t *testing.T) {
	saved := config.Global
	t.Cleanup(func() { config.Global = saved })

	config.Global.TokenDB = "/tmp/explicit.db"
	if got, err := TokenDBPath(); err != nil || got != "/tmp/explicit.db" {
		t.Errorf("TokenDBPath() = %q, %v", got, err)
	}

	config.Global.TokenDB = ""
	t.Setenv("HOME", t.TempDir())
	got, err := TokenDBPath()
	if err != nil {
		t.Fatalf("TokenDBPath() error = %v", err)
	}
	if !strings.HasSuffix(got, filepath.Join(".sakaton", "session.db")) {
		t.Errorf("TokenDBPath() = %q, want a path under ~/.sakaton", got)
	}
}

func TestOpenTokenStore(t *testing.T) {
	saved := config.Global
	t.Cleanup(func() { config.Global = saved })
	config.Global.TokenDB = filepath.Join(t.TempDir(), "nested", "session.db")

	store, err := OpenTokenStore()
	if err != nil {
		t.Fatalf("OpenTokenStore() error = %v", err)
	}
	defer store.Close()

	if err := store.SetToken(context.Background(), "abc"); err != nil {
		t.Fatalf("SetToken() error = %v", err)
	}
	if got, err := store.Token(context.Background()); err != nil || got != "abc" {
		t.Errorf("Token() = %q, %v", got, err)
	}
}

func TestCreateAPIClient(t *testing.T) {
	saved := config.Global
	t.Cleanup(func() { config.Global = saved })
	config.Global.APIAddr = "http://127.0.0.1:3000/api"
	config.Global.Timeout = 3

	c := CreateAPIClient()
	if c.BaseURL() != "http://127.0.0.1:3000/api" {
		t.Errorf("BaseURL() = %q", c.BaseURL())
	}
}
