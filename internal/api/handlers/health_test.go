package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// TestHandleHealth tests the health handler response
func TestHandleHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	version := "1.0.0"
	startTime := time.Now().Add(-30 * time.Minute)

	router := gin.New()
	router.GET("/health", HandleHealth(version, startTime))

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("HandleHealth() status = %d, want %d", w.Code, http.StatusOK)
	}

	var response HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.Status != "healthy" {
		t.Errorf("HandleHealth() status = %q, want \"healthy\"", response.Status)
	}
	if response.Version != version {
		t.Errorf("HandleHealth() version = %q, want %q", response.Version, version)
	}
	if time.Since(response.Timestamp) > 5*time.Second {
		t.Error("HandleHealth() timestamp is not recent")
	}
	if response.Uptime == "" {
		t.Error("HandleHealth() uptime is empty")
	}
}

func TestHandleHealthRuntime(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/health", HandleHealth("1.0.0", time.Now()))

	tests := []struct {
		query       string
		wantRuntime bool
	}{
		{"", false},
		{"?runtime=false", false},
		{"?runtime=true", true},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/health"+tt.query, nil))

		var response HealthResponse
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		if (response.Runtime != nil) != tt.wantRuntime {
			t.Errorf("GET /health%s runtime = %+v, want present=%v", tt.query, response.Runtime, tt.wantRuntime)
		}
		if tt.wantRuntime && response.Runtime.GoRoutines < 1 {
			t.Errorf("GET /health%s goroutines = %d", tt.query, response.Runtime.GoRoutines)
		}
	}
}
