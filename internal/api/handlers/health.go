package handlers

import (
	"net/http"
	"time"

	"github.com/concave-dev/sakaton/internal/resources"
	"github.com/gin-gonic/gin"
)

// Represents the health check response
type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Version   string           `json:"version"`
	Uptime    string           `json:"uptime"`
	Runtime   *resources.Stats `json:"runtime,omitempty"`
}

// HandleHealth returns the health status of the dev backend. Runtime stats are
// included when the request asks for them with ?runtime=true.
func HandleHealth(version string, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now(),
			Version:   version,
			Uptime:    time.Since(startTime).Truncate(time.Second).String(),
		}
		if c.Query("runtime") == "true" {
			resp.Runtime = resources.Gather(startTime)
		}
		c.JSON(http.StatusOK, resp)
	}
}
