package api

import (
	"github.com/concave-dev/sakaton/internal/api/handlers"
	"github.com/concave-dev/sakaton/internal/backend"
	"github.com/gin-gonic/gin"
)

// Configures all API routes
func (s *Server) setupRoutes(router *gin.Engine) {
	api := router.Group("/api")

	// Public endpoints
	api.GET("/health", handlers.HandleHealth(s.config.Version, s.startTime))
	api.POST(backend.PathAuthenticate, handlers.HandleAuthenticate(s.store))
	api.GET(backend.PathGetRanking, handlers.HandleGetRanking(s.store))

	// Endpoints requiring a session token
	authed := api.Group("", s.authMiddleware())
	{
		authed.POST(backend.PathClick, handlers.HandleClick(s.store, handlers.ClickConfig{
			Secret:    s.config.Secret,
			Tolerance: s.config.ClickTolerance,
			Credit:    int64(s.config.ClicksPerRequest),
		}))
		authed.GET(backend.PathGetUser, handlers.HandleGetUser(s.store))
		authed.GET(backend.PathGetPoints, handlers.HandleGetPoints(s.store))
		authed.GET(backend.PathTasks, handlers.HandleGetTasks(s.store))
		authed.POST(backend.PathStartTask, handlers.HandleStartTask(s.store))
		authed.POST(backend.PathClaimTask, handlers.HandleClaimTask(s.store))
	}
}
