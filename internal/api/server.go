package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/concave-dev/sakaton/internal/api/handlers"
	"github.com/concave-dev/sakaton/internal/logging"
	"github.com/gin-gonic/gin"
)

// Represents the dev backend server
type Server struct {
	config     *Config
	store      handlers.Store
	router     *gin.Engine
	httpServer *http.Server
	listener   net.Listener
	startTime  time.Time
}

// NewServerWithListener creates a server that will serve on a pre-bound
// listener. The server takes ownership of the listener.
func NewServerWithListener(config *Config, listener net.Listener, store handlers.Store) (*Server, error) {
	if config == nil {
		return nil, errors.New("api config cannot be nil")
	}
	if listener == nil {
		return nil, errors.New("listener cannot be nil")
	}
	if store == nil {
		return nil, errors.New("store cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Set Gin to release mode unless a test already chose a mode
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config:    config,
		store:     store,
		listener:  listener,
		startTime: time.Now(),
	}
	s.router = s.newRouter()
	return s, nil
}

// newRouter builds the gin engine with middleware and routes.
func (s *Server) newRouter() *gin.Engine {
	router := gin.New()

	// Configure Gin logging only if not already configured by CLI tools
	if !logging.IsConfiguredByCLI() {
		gin.DefaultWriter = logging.NewLevelWriter("INFO", "gin")
		gin.DefaultErrorWriter = logging.NewLevelWriter("ERROR", "gin")
	}

	router.Use(s.loggingMiddleware())
	router.Use(s.corsMiddleware())
	router.Use(gin.Recovery())

	s.setupRoutes(router)
	return router
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Start begins serving in the background.
func (s *Server) Start() error {
	if s.httpServer != nil {
		return fmt.Errorf("server already started")
	}

	s.httpServer = &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logging.Info("Starting dev backend on %s", s.Addr())

	go func() {
		if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("HTTP server failed: %v", err)
		}
	}()

	logging.Success("Dev backend started successfully")
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down dev backend...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return s.listener.Close()
}
