package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rs/zerolog/log"
)

const defaultMaxUploadMB = 16

// Dependencies are the services and adapters the HTTP layer is built on.
type Dependencies struct {
	Identity   IdentityService
	Content    ContentService
	Engagement EngagementService
	Site       SiteService
	Sessions   *auth.Sessions
	Users      UserLookup
	Assets     AssetReader
	Health     HealthChecker
}

// Server is the HTTP listener plus the time it was built, reported by /healthz.
type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(c map[string]string, deps Dependencies) (Server, error) {
	if deps.Sessions == nil {
		return Server{}, fmt.Errorf("api: session manager is required")
	}

	startupTime := time.Now()
	timeout := func(key string) time.Duration {
		return time.Duration(config.GetInt(c, key, 180)) * time.Second
	}

	// All interfaces.
	server := &http.Server{
		Addr:         net.JoinHostPort("0.0.0.0", config.GetString(c, "PORT", "8080")),
		Handler:      newRouter(deps, withConfig(c), withStartupTime(startupTime)),
		ReadTimeout:  timeout("READ_TIMEOUT_SECONDS"),
		WriteTimeout: timeout("WRITE_TIMEOUT_SECONDS"),
		IdleTimeout:  timeout("IDLE_TIMEOUT_SECONDS"),
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(deps Dependencies, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}
	if router.startupTime.IsZero() {
		router.startupTime = time.Now()
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(RequestID)
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(HTTPLoggingMiddleware)

	acceptedOrigins := config.GetList(router.config, "ACCEPTED_ORIGINS")
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(corsMiddleware(acceptedOrigins))

	maxUploadMB := config.GetInt(router.config, "MAX_UPLOAD_MB", defaultMaxUploadMB)
	chiRouter.Use(limitBody(int64(maxUploadMB) << 20))
	chiRouter.Use(rejectInvalidText)

	handlers := initializeHandlers(deps, router)

	authMiddleware := newAuthMiddleware(deps.Sessions, deps.Users)
	chiRouter.Use(authMiddleware.resolveActor)

	setupPublicRoutes(chiRouter, handlers)
	setupUserRoutes(chiRouter, handlers, authMiddleware)
	setupAdminRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefulCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefulCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
