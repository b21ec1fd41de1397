package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/inkwell-blog/inkwell-api/auth"
	"github.com/inkwell-blog/inkwell-api/config"
	"github.com/inkwell-blog/inkwell-api/database"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(cfg config.Config, database database.Database, provider auth.Provider) (Server, error) {
	// Capture startup time
	startupTime := time.Now()

	router := newRouter(database, provider, withConfig(cfg), withStartupTime(startupTime))

	server := &http.Server{
		Addr:         cfg.Address(), // Bind to 0.0.0.0 for external access
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout(),  // Timeout for reading the entire request
		WriteTimeout: cfg.WriteTimeout(), // Timeout for writing the response
		IdleTimeout:  cfg.IdleTimeout(),  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      config.Config
	startupTime time.Time
}

func withConfig(c config.Config) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(database database.Database, provider auth.Provider, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}
	if router.startupTime.IsZero() {
		router.startupTime = time.Now()
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(chimiddleware.RequestID)
	chiRouter.Use(chimiddleware.RealIP)
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(HTTPLoggingMiddleware(log.Logger))
	chiRouter.Use(corsMiddleware(router.config.AcceptedOrigins))
	chiRouter.Use(securityHeaders(!router.config.IsDevelopment()))

	// Initialize all handlers
	handlers := initializeHandlers(database, router.startupTime)

	// Initialize auth middleware
	authMiddleware := newAuthMiddleware(provider)

	limiters := routeLimiters{
		comments:      newRateLimiter(router.config.RateLimitRPS, router.config.RateLimitBurst),
		usernameCheck: newRateLimiter(router.config.UsernameCheckRPS, router.config.UsernameCheckBurst),
	}

	setupRoutes(chiRouter, handlers, authMiddleware, limiters)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Dur("uptime", time.Since(s.startupTime)).Msg("HttpServer gracefully shut down")
	}
}
