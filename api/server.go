package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpupo63/blogicum-backend/auth"
	"github.com/rpupo63/blogicum-backend/config"
	"github.com/rpupo63/blogicum-backend/database"
	"github.com/rpupo63/blogicum-backend/services"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(cfg config.Config, db database.Database, opts ...Option) (Server, error) {
	if cfg.JWTSecret == "" {
		return Server{}, errors.New("a session signing secret is required")
	}

	address := fmt.Sprintf("0.0.0.0:%s", cfg.Port)
	startupTime := time.Now()

	opts = append([]Option{withStartupTime(startupTime)}, opts...)
	handler := newRouter(cfg, db, opts...)

	server := &http.Server{
		Addr:         address,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return Server{server, startupTime}, nil
}

// Option configures the router built by NewServer.
type Option func(*router)

type router struct {
	startupTime time.Time
	pinger      pinger
	services    []services.Option
}

func withStartupTime(startupTime time.Time) Option {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

// WithPinger lets /health check the database connection.
func WithPinger(p pinger) Option {
	return func(r *router) {
		r.pinger = p
	}
}

// WithServiceOptions forwards options such as a fixed clock to the services.
func WithServiceOptions(opts ...services.Option) Option {
	return func(r *router) {
		r.services = append(r.services, opts...)
	}
}

func newRouter(cfg config.Config, db database.Database, opts ...Option) *chi.Mux {
	router := router{startupTime: time.Now()}
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(middleware.RequestID)
	chiRouter.Use(middleware.RealIP)
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(middleware.StripSlashes)

	chiRouter.Use(CORSCheckMiddleware(cfg.AcceptedOrigins))
	chiRouter.Use(corsMiddleware(cfg.AcceptedOrigins))

	provider := auth.NewProvider(db.Users(), auth.Settings{
		Secret:         cfg.JWTSecret,
		TTL:            cfg.SessionTTL,
		AdminUsernames: cfg.AdminUsernames,
		BcryptCost:     cfg.BcryptCost,
	})
	serviceOpts := append([]services.Option{services.WithReservedUsernames(cfg.AdminUsernames)}, router.services...)
	svc := services.New(db, serviceOpts...)
	handlers := initializeHandlers(svc, provider, cfg, router.pinger, &router)

	authMiddleware := newAuthMiddleware(provider, cfg.SessionCookie)
	limiter := newLoginLimiter(cfg.LoginPerMinute)

	setupRoutes(chiRouter, handlers, authMiddleware, limiter)

	return chiRouter
}

// Start serves until the server is shut down. A graceful shutdown is not an error.
func (s Server) Start() error {
	log.Info().Msgf("Server started on: %s", s.Addr)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
