package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/anonymousnfts/stake-reward-service/internal/api/handlers"
	"github.com/anonymousnfts/stake-reward-service/internal/api/middlewares"
	"github.com/anonymousnfts/stake-reward-service/internal/config"
	"github.com/anonymousnfts/stake-reward-service/internal/services"
)

type Server struct {
	httpServer *http.Server
	handlers   *handlers.Handler
}

func New(
	ctx context.Context, cfg *config.Config, services *services.Services,
) (*Server, error) {
	r := chi.NewRouter()

	logLevel := zerolog.InfoLevel
	if cfg.Server.LogLevel != "" {
		parsed, err := zerolog.ParseLevel(cfg.Server.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("error while parsing log level: %w", err)
		}
		logLevel = parsed
	}
	zerolog.SetGlobalLevel(logLevel)

	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware(cfg))
	r.Use(middlewares.SecurityHeadersMiddleware())
	r.Use(middlewares.TracingMiddleware)
	r.Use(middlewares.LoggingMiddleware)
	r.Use(middlewares.ContentLengthMiddleware(cfg))

	srv := &http.Server{
		Addr:              cfg.Server.Address(),
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		Handler:           r,
	}

	handlers, err := handlers.New(ctx, cfg, services)
	if err != nil {
		return nil, fmt.Errorf("error while setting up handlers: %w", err)
	}

	server := &Server{
		httpServer: srv,
		handlers:   handlers,
	}
	server.SetupRoutes(r)
	return server, nil
}

// Handler exposes the routed handler chain, mainly for tests.
func (a *Server) Handler() http.Handler {
	return a.httpServer.Handler
}

func (a *Server) Start() error {
	log.Info().Msgf("Starting server on %s", a.httpServer.Addr)
	return a.httpServer.ListenAndServe()
}

func (a *Server) Shutdown(ctx context.Context) error {
	return a.httpServer.Shutdown(ctx)
}
