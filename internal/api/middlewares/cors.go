package middlewares

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/anonymousnfts/stake-reward-service/internal/config"
)

const corsMaxAge = 300

func CorsMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIdHeader},
		ExposedHeaders: []string{requestIdHeader},
		MaxAge:         corsMaxAge,
	})
	return c.Handler
}
