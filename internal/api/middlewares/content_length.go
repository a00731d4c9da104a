package middlewares

import (
	"net/http"

	"github.com/anonymousnfts/stake-reward-service/internal/config"
)

// ContentLengthMiddleware rejects bodies that declare a size over the limit
// and caps the rest, so chunked uploads cannot bypass it.
func ContentLengthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	limit := cfg.Server.MaxContentLength
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
