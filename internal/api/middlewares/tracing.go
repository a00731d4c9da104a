package middlewares

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/anonymousnfts/stake-reward-service/internal/observability/tracing"
)

const requestIdHeader = "X-Request-Id"

// TracingMiddleware reuses a caller supplied request id when it is a UUID and
// echoes the id back on the response.
func TracingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceId := r.Header.Get(requestIdHeader)
		if _, err := uuid.Parse(traceId); err != nil {
			traceId = ""
		}
		ctx := tracing.AttachTracingIntoContext(r.Context(), traceId)
		w.Header().Set(requestIdHeader, tracing.TraceIdFromContext(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
