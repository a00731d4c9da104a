package middlewares

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/rs/zerolog/log"

	"github.com/anonymousnfts/stake-reward-service/internal/observability/tracing"
)

// LoggingMiddleware puts a request scoped logger on the context, so that
// log.Ctx in handlers and services carries the trace id.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()
		logCtx := log.With().Str("method", r.Method).Str("path", r.URL.Path)
		if traceId := tracing.TraceIdFromContext(r.Context()); traceId != "" {
			logCtx = logCtx.Str("traceId", traceId)
		}
		logger := logCtx.Logger()

		logger.Debug().Msg("request received")
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		r = r.WithContext(logger.WithContext(r.Context()))

		next.ServeHTTP(ww, r)

		event := logger.Info()
		if ww.Status() >= http.StatusInternalServerError {
			event = logger.Warn()
		}
		if info := tracing.TracingInfoFromContext(r.Context()); info != nil && len(info.SpanDetails) > 0 {
			event = event.Interface("tracingInfo", info)
		}
		event.Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Int64("requestDuration", time.Since(startTime).Milliseconds()).
			Msg("request completed")
	})
}
