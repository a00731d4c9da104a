package tracing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type TracingContextKey string

const (
	TracingInfoKey = TracingContextKey("requestTracingInfo")
	TraceIdKey     = TracingContextKey("requestTraceId")
)

type SpanDetail struct {
	Name     string
	Duration int64
}

// TracingInfo collects the spans of one request. It is not safe for
// concurrent use; spans are recorded from the request goroutine.
type TracingInfo struct {
	SpanDetails []SpanDetail
}

// AttachTracingIntoContext starts the tracing of one request. An empty
// traceId is replaced by a fresh one.
func AttachTracingIntoContext(ctx context.Context, traceId string) context.Context {
	if traceId == "" {
		traceId = uuid.NewString()
	}
	ctx = context.WithValue(ctx, TraceIdKey, traceId)
	return context.WithValue(ctx, TracingInfoKey, &TracingInfo{})
}

func TraceIdFromContext(ctx context.Context) string {
	id, _ := ctx.Value(TraceIdKey).(string)
	return id
}

func TracingInfoFromContext(ctx context.Context) *TracingInfo {
	info, _ := ctx.Value(TracingInfoKey).(*TracingInfo)
	return info
}

// WrapWithSpan times next and records it on the request's TracingInfo, if
// any. Jobs run without one and are only timed by their own metrics.
func WrapWithSpan[Result any](ctx context.Context, name string, next func() (Result, error)) (Result, error) {
	info := TracingInfoFromContext(ctx)
	if info == nil {
		log.Ctx(ctx).Debug().Str("span", name).Msg("no tracing info in context")
		return next()
	}

	startTime := time.Now()
	defer func() {
		info.SpanDetails = append(info.SpanDetails, SpanDetail{
			Name:     name,
			Duration: time.Since(startTime).Milliseconds(),
		})
	}()
	return next()
}
