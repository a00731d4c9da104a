package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/rs/zerolog/log"

	"github.com/anonymousnfts/stake-reward-service/internal/api/handlers"
	"github.com/anonymousnfts/stake-reward-service/internal/observability/metrics"
	"github.com/anonymousnfts/stake-reward-service/internal/types"
)

const internalErrorMessage = "Internal service error"

type ErrorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
	// Field names the transaction attribute that failed verification.
	Field string `json:"field,omitempty"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

func newErrorResponse(err *types.Error) *ErrorResponse {
	resp := &ErrorResponse{
		ErrorCode: err.ErrorCode.String(),
		Message:   err.Err.Error(),
	}
	var mismatch *types.TransactionMismatchError
	if errors.As(err.Err, &mismatch) {
		resp.Field = mismatch.Field
	}
	return resp
}

// routeLabel keeps the metric label bounded by using the chi pattern rather
// than the raw path, which carries addresses and hashes.
func routeLabel(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

func registerHandler(handlerFunc func(*http.Request) (*handlers.Result, *types.Error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		observe := metrics.StartHttpRequestDurationTimer(routeLabel(r))
		result, err := handlerFunc(r)
		observe(writeResult(w, r, result, err))
	}
}

func writeResult(w http.ResponseWriter, r *http.Request, result *handlers.Result, err *types.Error) int {
	logger := log.Ctx(r.Context())

	if err != nil {
		if http.StatusText(err.StatusCode) == "" {
			logger.Error().Err(err).Int("status_code", err.StatusCode).Msg("invalid status code")
			err.StatusCode = http.StatusInternalServerError
		}
		resp := newErrorResponse(err)
		if err.StatusCode >= http.StatusInternalServerError {
			logger.Error().Err(err).Str("error_code", resp.ErrorCode).Msg("request failed with 5xx error")
			resp.Message = internalErrorMessage
		}
		writeResponse(w, r, err.StatusCode, resp)
		return err.StatusCode
	}

	if result == nil || http.StatusText(result.Status) == "" {
		logger.Error().Msg("handler returned neither a result nor an error")
		writeResponse(w, r, http.StatusInternalServerError, &ErrorResponse{
			ErrorCode: types.InternalServiceError.String(),
			Message:   internalErrorMessage,
		})
		return http.StatusInternalServerError
	}

	writeResponse(w, r, result.Status, result.Data)
	return result.Status
}

func writeResponse(w http.ResponseWriter, r *http.Request, statusCode int, res any) {
	respBytes, err := json.Marshal(res)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to marshal response")
		http.Error(w, "Failed to process the request. Please try again later.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(respBytes) // nolint:errcheck
}
