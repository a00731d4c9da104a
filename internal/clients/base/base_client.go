package baseclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/anonymousnfts/stake-reward-service/internal/observability/metrics"
	"github.com/anonymousnfts/stake-reward-service/internal/types"
)

var ALLOWED_METHODS = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}

type BaseClient interface {
	GetClientName() string
	GetBaseURL() string
	GetDefaultRequestTimeout() int
	GetHttpClient() *http.Client
}

type BaseClientOptions struct {
	Timeout int
	Path    string
	Headers map[string]string
	// Operation labels the latency metric, e.g. the JSON-RPC method. Defaults
	// to the HTTP method.
	Operation string
}

// IsUnavailable reports whether err means the remote service was not reached
// or did not answer in time, as opposed to answering with something invalid.
func IsUnavailable(err *types.Error) bool {
	if err == nil {
		return false
	}
	if err.ErrorCode == types.RequestTimeout {
		return true
	}
	switch err.StatusCode {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

func SendRequest[I any, R any](
	ctx context.Context, client BaseClient, method string, opts *BaseClientOptions, input *I,
) (*R, *types.Error) {
	operation := opts.Operation
	if operation == "" {
		operation = method
	}
	observe := metrics.StartClientRequestDurationTimer(client.GetClientName(), operation)

	output, err := sendRequest[I, R](ctx, client, method, opts, input)
	if err != nil {
		observe(metrics.Error)
		return nil, err
	}
	observe(metrics.Success)
	return output, nil
}

func sendRequest[I any, R any](
	ctx context.Context, client BaseClient, method string, opts *BaseClientOptions, input *I,
) (*R, *types.Error) {
	if !slices.Contains(ALLOWED_METHODS, method) {
		return nil, types.NewInternalServiceError(fmt.Errorf("method %s is not allowed", method))
	}
	url := fmt.Sprintf("%s%s", client.GetBaseURL(), opts.Path)
	timeout := client.GetDefaultRequestTimeout()
	// If timeout is set, use it instead of the default
	if opts.Timeout != 0 {
		timeout = opts.Timeout
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Millisecond)
	defer cancel()

	var body *bytes.Buffer
	if input != nil && (method == http.MethodPost || method == http.MethodPut) {
		raw, err := json.Marshal(input)
		if err != nil {
			return nil, types.NewInternalServiceError(fmt.Errorf("failed to marshal request body: %w", err))
		}
		body = bytes.NewBuffer(raw)
	}

	var (
		req        *http.Request
		requestErr error
	)
	if body != nil {
		req, requestErr = http.NewRequestWithContext(ctxWithTimeout, method, url, body)
	} else {
		req, requestErr = http.NewRequestWithContext(ctxWithTimeout, method, url, nil)
	}
	if requestErr != nil {
		return nil, types.NewInternalServiceError(requestErr)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.GetHttpClient().Do(req)
	if err != nil {
		if errors.Is(ctxWithTimeout.Err(), context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, types.NewErrorWithMsg(
				http.StatusRequestTimeout,
				types.RequestTimeout,
				fmt.Sprintf("request timeout after %d ms at %s", timeout, url),
			)
		}
		log.Ctx(ctx).Error().Err(err).Str("client", client.GetClientName()).Msgf("failed to send request to %s", url)
		return nil, types.NewError(
			http.StatusServiceUnavailable,
			types.InternalServiceError,
			fmt.Errorf("failed to send request to %s: %w", url, err),
		)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		// status relayed as-is, IsUnavailable classifies it
		return nil, types.NewErrorWithMsg(
			resp.StatusCode,
			types.InternalServiceError,
			fmt.Sprintf("internal server error when calling %s", url),
		)
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, types.NewErrorWithMsg(
			resp.StatusCode,
			types.BadRequest,
			fmt.Sprintf("client error when calling %s", url),
		)
	}

	var output R
	if err := json.NewDecoder(resp.Body).Decode(&output); err != nil {
		return nil, types.NewInternalServiceError(fmt.Errorf("failed to decode response from %s: %w", url, err))
	}

	return &output, nil
}
