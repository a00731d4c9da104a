package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/anonymousnfts/stake-reward-service/internal/config"
	"github.com/anonymousnfts/stake-reward-service/internal/services"
	"github.com/anonymousnfts/stake-reward-service/internal/types"
	"github.com/anonymousnfts/stake-reward-service/internal/utils"
)

type Handler struct {
	config   *config.Config
	services *services.Services
}

type paginationResponse struct {
	NextKey string `json:"next_key"`
}

type PublicResponse[T any] struct {
	Data       T                   `json:"data"`
	Pagination *paginationResponse `json:"pagination,omitempty"`
}

type Result struct {
	Data   interface{}
	Status int
}

// NewResultWithPagination returns a successful result, with default status code 200
func NewResultWithPagination[T any](data T, pageToken string) *Result {
	res := &PublicResponse[T]{Data: data, Pagination: &paginationResponse{NextKey: pageToken}}
	return &Result{Data: res, Status: http.StatusOK}
}

func NewResult[T any](data T) *Result {
	res := &PublicResponse[T]{Data: data}
	return &Result{Data: res, Status: http.StatusOK}
}

func New(
	ctx context.Context, cfg *config.Config, services *services.Services,
) (*Handler, error) {
	return &Handler{
		config:   cfg,
		services: services,
	}, nil
}

func parseXrplAddressQuery(request *http.Request, queryName string) (string, *types.Error) {
	address := request.URL.Query().Get(queryName)
	if address == "" {
		return "", types.NewValidationError(queryName + " is required")
	}
	if !utils.IsValidXrplAddress(address) {
		return "", types.NewValidationError("invalid " + queryName)
	}
	return address, nil
}

func decodePayload(request *http.Request, payload any) *types.Error {
	if err := json.NewDecoder(request.Body).Decode(payload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return types.NewErrorWithMsg(http.StatusRequestEntityTooLarge, types.BadRequest, "request payload too large")
		}
		return types.NewValidationError("invalid request payload")
	}
	return nil
}
