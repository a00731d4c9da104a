package handlers

import (
	"net/http"

	"github.com/anonymousnfts/stake-reward-service/internal/types"
)

func (h *Handler) HealthCheck(request *http.Request) (*Result, *types.Error) {
	err := h.services.DoHealthCheck(request.Context())
	if err != nil {
		return nil, types.NewError(http.StatusServiceUnavailable, types.InternalServiceError, err)
	}

	return NewResult("Server is up and running"), nil
}
