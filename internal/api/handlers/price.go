package handlers

import (
	"net/http"

	"github.com/anonymousnfts/stake-reward-service/internal/types"
)

func (h *Handler) GetTokenPrice(request *http.Request) (*Result, *types.Error) {
	price, err := h.services.GetTokenPrice(request.Context())
	if err != nil {
		return nil, err
	}
	return NewResult(price), nil
}
