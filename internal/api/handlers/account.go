package handlers

import (
	"net/http"

	"github.com/anonymousnfts/stake-reward-service/internal/types"
	"github.com/anonymousnfts/stake-reward-service/internal/utils"
)

type VerifyPrimaryRequestPayload struct {
	Address string `json:"address"`
}

type VerifySecondaryRequestPayload struct {
	Address string `json:"address"`
	// PrimaryAddress is required the first time a secondary address is verified.
	PrimaryAddress string `json:"primary_address"`
}

func (h *Handler) GetAccountScore(request *http.Request) (*Result, *types.Error) {
	address := request.URL.Query().Get("address")
	if address == "" {
		return nil, types.NewValidationError("address is required")
	}
	family, err := types.FromStringToCollectibleFamily(request.URL.Query().Get("family"))
	if err != nil {
		return nil, types.NewValidationError(err.Error())
	}

	score, scoreErr := h.services.GetAccountScore(request.Context(), address, family)
	if scoreErr != nil {
		return nil, scoreErr
	}
	return NewResult(score), nil
}

func (h *Handler) VerifyPrimaryAccount(request *http.Request) (*Result, *types.Error) {
	payload := &VerifyPrimaryRequestPayload{}
	if err := decodePayload(request, payload); err != nil {
		return nil, err
	}
	if !utils.IsValidXrplAddress(payload.Address) {
		return nil, types.NewValidationError("invalid address")
	}

	result, err := h.services.VerifyPrimaryAccount(request.Context(), payload.Address)
	if err != nil {
		return nil, err
	}
	return NewResult(result), nil
}

func (h *Handler) VerifySecondaryAccount(request *http.Request) (*Result, *types.Error) {
	payload := &VerifySecondaryRequestPayload{}
	if err := decodePayload(request, payload); err != nil {
		return nil, err
	}
	if !utils.IsValidEvmAddress(payload.Address) {
		return nil, types.NewValidationError("invalid address")
	}
	if payload.PrimaryAddress != "" && !utils.IsValidXrplAddress(payload.PrimaryAddress) {
		return nil, types.NewValidationError("invalid primary_address")
	}

	result, err := h.services.VerifySecondaryAccount(request.Context(), payload.Address, payload.PrimaryAddress)
	if err != nil {
		return nil, err
	}
	return NewResult(result), nil
}

func (h *Handler) GetAccountBalance(request *http.Request) (*Result, *types.Error) {
	address, err := parseXrplAddressQuery(request, "address")
	if err != nil {
		return nil, err
	}
	balance, err := h.services.GetAccountBalance(request.Context(), address)
	if err != nil {
		return nil, err
	}
	return NewResult(balance), nil
}
