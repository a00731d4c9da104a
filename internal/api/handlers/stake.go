package handlers

import (
	"net/http"

	"github.com/anonymousnfts/stake-reward-service/internal/types"
	"github.com/anonymousnfts/stake-reward-service/internal/utils"
)

type RecordStakeRequestPayload struct {
	TransactionID string `json:"transaction_id"`
	Address       string `json:"address"`
	Amount        string `json:"amount"`
	OptionID      int    `json:"option_id"`
	// AssetEpoch is "current" (default) or "legacy".
	AssetEpoch string `json:"asset_epoch"`
}

func parseRecordStakeRequestPayload(request *http.Request) (*RecordStakeRequestPayload, types.AssetEpoch, *types.Error) {
	payload := &RecordStakeRequestPayload{}
	if err := decodePayload(request, payload); err != nil {
		return nil, "", err
	}
	if !utils.IsValidTxHash(payload.TransactionID) {
		return nil, "", types.NewValidationError("invalid transaction id")
	}
	if !utils.IsValidXrplAddress(payload.Address) {
		return nil, "", types.NewValidationError("invalid address")
	}
	if _, ok := utils.ParsePositiveAmount(payload.Amount); !ok {
		return nil, "", types.NewValidationError("invalid amount")
	}
	epoch, err := types.FromStringToAssetEpoch(payload.AssetEpoch)
	if err != nil {
		return nil, "", types.NewValidationError(err.Error())
	}
	return payload, epoch, nil
}

// GetStakeOptions lists the stake options offered to new stakes.
func (h *Handler) GetStakeOptions(request *http.Request) (*Result, *types.Error) {
	options, err := h.services.GetStakeOptions(request.Context())
	if err != nil {
		return nil, err
	}
	return NewResult(options), nil
}

// GetStakeLogs lists the stakes sent from an address, newest first.
func (h *Handler) GetStakeLogs(request *http.Request) (*Result, *types.Error) {
	address, err := parseXrplAddressQuery(request, "address")
	if err != nil {
		return nil, err
	}
	paginationKey := request.URL.Query().Get("pagination_key")

	stakes, newPaginationKey, err := h.services.GetStakesByAddress(request.Context(), address, paginationKey)
	if err != nil {
		return nil, err
	}
	return NewResultWithPagination(stakes, newPaginationKey), nil
}

// RecordStake registers a stake deposit once it is validated on the ledger.
func (h *Handler) RecordStake(request *http.Request) (*Result, *types.Error) {
	payload, epoch, err := parseRecordStakeRequestPayload(request)
	if err != nil {
		return nil, err
	}
	stake, err := h.services.RecordStake(
		request.Context(), payload.TransactionID, payload.Address, payload.Amount, payload.OptionID, epoch,
	)
	if err != nil {
		return nil, err
	}
	result := NewResult(stake)
	result.Status = http.StatusCreated
	return result, nil
}
