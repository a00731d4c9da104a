package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/anonymousnfts/stake-reward-service/internal/db"
	"github.com/anonymousnfts/stake-reward-service/internal/db/model"
	"github.com/anonymousnfts/stake-reward-service/internal/types"
)

type StakeOptionPublic struct {
	ID               int    `json:"id"`
	DurationMonths   int    `json:"duration_months"`
	RewardPercentage string `json:"reward_percentage"`
}

type StakePublic struct {
	TransactionID       string     `json:"transaction_id"`
	FromAddress         string     `json:"from_address"`
	Amount              string     `json:"amount"`
	AssetEpoch          string     `json:"asset_epoch"`
	OptionID            int        `json:"option_id"`
	DurationMonths      int        `json:"duration_months"`
	RewardPercentage    string     `json:"reward_percentage"`
	CreatedAt           time.Time  `json:"created_at"`
	MaturesAt           time.Time  `json:"matures_at"`
	Status              string     `json:"status"`
	RewardTransactionID string     `json:"reward_transaction_id,omitempty"`
	RewardAmount        string     `json:"reward_amount,omitempty"`
	RewardedAt          *time.Time `json:"rewarded_at,omitempty"`
}

func (s *Services) fromStakeDocument(d *model.StakeDocument) StakePublic {
	return StakePublic{
		TransactionID:       d.TransactionID,
		FromAddress:         d.FromAddress,
		Amount:              d.Amount,
		AssetEpoch:          d.AssetEpoch,
		OptionID:            d.OptionID,
		DurationMonths:      d.DurationMonths,
		RewardPercentage:    d.RewardPercentage,
		CreatedAt:           d.CreatedAt,
		MaturesAt:           MaturityOf(d, s.location()),
		Status:              d.Status,
		RewardTransactionID: d.RewardTransactionID,
		RewardAmount:        d.RewardAmount,
		RewardedAt:          d.RewardedAt,
	}
}

// GetStakeOptions lists the options offered to new stakes.
func (s *Services) GetStakeOptions(ctx context.Context) ([]StakeOptionPublic, *types.Error) {
	options, err := s.DbClient.FindStakeOptions(ctx, true)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to find stake options")
		return nil, types.NewInternalServiceError(err)
	}
	result := make([]StakeOptionPublic, 0, len(options))
	for _, o := range options {
		result = append(result, StakeOptionPublic{
			ID:               o.ID,
			DurationMonths:   o.DurationMonths,
			RewardPercentage: o.RewardPercentage,
		})
	}
	return result, nil
}

func (s *Services) GetStakesByAddress(
	ctx context.Context, address string, pageToken string,
) ([]StakePublic, string, *types.Error) {
	resultMap, err := s.DbClient.FindStakesByAddress(ctx, address, pageToken)
	if err != nil {
		if db.IsInvalidPaginationTokenError(err) {
			log.Ctx(ctx).Warn().Err(err).Msg("Invalid pagination token when fetching stakes by address")
			return nil, "", types.NewError(http.StatusBadRequest, types.BadRequest, err)
		}
		log.Ctx(ctx).Error().Err(err).Msg("Failed to find stakes by address")
		return nil, "", types.NewInternalServiceError(err)
	}
	stakes := make([]StakePublic, 0, len(resultMap.Data))
	for i := range resultMap.Data {
		stakes = append(stakes, s.fromStakeDocument(&resultMap.Data[i]))
	}
	return stakes, resultMap.PaginationToken, nil
}

// RecordStake verifies a stake deposit on the ledger and records it as
// pending. The option terms are captured on the stake so later edits of the
// option never change its reward.
func (s *Services) RecordStake(
	ctx context.Context, txHash, fromAddress, amount string, optionID int, epoch types.AssetEpoch,
) (*StakePublic, *types.Error) {
	// 1. the option must exist; hidden options still honor existing clients
	option, err := s.DbClient.FindStakeOptionByID(ctx, optionID)
	if err != nil {
		if db.IsNotFoundError(err) {
			return nil, types.NewValidationError(fmt.Sprintf("unknown stake option %d", optionID))
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to find stake option")
		return nil, types.NewInternalServiceError(err)
	}

	// 2. the deposit must be on the ledger exactly as claimed
	tx, vErr := s.ValidateStakeTransaction(ctx, txHash, fromAddress, amount, epoch)
	if vErr != nil {
		return nil, vErr
	}

	// 3. record it once
	stake := &model.StakeDocument{
		TransactionID:    tx.Hash,
		FromAddress:      tx.Account,
		ToAddress:        tx.Destination,
		Amount:           tx.DeliveredAmount.Value,
		AssetEpoch:       epoch.ToString(),
		OptionID:         option.ID,
		DurationMonths:   option.DurationMonths,
		RewardPercentage: option.RewardPercentage,
		CreatedAt:        tx.CloseTime.UTC(),
		Status:           types.StakePending.ToString(),
	}
	if stake.CreatedAt.IsZero() {
		stake.CreatedAt = s.Clock.Now().UTC()
	}
	if err := s.DbClient.SaveStake(ctx, stake); err != nil {
		if db.IsDuplicateKeyError(err) {
			log.Ctx(ctx).Warn().Err(err).Str("txHash", stake.TransactionID).Msg("stake already recorded")
			return nil, types.NewError(http.StatusForbidden, types.Forbidden, err)
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to save stake")
		return nil, types.NewPersistenceError(err)
	}
	log.Ctx(ctx).Info().Str("txHash", stake.TransactionID).Str("address", stake.FromAddress).
		Str("amount", stake.Amount).Int("option", stake.OptionID).Msg("stake recorded")

	public := s.fromStakeDocument(stake)
	return &public, nil
}
