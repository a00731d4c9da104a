package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/anonymousnfts/stake-reward-service/internal/clients/xrpl"
	"github.com/anonymousnfts/stake-reward-service/internal/db/model"
	"github.com/anonymousnfts/stake-reward-service/internal/observability/metrics"
	"github.com/anonymousnfts/stake-reward-service/internal/types"
	"github.com/anonymousnfts/stake-reward-service/internal/utils"
)

const (
	payoutKindStake        = "stake"
	payoutKindDistribution = "distribution"

	payoutOutcomePaid       = "paid"
	payoutOutcomeFailed     = "failed"
	payoutOutcomeUnresolved = "unresolved"
)

type SweepSummary struct {
	Checked          int `json:"checked"`
	NotMatured       int `json:"not_matured"`
	MissingTrustLine int `json:"missing_trust_line"`
	Paid             int `json:"paid"`
	Failed           int `json:"failed"`
	// Unresolved payouts may still land on the ledger. They are reconciled on
	// the next sweep.
	Unresolved int `json:"unresolved"`
}

// RunMaturitySweep pays every pending stake whose term has elapsed and whose
// sender can receive the reward token. A failure on one stake never stops the
// sweep.
func (s *Services) RunMaturitySweep(ctx context.Context) (*SweepSummary, *types.Error) {
	stakes, err := s.DbClient.FindPendingStakes(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to load pending stakes")
		return nil, types.NewPersistenceError(err)
	}

	summary := &SweepSummary{}
	now := s.now()
	for i := range stakes {
		stake := &stakes[i]
		summary.Checked++

		if !s.isMatured(stake, now) {
			summary.NotMatured++
			continue
		}

		logger := log.Ctx(ctx).With().Str("stake", stake.TransactionID).Str("address", stake.FromAddress).Logger()

		hasLine, lErr := s.hasRewardTrustLine(ctx, stake.FromAddress)
		if lErr != nil {
			logger.Warn().Err(lErr).Msg("failed to check trust line, will retry next sweep")
			summary.Failed++
			metrics.RecordPayout(payoutKindStake, payoutOutcomeFailed)
			continue
		}
		if !hasLine {
			logger.Debug().Msg("matured stake has no trust line for the reward token")
			summary.MissingTrustLine++
			continue
		}

		if _, pErr := s.PayStake(logger.WithContext(ctx), stake); pErr != nil {
			if types.IsAmbiguousPayout(pErr) {
				logger.Warn().Err(pErr).Msg("stake payout unresolved")
				summary.Unresolved++
				metrics.RecordPayout(payoutKindStake, payoutOutcomeUnresolved)
			} else {
				logger.Error().Err(pErr).Msg("stake payout failed")
				summary.Failed++
				metrics.RecordPayout(payoutKindStake, payoutOutcomeFailed)
			}
			continue
		}
		summary.Paid++
		metrics.RecordPayout(payoutKindStake, payoutOutcomePaid)
	}

	log.Ctx(ctx).Info().
		Int("checked", summary.Checked).
		Int("notMatured", summary.NotMatured).
		Int("missingTrustLine", summary.MissingTrustLine).
		Int("paid", summary.Paid).
		Int("failed", summary.Failed).
		Int("unresolved", summary.Unresolved).
		Msg("maturity sweep finished")
	return summary, nil
}

// MaturityOf is the instant a stake's term elapses: its creation time plus
// the snapshotted duration in calendar months, evaluated in loc.
func MaturityOf(stake *model.StakeDocument, loc *time.Location) time.Time {
	return utils.AddCalendarMonths(stake.CreatedAt, stake.DurationMonths, loc)
}

func (s *Services) isMatured(stake *model.StakeDocument, now time.Time) bool {
	return !now.Before(MaturityOf(stake, s.location()))
}

func (s *Services) hasRewardTrustLine(ctx context.Context, address string) (bool, *types.Error) {
	lines, err := s.Ledger.GetTrustLines(ctx, address)
	if err != nil {
		return false, err
	}
	return findTrustLine(lines, s.rewardIssue()) != nil, nil
}

func findTrustLine(lines []xrpl.TrustLine, issue xrpl.Issue) *xrpl.TrustLine {
	for i := range lines {
		if lines[i].Peer == issue.Issuer && lines[i].Currency == issue.Currency {
			return &lines[i]
		}
	}
	return nil
}
