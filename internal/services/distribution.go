package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/anonymousnfts/stake-reward-service/internal/db/model"
	"github.com/anonymousnfts/stake-reward-service/internal/observability/metrics"
	"github.com/anonymousnfts/stake-reward-service/internal/queue/client"
	"github.com/anonymousnfts/stake-reward-service/internal/types"
	"github.com/anonymousnfts/stake-reward-service/internal/utils"
)

type DistributionSummary struct {
	Period string `json:"period"`
	// Skipped is set when the period already has history entries.
	Skipped      bool            `json:"skipped"`
	Participants int             `json:"participants"`
	TotalPoints  decimal.Decimal `json:"total_points"`
	Pool         decimal.Decimal `json:"pool"`
	Distributed  decimal.Decimal `json:"distributed"`
	Paid         int             `json:"paid"`
	Failed       int             `json:"failed"`
	Unresolved   int             `json:"unresolved"`
	ZeroShare    int             `json:"zero_share"`
}

func newDistributionSummary(period types.Period) *DistributionSummary {
	return &DistributionSummary{
		Period:      period.String(),
		TotalPoints: decimal.Zero,
		Pool:        decimal.Zero,
		Distributed: decimal.Zero,
	}
}

type participant struct {
	account *model.VerifiedAccountDocument
	points  decimal.Decimal
}

type rewardPayment struct {
	accountID   string
	destination string
	amount      decimal.Decimal
}

// RunMonthlyDistribution distributes the pool for the calendar month
// preceding now.
func (s *Services) RunMonthlyDistribution(ctx context.Context) (*DistributionSummary, *types.Error) {
	return s.RunDistributionForPeriod(ctx, s.currentPeriod().Previous())
}

// RunDistributionForPeriod shares pool * rate among the accounts verified in
// period, pro rata to their points. A period is distributed at most once:
// any existing history entry for it makes the run a no-op. Before the first
// transfer every payment is stored as a planned NOT_SENT entry, so a crash or
// a lost outcome write leaves an entry for RetryFailedRewards to pick up.
func (s *Services) RunDistributionForPeriod(ctx context.Context, period types.Period) (*DistributionSummary, *types.Error) {
	summary := newDistributionSummary(period)
	logger := log.Ctx(ctx).With().Str("period", summary.Period).Logger()
	ctx = logger.WithContext(ctx)

	existing, err := s.DbClient.CountRewardHistoryByPeriod(ctx, summary.Period)
	if err != nil {
		return nil, types.NewPersistenceError(err)
	}
	if existing > 0 {
		logger.Info().Int64("entries", existing).Msg("period already distributed, skipping")
		summary.Skipped = true
		return summary, nil
	}

	accounts, err := s.DbClient.FindVerifiedAccountsByPeriod(ctx, summary.Period)
	if err != nil {
		return nil, types.NewPersistenceError(err)
	}
	participants := participantsOf(logger, accounts, summary.Period)
	summary.Participants = len(participants)
	for _, p := range participants {
		summary.TotalPoints = summary.TotalPoints.Add(p.points)
	}
	if !summary.TotalPoints.IsPositive() {
		logger.Info().Int("participants", summary.Participants).Msg("no points verified for period, nothing to distribute")
		return summary, nil
	}

	pool, pErr := s.treasuryPool(ctx)
	if pErr != nil {
		return nil, pErr
	}
	summary.Pool = pool
	metrics.SetDistributionPool(pool.InexactFloat64())

	payments := make([]rewardPayment, 0, len(participants))
	for _, p := range participants {
		share := ShareOf(p.points, summary.TotalPoints, pool, s.cfg.Settlement.Rate)
		if !share.IsPositive() {
			summary.ZeroShare++
			continue
		}
		payments = append(payments, rewardPayment{
			accountID:   p.account.ID,
			destination: p.account.PrimaryAddress,
			amount:      share,
		})
	}

	if len(payments) > 0 {
		if err := s.DbClient.InsertRewardPlan(ctx, s.rewardPlan(period, payments)); err != nil {
			logger.Error().Err(err).Int("payments", len(payments)).Msg("failed to record distribution plan")
			return nil, types.NewPersistenceError(err)
		}
	}
	s.payRewards(ctx, period, payments, summary)

	logger.Info().
		Int("participants", summary.Participants).
		Str("totalPoints", summary.TotalPoints.String()).
		Str("pool", summary.Pool.String()).
		Str("distributed", summary.Distributed.String()).
		Int("paid", summary.Paid).
		Int("failed", summary.Failed).
		Int("unresolved", summary.Unresolved).
		Msg("distribution finished")
	return summary, nil
}

// RetryFailedRewards pays again every account of period whose history holds a
// failed entry and no success. Each payout is reconciled against the ledger
// first, so a payment that did land is recorded instead of being repeated.
func (s *Services) RetryFailedRewards(ctx context.Context, period types.Period) (*DistributionSummary, *types.Error) {
	summary := newDistributionSummary(period)
	ctx = log.Ctx(ctx).With().Str("period", summary.Period).Logger().WithContext(ctx)

	entries, err := s.DbClient.FindRewardHistoryByPeriod(ctx, summary.Period)
	if err != nil {
		return nil, types.NewPersistenceError(err)
	}

	succeeded := make(map[string]bool)
	for _, e := range entries {
		if e.Success {
			succeeded[e.VerifiedAccountID] = true
		}
	}
	var payments []rewardPayment
	queued := make(map[string]bool)
	for _, e := range entries {
		if e.Success || succeeded[e.VerifiedAccountID] || queued[e.VerifiedAccountID] {
			continue
		}
		amount, err := decimal.NewFromString(e.Amount)
		if err != nil || !amount.IsPositive() {
			log.Ctx(ctx).Warn().Str("entry", e.ID).Str("amount", e.Amount).Msg("skipping failed entry with invalid amount")
			continue
		}
		queued[e.VerifiedAccountID] = true
		payments = append(payments, rewardPayment{
			accountID:   e.VerifiedAccountID,
			destination: e.RecipientAddress,
			amount:      amount,
		})
	}
	summary.Participants = len(payments)

	s.payRewards(ctx, period, payments, summary)

	log.Ctx(ctx).Info().
		Int("retried", len(payments)).
		Int("paid", summary.Paid).
		Int("failed", summary.Failed).
		Int("unresolved", summary.Unresolved).
		Msg("failed rewards retried")
	return summary, nil
}

// ShareOf is points / total * pool * rate truncated to the ledger precision,
// so the shares of a period never add up to more than pool * rate.
func ShareOf(points, total, pool, rate decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return points.Mul(pool).Mul(rate).Div(total).Truncate(ledgerDecimals)
}

func participantsOf(logger zerolog.Logger, accounts []model.VerifiedAccountDocument, period string) []participant {
	participants := make([]participant, 0, len(accounts))
	for i := range accounts {
		account := &accounts[i]
		total := decimal.Zero
		if account.PrimaryVerifiedPeriod == period {
			total = total.Add(parsePoints(logger, account.ID, account.PrimaryPoints))
		}
		if account.SecondaryVerifiedPeriod == period {
			total = total.Add(parsePoints(logger, account.ID, account.SecondaryPoints))
		}
		participants = append(participants, participant{account: account, points: total})
	}
	return participants
}

func parsePoints(logger zerolog.Logger, accountID, value string) decimal.Decimal {
	if value == "" {
		return decimal.Zero
	}
	p, err := decimal.NewFromString(value)
	if err != nil || p.IsNegative() {
		logger.Warn().Str("account", accountID).Str("points", value).Msg("ignoring invalid points")
		return decimal.Zero
	}
	return p
}

// treasuryPool is the treasury's balance of the reward token.
func (s *Services) treasuryPool(ctx context.Context) (decimal.Decimal, *types.Error) {
	lines, err := s.Ledger.GetTrustLines(ctx, s.cfg.Treasury.Account)
	if err != nil {
		return decimal.Zero, err
	}
	line := findTrustLine(lines, s.rewardIssue())
	if line == nil || !line.Balance.IsPositive() {
		log.Ctx(ctx).Warn().Msg("treasury holds none of the reward token")
		return decimal.Zero, nil
	}
	return line.Balance, nil
}

// payRewards sends payments one at a time and appends one outcome entry per
// payment.
func (s *Services) payRewards(
	ctx context.Context, period types.Period, payments []rewardPayment, summary *DistributionSummary,
) {
	for i, payment := range payments {
		if i > 0 {
			if err := utils.Sleep(ctx, s.cfg.Settlement.PayoutDelay); err != nil {
				s.abandonRemaining(ctx, payments[i:], summary)
				return
			}
		}
		logger := log.Ctx(ctx).With().Str("account", payment.accountID).Str("destination", payment.destination).Logger()
		reference := DistributionReference(period, payment.accountID)

		entry := &model.RewardHistoryDocument{
			ID:                  uuid.NewString(),
			Period:              summary.Period,
			PayoutTransactionID: model.NotSentTransactionID,
			RecipientAddress:    payment.destination,
			VerifiedAccountID:   payment.accountID,
			Amount:              payment.amount.String(),
		}

		result, tErr := s.Executor.Transfer(logger.WithContext(ctx), TransferRequest{
			Reference:   reference,
			Destination: payment.destination,
			Amount:      payment.amount,
			Memo:        s.cfg.Treasury.RewardMemo,
		})
		switch {
		case tErr == nil:
			entry.PayoutTransactionID = result.TxHash
			entry.Amount = result.Amount.String()
			entry.Success = true
			if result.Reconciled {
				entry.Note = "settled by an earlier submission"
			}
			summary.Paid++
			summary.Distributed = summary.Distributed.Add(result.Amount)
			metrics.RecordPayout(payoutKindDistribution, payoutOutcomePaid)
		case types.IsAmbiguousPayout(tErr):
			entry.Note = tErr.Error()
			summary.Unresolved++
			metrics.RecordPayout(payoutKindDistribution, payoutOutcomeUnresolved)
			logger.Warn().Err(tErr).Msg("reward payout unresolved")
		default:
			entry.Note = tErr.Error()
			summary.Failed++
			metrics.RecordPayout(payoutKindDistribution, payoutOutcomeFailed)
			logger.Error().Err(tErr).Msg("reward payout failed")
		}
		entry.Timestamp = s.Clock.Now().UTC()

		if err := s.DbClient.InsertRewardHistory(ctx, entry); err != nil {
			// The planned entry still marks the account unpaid, and a
			// successful attempt stays for reconciliation.
			logger.Error().Err(err).Str("txHash", entry.PayoutTransactionID).Msg("failed to record reward history")
			continue
		}
		if entry.Success {
			s.Executor.Settle(ctx, reference)
		}

		s.publishEvent(ctx, client.NewRewardDistributedEvent(
			entry.Period, entry.VerifiedAccountID, entry.RecipientAddress,
			entry.Amount, entry.PayoutTransactionID, entry.Success,
		))
	}
}

// rewardPlan is one NOT_SENT entry per payment.
func (s *Services) rewardPlan(period types.Period, payments []rewardPayment) []*model.RewardHistoryDocument {
	now := s.Clock.Now().UTC()
	plan := make([]*model.RewardHistoryDocument, 0, len(payments))
	for _, payment := range payments {
		plan = append(plan, &model.RewardHistoryDocument{
			ID:                  uuid.NewString(),
			Period:              period.String(),
			PayoutTransactionID: model.NotSentTransactionID,
			RecipientAddress:    payment.destination,
			VerifiedAccountID:   payment.accountID,
			Amount:              payment.amount.String(),
			Note:                model.PlannedNote,
			Timestamp:           now,
		})
	}
	return plan
}

// abandonRemaining counts the payments a cancelled run did not reach. Their
// failed entries (the plan, or the previous failure on a retry) are already
// stored, so RetryFailedRewards picks them up.
func (s *Services) abandonRemaining(ctx context.Context, remaining []rewardPayment, summary *DistributionSummary) {
	summary.Failed += len(remaining)
	accounts := make([]string, 0, len(remaining))
	for _, payment := range remaining {
		accounts = append(accounts, payment.accountID)
	}
	log.Ctx(ctx).Warn().Strs("accounts", accounts).Msg("distribution interrupted before payout")
}
