package services

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/anonymousnfts/stake-reward-service/internal/clients/xrpl"
	"github.com/anonymousnfts/stake-reward-service/internal/config"
	"github.com/anonymousnfts/stake-reward-service/internal/db"
	"github.com/anonymousnfts/stake-reward-service/internal/db/model"
	"github.com/anonymousnfts/stake-reward-service/internal/queue/client"
	"github.com/anonymousnfts/stake-reward-service/internal/types"
)

// ledgerDecimals is the precision of issued amounts sent by the service.
const ledgerDecimals = 6

var hundred = decimal.NewFromInt(100)

// CalculateReward returns amount * (100 + percentage) / 100 rounded to the
// ledger precision, e.g. 1000 at 12% pays 1120.
func CalculateReward(amount, percentage decimal.Decimal) decimal.Decimal {
	return amount.Mul(hundred.Add(percentage)).Div(hundred).Round(ledgerDecimals)
}

func StakeReference(txHash string) string {
	return "stake:" + txHash
}

func DistributionReference(period types.Period, accountID string) string {
	return fmt.Sprintf("distribution:%s:%s", period, accountID)
}

type TransferRequest struct {
	// Reference identifies the payout across retries. At most one payment is
	// ever settled per reference.
	Reference   string
	Destination string
	Amount      decimal.Decimal
	Memo        string
}

type TransferResult struct {
	TxHash string
	Amount decimal.Decimal
	// Reconciled is set when the payment was found on the ledger from an
	// earlier attempt instead of being submitted now.
	Reconciled bool
}

type reconcileOutcome int

const (
	// Payment landed successfully.
	outcomeSettled reconcileOutcome = iota
	// Payment provably did not and will not transfer funds.
	outcomeFailed
	// Not yet decidable.
	outcomeUnresolved
)

// PayoutExecutor is the only component that sends funds from the treasury.
// Submissions are serialized because they share one signing account.
type PayoutExecutor struct {
	mu        sync.Mutex
	dbClient  db.DBClient
	ledger    xrpl.LedgerClientInterface
	clock     clock.Clock
	ledgerCfg *config.LedgerConfig
	treasury  *config.TreasuryConfig
}

func NewPayoutExecutor(
	dbClient db.DBClient, ledger xrpl.LedgerClientInterface, clk clock.Clock,
	ledgerCfg *config.LedgerConfig, treasury *config.TreasuryConfig,
) *PayoutExecutor {
	return &PayoutExecutor{
		dbClient:  dbClient,
		ledger:    ledger,
		clock:     clk,
		ledgerCfg: ledgerCfg,
		treasury:  treasury,
	}
}

func (e *PayoutExecutor) issue() xrpl.Issue {
	return xrpl.Issue{Currency: e.treasury.Currency, Issuer: e.treasury.Issuer}
}

// Transfer pays req.Amount of the reward token to req.Destination.
//
// A payout attempt is persisted before submission. If one already exists for
// the reference, the ledger is reconciled first and nothing is submitted
// unless the earlier attempt provably failed. On success the attempt is kept
// until the caller has recorded the outcome and called Settle, so a crash in
// between is resolved by reconciliation rather than a second payment.
func (e *PayoutExecutor) Transfer(ctx context.Context, req TransferRequest) (*TransferResult, *types.Error) {
	amount := req.Amount.Round(ledgerDecimals)
	if !amount.IsPositive() {
		return nil, types.NewValidationError(fmt.Sprintf("payout amount must be positive, got %s", req.Amount))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	logger := log.Ctx(ctx).With().Str("reference", req.Reference).Logger()

	previous, err := e.dbClient.FindPayoutAttempt(ctx, req.Reference)
	if err != nil && !db.IsNotFoundError(err) {
		return nil, types.NewPersistenceError(fmt.Errorf("failed to load payout attempt: %w", err))
	}
	if previous != nil {
		outcome, tx, rErr := e.reconcile(ctx, previous)
		if rErr != nil {
			logger.Warn().Err(rErr).Msg("reconciliation failed")
			return nil, types.NewPayoutFailedError("previous attempt could not be reconciled: "+rErr.Error(), "", true)
		}
		switch outcome {
		case outcomeSettled:
			logger.Info().Str("txHash", tx.Hash).Msg("previous attempt found settled on ledger")
			settledAmount, _ := decimal.NewFromString(previous.Amount)
			return &TransferResult{TxHash: tx.Hash, Amount: settledAmount, Reconciled: true}, nil
		case outcomeUnresolved:
			return nil, types.NewPayoutFailedError("previous attempt is still unresolved", "", true)
		case outcomeFailed:
			logger.Info().Msg("previous attempt failed, resubmitting")
			if err := e.dbClient.DeletePayoutAttempt(ctx, req.Reference); err != nil {
				return nil, types.NewPersistenceError(err)
			}
		}
	}

	return e.submit(ctx, req.Reference, req.Destination, amount, req.Memo)
}

func (e *PayoutExecutor) submit(
	ctx context.Context, reference, destination string, amount decimal.Decimal, memo string,
) (*TransferResult, *types.Error) {
	logger := log.Ctx(ctx).With().Str("reference", reference).Str("destination", destination).Logger()

	tag, err := e.dbClient.NextDestinationTag(ctx)
	if err != nil {
		return nil, types.NewPersistenceError(err)
	}
	validated, lErr := e.ledger.GetValidatedLedgerIndex(ctx)
	if lErr != nil {
		return nil, lErr
	}

	payment := xrpl.NewIssuedAmount(e.issue(), amount)
	attempt := &model.PayoutAttemptDocument{
		Reference:          reference,
		Destination:        destination,
		Currency:           payment.Currency,
		Issuer:             payment.Issuer,
		Amount:             payment.Value,
		DestinationTag:     tag,
		SubmittedLedger:    validated,
		LastLedgerSequence: validated + e.ledgerCfg.LastLedgerOffset,
		SubmittedAt:        e.clock.Now(),
	}
	if err := e.dbClient.SavePayoutAttempt(ctx, attempt); err != nil {
		return nil, types.NewPersistenceError(fmt.Errorf("failed to persist payout attempt: %w", err))
	}

	result, sErr := e.ledger.SubmitPayment(ctx, xrpl.PaymentRequest{
		Destination:        destination,
		DestinationTag:     tag,
		Amount:             payment,
		LastLedgerSequence: attempt.LastLedgerSequence,
		Memo:               memo,
	})
	if sErr != nil {
		// The request may have reached the node; keep the attempt.
		logger.Error().Err(sErr).Msg("payment submission failed")
		return nil, types.NewPayoutFailedError(sErr.Error(), "", true)
	}

	if result.TxHash != "" {
		attempt.TxHash = result.TxHash
		if err := e.dbClient.SavePayoutAttempt(ctx, attempt); err != nil {
			logger.Warn().Err(err).Str("txHash", result.TxHash).Msg("failed to record transaction hash on attempt")
		}
	}

	if !result.Finalized {
		logger.Warn().Str("txHash", result.TxHash).Msg("payment outcome unknown")
		return nil, types.NewPayoutFailedError("payment not validated before finality timeout", result.OutcomeCode, true)
	}
	if !result.Succeeded() {
		logger.Warn().Str("txHash", result.TxHash).Str("outcome", result.OutcomeCode).Msg("payment failed")
		if err := e.dbClient.DeletePayoutAttempt(ctx, reference); err != nil {
			logger.Error().Err(err).Msg("failed to discard failed payout attempt")
		}
		return nil, types.NewPayoutFailedError("payment was not successful", result.OutcomeCode, false)
	}

	logger.Info().Str("txHash", result.TxHash).Str("amount", amount.String()).Msg("payment settled")
	return &TransferResult{TxHash: result.TxHash, Amount: amount}, nil
}

// Settle discards the attempt of a payout whose outcome the caller has
// persisted.
func (e *PayoutExecutor) Settle(ctx context.Context, reference string) {
	if err := e.dbClient.DeletePayoutAttempt(ctx, reference); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("reference", reference).Msg("failed to discard settled payout attempt")
	}
}

// reconcile decides the fate of an earlier submission. The validated ledger
// index is read before the history scan, so a payment absent from the scan
// while that index is past LastLedgerSequence can never be included.
func (e *PayoutExecutor) reconcile(
	ctx context.Context, attempt *model.PayoutAttemptDocument,
) (reconcileOutcome, *xrpl.Transaction, *types.Error) {
	if attempt.TxHash != "" {
		tx, err := e.ledger.GetTransaction(ctx, attempt.TxHash)
		switch {
		case err == nil && tx.Validated:
			if tx.Succeeded() {
				return outcomeSettled, tx, nil
			}
			return outcomeFailed, tx, nil
		case err != nil && err.ErrorCode != types.NotFound:
			return outcomeUnresolved, nil, err
		}
	}

	current, err := e.ledger.GetValidatedLedgerIndex(ctx)
	if err != nil {
		return outcomeUnresolved, nil, err
	}

	found, err := e.ledger.FindPayment(ctx, xrpl.PaymentQuery{
		Account:        e.treasury.Account,
		Destination:    attempt.Destination,
		DestinationTag: attempt.DestinationTag,
		Amount:         xrpl.Amount{Currency: attempt.Currency, Issuer: attempt.Issuer, Value: attempt.Amount},
		MinLedger:      attempt.SubmittedLedger,
	})
	if err != nil {
		return outcomeUnresolved, nil, err
	}
	if found != nil {
		if found.Succeeded() {
			return outcomeSettled, found, nil
		}
		return outcomeFailed, found, nil
	}

	if attempt.LastLedgerSequence > 0 && current > attempt.LastLedgerSequence {
		return outcomeFailed, nil, nil
	}
	return outcomeUnresolved, nil, nil
}

// PayStake pays the matured reward of a pending stake and marks it PAID. On
// any failure the stake is left untouched.
func (s *Services) PayStake(ctx context.Context, stake *model.StakeDocument) (*TransferResult, *types.Error) {
	amount, err := decimal.NewFromString(stake.Amount)
	if err != nil {
		return nil, types.NewInternalServiceError(fmt.Errorf("stake %s has invalid amount %q", stake.TransactionID, stake.Amount))
	}
	percentage, err := decimal.NewFromString(stake.RewardPercentage)
	if err != nil {
		return nil, types.NewInternalServiceError(
			fmt.Errorf("stake %s has invalid reward percentage %q", stake.TransactionID, stake.RewardPercentage),
		)
	}

	reference := StakeReference(stake.TransactionID)
	result, tErr := s.Executor.Transfer(ctx, TransferRequest{
		Reference:   reference,
		Destination: stake.FromAddress,
		Amount:      CalculateReward(amount, percentage),
		Memo:        s.cfg.Treasury.RewardMemo,
	})
	if tErr != nil {
		return nil, tErr
	}

	rewardedAt := s.Clock.Now().UTC()
	err = s.DbClient.TransitionStakeToPaid(ctx, stake.TransactionID, result.TxHash, result.Amount.String(), rewardedAt)
	if err != nil {
		if db.IsNotFoundError(err) {
			log.Ctx(ctx).Warn().Str("stake", stake.TransactionID).Msg("stake was already settled")
			s.Executor.Settle(ctx, reference)
			return result, nil
		}
		// The attempt stays, the next sweep reconciles instead of paying again.
		log.Ctx(ctx).Error().Err(err).Str("stake", stake.TransactionID).Str("txHash", result.TxHash).
			Msg("reward paid but stake could not be marked as paid")
		return nil, types.NewError(http.StatusInternalServerError, types.PersistenceError, err)
	}
	s.Executor.Settle(ctx, reference)

	s.publishEvent(ctx, client.NewStakePaidEvent(
		stake.TransactionID, stake.FromAddress, stake.Amount, result.Amount.String(), result.TxHash, rewardedAt,
	))
	return result, nil
}
