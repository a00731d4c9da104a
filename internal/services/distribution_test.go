package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/anonymousnfts/stake-reward-service/internal/clients/xrpl"
	"github.com/anonymousnfts/stake-reward-service/internal/db/model"
	"github.com/anonymousnfts/stake-reward-service/internal/services"
	"github.com/anonymousnfts/stake-reward-service/internal/types"
	"github.com/anonymousnfts/stake-reward-service/internal/utils"
)

const (
	holderA = "rHolderA77777777777777777777"
	holderB = "rHolderB88888888888888888888"
)

var april = types.Period{Year: 2024, Month: time.April}

func TestShareOf(t *testing.T) {
	pool, rate, total := dec("1000"), dec("0.5"), dec("100")

	assert.Equal(t, "150", services.ShareOf(dec("30"), total, pool, rate).String())
	assert.Equal(t, "350", services.ShareOf(dec("70"), total, pool, rate).String())
	assert.True(t, services.ShareOf(dec("1"), dec("0"), pool, rate).IsZero())

	// Thirds are truncated so the shares never exceed pool * rate.
	third := services.ShareOf(dec("1"), dec("3"), dec("100"), dec("1"))
	assert.Equal(t, "33.333333", third.String())
	assert.True(t, third.Mul(dec("3")).LessThanOrEqual(dec("100")))
}

func verifiedAccounts() []model.VerifiedAccountDocument {
	return []model.VerifiedAccountDocument{
		{
			ID:                    "acc-a",
			PrimaryAddress:        holderA,
			PrimaryPoints:         "30",
			PrimaryVerifiedPeriod: "2024-04",
		},
		{
			ID:                      "acc-b",
			PrimaryAddress:          holderB,
			PrimaryPoints:           "20",
			PrimaryVerifiedPeriod:   "2024-04",
			SecondaryAddress:        "0x00000000000000000000000000000000000000b0",
			SecondaryPoints:         "50",
			SecondaryVerifiedPeriod: "2024-04",
		},
		{
			// Verified only in an earlier period on the primary chain.
			ID:                      "acc-c",
			PrimaryAddress:          "rHolderC99999999999999999999",
			PrimaryPoints:           "1000",
			PrimaryVerifiedPeriod:   "2024-03",
			SecondaryPoints:         "0",
			SecondaryVerifiedPeriod: "2024-04",
		},
	}
}

func expectRewardPayment(env *testEnv, accountID, destination, amount, txHash string) {
	ref := services.DistributionReference(april, accountID)
	env.db.On("FindPayoutAttempt", mock.Anything, ref).Return(nil, notFound()).Once()
	env.db.On("SavePayoutAttempt", mock.Anything, mock.MatchedBy(func(a *model.PayoutAttemptDocument) bool {
		return a.Reference == ref
	})).Return(nil)
	env.ledger.On("SubmitPayment", mock.Anything, mock.MatchedBy(func(req xrpl.PaymentRequest) bool {
		return req.Destination == destination && req.Amount.Value == amount
	})).Return(&xrpl.SubmitResult{Finalized: true, OutcomeCode: xrpl.ResultSuccess, TxHash: txHash}, nil).Once()
	env.db.On("DeletePayoutAttempt", mock.Anything, ref).Return(nil).Once()
}

// expectRewardPlan captures the planned entries written before any payout.
func expectRewardPlan(env *testEnv) *[]*model.RewardHistoryDocument {
	var plan []*model.RewardHistoryDocument
	env.db.On("InsertRewardPlan", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		plan = args.Get(1).([]*model.RewardHistoryDocument)
	}).Return(nil).Once()
	return &plan
}

func TestRunDistributionForPeriod_ProRata(t *testing.T) {
	env := newTestEnv(t, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))

	env.db.On("CountRewardHistoryByPeriod", mock.Anything, "2024-04").Return(int64(0), nil).Once()
	env.db.On("FindVerifiedAccountsByPeriod", mock.Anything, "2024-04").Return(verifiedAccounts(), nil).Once()
	env.ledger.On("GetTrustLines", mock.Anything, treasuryAccount).Return([]xrpl.TrustLine{rewardLine("1000")}, nil).Once()
	env.db.On("NextDestinationTag", mock.Anything).Return(uint32(3), nil)
	env.ledger.On("GetValidatedLedgerIndex", mock.Anything).Return(uint32(500), nil)

	expectRewardPayment(env, "acc-a", holderA, "150", "TXA")
	expectRewardPayment(env, "acc-b", holderB, "350", "TXB")
	plan := expectRewardPlan(env)

	var history []*model.RewardHistoryDocument
	env.db.On("InsertRewardHistory", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		history = append(history, args.Get(1).(*model.RewardHistoryDocument))
	}).Return(nil).Times(2)

	var sleeps []time.Duration
	env.cfg.Settlement.PayoutDelay = 2 * time.Second
	recordSleeps(t, &sleeps)

	summary, err := env.services.RunMonthlyDistribution(context.Background())
	require.Nil(t, err)
	assert.Equal(t, "2024-04", summary.Period)
	assert.Equal(t, 3, summary.Participants)
	assert.Equal(t, "100", summary.TotalPoints.String())
	assert.Equal(t, "500", summary.Distributed.String())
	assert.Equal(t, 2, summary.Paid)
	assert.Equal(t, 1, summary.ZeroShare)
	assert.Equal(t, []time.Duration{2 * time.Second}, sleeps)

	require.Len(t, history, 2)
	assert.Equal(t, "TXA", history[0].PayoutTransactionID)
	assert.Equal(t, "150", history[0].Amount)
	assert.Equal(t, "acc-a", history[0].VerifiedAccountID)
	assert.True(t, history[0].Success)
	assert.Equal(t, "TXB", history[1].PayoutTransactionID)
	assert.Equal(t, "350", history[1].Amount)
	assert.Equal(t, "2024-04", history[1].Period)

	require.Len(t, *plan, 2)
	for i, e := range *plan {
		assert.False(t, e.Success)
		assert.Equal(t, model.NotSentTransactionID, e.PayoutTransactionID)
		assert.Equal(t, model.PlannedNote, e.Note)
		assert.Equal(t, history[i].VerifiedAccountID, e.VerifiedAccountID)
		assert.Equal(t, history[i].Amount, e.Amount)
	}
}

func TestRunDistributionForPeriod_ZeroTotalPoints(t *testing.T) {
	env := newTestEnv(t, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))

	env.db.On("CountRewardHistoryByPeriod", mock.Anything, "2024-04").Return(int64(0), nil).Once()
	env.db.On("FindVerifiedAccountsByPeriod", mock.Anything, "2024-04").Return([]model.VerifiedAccountDocument{
		{ID: "z", PrimaryAddress: holderA, PrimaryPoints: "0", PrimaryVerifiedPeriod: "2024-04"},
	}, nil).Once()

	summary, err := env.services.RunDistributionForPeriod(context.Background(), april)
	require.Nil(t, err)
	assert.True(t, summary.TotalPoints.IsZero())
	assert.Equal(t, 0, summary.Paid)
	env.ledger.AssertNotCalled(t, "GetTrustLines", mock.Anything, mock.Anything)
	env.db.AssertNotCalled(t, "InsertRewardHistory", mock.Anything, mock.Anything)
	env.db.AssertNotCalled(t, "InsertRewardPlan", mock.Anything, mock.Anything)
}

func TestRunDistributionForPeriod_AlreadyDistributed(t *testing.T) {
	env := newTestEnv(t, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))

	env.db.On("CountRewardHistoryByPeriod", mock.Anything, "2024-04").Return(int64(2), nil).Once()

	summary, err := env.services.RunDistributionForPeriod(context.Background(), april)
	require.Nil(t, err)
	assert.True(t, summary.Skipped)
	env.db.AssertNotCalled(t, "FindVerifiedAccountsByPeriod", mock.Anything, mock.Anything)
}

func TestRunMonthlyDistribution_PeriodInCanonicalZone(t *testing.T) {
	// 2024-04-30 16:00 UTC is already May 1 in Tokyo.
	env := newTestEnv(t, time.Date(2024, time.April, 30, 16, 0, 0, 0, time.UTC))
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	env.cfg.Settlement.Location = tokyo

	env.db.On("CountRewardHistoryByPeriod", mock.Anything, "2024-04").Return(int64(1), nil).Once()

	summary, sErr := env.services.RunMonthlyDistribution(context.Background())
	require.Nil(t, sErr)
	assert.Equal(t, "2024-04", summary.Period)
}

func TestRunDistributionForPeriod_FailedPayoutIsRecorded(t *testing.T) {
	env := newTestEnv(t, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))

	env.db.On("CountRewardHistoryByPeriod", mock.Anything, "2024-04").Return(int64(0), nil).Once()
	env.db.On("FindVerifiedAccountsByPeriod", mock.Anything, "2024-04").Return(verifiedAccounts()[:1], nil).Once()
	env.ledger.On("GetTrustLines", mock.Anything, treasuryAccount).Return([]xrpl.TrustLine{rewardLine("1000")}, nil).Once()

	ref := services.DistributionReference(april, "acc-a")
	env.db.On("FindPayoutAttempt", mock.Anything, ref).Return(nil, notFound()).Once()
	env.db.On("NextDestinationTag", mock.Anything).Return(uint32(3), nil).Once()
	env.ledger.On("GetValidatedLedgerIndex", mock.Anything).Return(uint32(500), nil).Once()
	env.db.On("SavePayoutAttempt", mock.Anything, mock.Anything).Return(nil)
	env.ledger.On("SubmitPayment", mock.Anything, mock.Anything).
		Return(&xrpl.SubmitResult{Finalized: true, OutcomeCode: "tecNO_LINE", TxHash: "BAD"}, nil).Once()
	env.db.On("DeletePayoutAttempt", mock.Anything, ref).Return(nil).Once()
	expectRewardPlan(env)
	env.db.On("InsertRewardHistory", mock.Anything, mock.MatchedBy(func(e *model.RewardHistoryDocument) bool {
		return !e.Success && e.PayoutTransactionID == model.NotSentTransactionID &&
			e.Amount == "500" && e.Note != "" && e.Note != model.PlannedNote
	})).Return(nil).Once()

	summary, err := env.services.RunDistributionForPeriod(context.Background(), april)
	require.Nil(t, err)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 0, summary.Paid)
}

func TestRunDistributionForPeriod_InterruptedLeavesPlannedEntries(t *testing.T) {
	env := newTestEnv(t, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))

	env.db.On("CountRewardHistoryByPeriod", mock.Anything, "2024-04").Return(int64(0), nil).Once()
	env.db.On("FindVerifiedAccountsByPeriod", mock.Anything, "2024-04").Return(verifiedAccounts(), nil).Once()
	env.ledger.On("GetTrustLines", mock.Anything, treasuryAccount).Return([]xrpl.TrustLine{rewardLine("1000")}, nil).Once()
	env.db.On("NextDestinationTag", mock.Anything).Return(uint32(3), nil)
	env.ledger.On("GetValidatedLedgerIndex", mock.Anything).Return(uint32(500), nil)
	expectRewardPayment(env, "acc-a", holderA, "150", "TXA")
	plan := expectRewardPlan(env)

	ctx, cancel := context.WithCancel(context.Background())
	// shutdown arrives during the delay before the second payout
	utils.SetSleepFunc(func(context.Context, time.Duration) error {
		cancel()
		return context.Canceled
	})
	t.Cleanup(utils.ResetSleepFunc)

	var history []*model.RewardHistoryDocument
	env.db.On("InsertRewardHistory", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		history = append(history, args.Get(1).(*model.RewardHistoryDocument))
	}).Return(nil).Once()

	summary, err := env.services.RunDistributionForPeriod(ctx, april)
	require.Nil(t, err)
	assert.Equal(t, 1, summary.Paid)
	assert.Equal(t, 1, summary.Failed)

	require.Len(t, history, 1)
	assert.True(t, history[0].Success)
	assert.Equal(t, "acc-a", history[0].VerifiedAccountID)

	// acc-b was never paid; its planned entry is what a retry picks up.
	require.Len(t, *plan, 2)
	assert.Equal(t, "acc-b", (*plan)[1].VerifiedAccountID)
	assert.Equal(t, "350", (*plan)[1].Amount)
	assert.False(t, (*plan)[1].Success)
	env.ledger.AssertNumberOfCalls(t, "SubmitPayment", 1)
}

func TestRunDistributionForPeriod_PlanFailureSendsNothing(t *testing.T) {
	env := newTestEnv(t, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))

	env.db.On("CountRewardHistoryByPeriod", mock.Anything, "2024-04").Return(int64(0), nil).Once()
	env.db.On("FindVerifiedAccountsByPeriod", mock.Anything, "2024-04").Return(verifiedAccounts(), nil).Once()
	env.ledger.On("GetTrustLines", mock.Anything, treasuryAccount).Return([]xrpl.TrustLine{rewardLine("1000")}, nil).Once()
	env.db.On("InsertRewardPlan", mock.Anything, mock.Anything).Return(errors.New("write conflict")).Once()

	summary, err := env.services.RunDistributionForPeriod(context.Background(), april)
	assert.Nil(t, summary)
	require.NotNil(t, err)
	assert.Equal(t, types.PersistenceError, err.ErrorCode)
	env.ledger.AssertNotCalled(t, "SubmitPayment", mock.Anything, mock.Anything)
	env.db.AssertNotCalled(t, "SavePayoutAttempt", mock.Anything, mock.Anything)
}

func TestRunDistributionForPeriod_LostFailureEntryIsRetried(t *testing.T) {
	env := newTestEnv(t, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))
	refA := services.DistributionReference(april, "acc-a")

	env.db.On("CountRewardHistoryByPeriod", mock.Anything, "2024-04").Return(int64(0), nil).Once()
	env.db.On("FindVerifiedAccountsByPeriod", mock.Anything, "2024-04").Return(verifiedAccounts(), nil).Once()
	env.ledger.On("GetTrustLines", mock.Anything, treasuryAccount).Return([]xrpl.TrustLine{rewardLine("1000")}, nil).Once()
	env.db.On("NextDestinationTag", mock.Anything).Return(uint32(3), nil)
	env.ledger.On("GetValidatedLedgerIndex", mock.Anything).Return(uint32(500), nil)
	plan := expectRewardPlan(env)

	// acc-a fails definitively and the failure entry cannot be written.
	env.db.On("FindPayoutAttempt", mock.Anything, refA).Return(nil, notFound()).Once()
	env.db.On("SavePayoutAttempt", mock.Anything, mock.MatchedBy(func(a *model.PayoutAttemptDocument) bool {
		return a.Reference == refA
	})).Return(nil)
	env.ledger.On("SubmitPayment", mock.Anything, mock.MatchedBy(func(req xrpl.PaymentRequest) bool {
		return req.Destination == holderA
	})).Return(&xrpl.SubmitResult{Finalized: true, OutcomeCode: "tecPATH_DRY", TxHash: "DRY"}, nil).Once()
	env.db.On("DeletePayoutAttempt", mock.Anything, refA).Return(nil).Once()
	env.db.On("InsertRewardHistory", mock.Anything, mock.MatchedBy(func(e *model.RewardHistoryDocument) bool {
		return e.VerifiedAccountID == "acc-a"
	})).Return(errors.New("connection reset")).Once()

	expectRewardPayment(env, "acc-b", holderB, "350", "TXB")
	var paidB *model.RewardHistoryDocument
	env.db.On("InsertRewardHistory", mock.Anything, mock.MatchedBy(func(e *model.RewardHistoryDocument) bool {
		return e.VerifiedAccountID == "acc-b"
	})).Run(func(args mock.Arguments) {
		paidB = args.Get(1).(*model.RewardHistoryDocument)
	}).Return(nil).Once()

	summary, err := env.services.RunDistributionForPeriod(context.Background(), april)
	require.Nil(t, err)
	assert.Equal(t, 1, summary.Paid)
	assert.Equal(t, 1, summary.Failed)
	require.NotNil(t, paidB)
	require.Len(t, *plan, 2)

	// The period history now holds only the plan and acc-b's success, and
	// that is enough for the retry to pay acc-a.
	stored := []model.RewardHistoryDocument{*(*plan)[0], *(*plan)[1], *paidB}
	env.db.On("FindRewardHistoryByPeriod", mock.Anything, "2024-04").Return(stored, nil).Once()
	expectRewardPayment(env, "acc-a", holderA, "150", "TXA")
	env.db.On("InsertRewardHistory", mock.Anything, mock.MatchedBy(func(e *model.RewardHistoryDocument) bool {
		return e.VerifiedAccountID == "acc-a" && e.Success && e.PayoutTransactionID == "TXA"
	})).Return(nil).Once()

	retried, err := env.services.RetryFailedRewards(context.Background(), april)
	require.Nil(t, err)
	assert.Equal(t, 1, retried.Participants)
	assert.Equal(t, 1, retried.Paid)
	assert.Equal(t, "150", retried.Distributed.String())
	env.ledger.AssertNumberOfCalls(t, "SubmitPayment", 3)
}

func TestRetryFailedRewards(t *testing.T) {
	env := newTestEnv(t, time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC))

	env.db.On("FindRewardHistoryByPeriod", mock.Anything, "2024-04").Return([]model.RewardHistoryDocument{
		{ID: "1", Period: "2024-04", VerifiedAccountID: "acc-a", RecipientAddress: holderA, Amount: "150",
			PayoutTransactionID: model.NotSentTransactionID},
		{ID: "2", Period: "2024-04", VerifiedAccountID: "acc-b", RecipientAddress: holderB, Amount: "350",
			PayoutTransactionID: model.NotSentTransactionID},
		{ID: "3", Period: "2024-04", VerifiedAccountID: "acc-b", RecipientAddress: holderB, Amount: "350",
			PayoutTransactionID: "TXB", Success: true},
		{ID: "4", Period: "2024-04", VerifiedAccountID: "acc-a", RecipientAddress: holderA, Amount: "150",
			PayoutTransactionID: model.NotSentTransactionID},
	}, nil).Once()

	// The earlier attempt for acc-a turns out to have landed.
	ref := services.DistributionReference(april, "acc-a")
	env.db.On("FindPayoutAttempt", mock.Anything, ref).Return(&model.PayoutAttemptDocument{
		Reference: ref, Destination: holderA, Currency: tokenCurrency, Issuer: tokenIssuer,
		Amount: "150", TxHash: "LANDED", SubmittedLedger: 10, LastLedgerSequence: 30,
	}, nil).Once()
	env.ledger.On("GetTransaction", mock.Anything, "LANDED").
		Return(&xrpl.Transaction{Hash: "LANDED", Validated: true, Result: xrpl.ResultSuccess}, nil).Once()
	env.db.On("InsertRewardHistory", mock.Anything, mock.MatchedBy(func(e *model.RewardHistoryDocument) bool {
		return e.Success && e.VerifiedAccountID == "acc-a" && e.PayoutTransactionID == "LANDED"
	})).Return(nil).Once()
	env.db.On("DeletePayoutAttempt", mock.Anything, ref).Return(nil).Once()

	summary, err := env.services.RetryFailedRewards(context.Background(), april)
	require.Nil(t, err)
	assert.Equal(t, 1, summary.Participants)
	assert.Equal(t, 1, summary.Paid)
	env.ledger.AssertNotCalled(t, "SubmitPayment", mock.Anything, mock.Anything)
}

func recordSleeps(t *testing.T, sleeps *[]time.Duration) {
	t.Helper()
	setSleep(t, func(d time.Duration) { *sleeps = append(*sleeps, d) })
}
