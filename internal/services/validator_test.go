package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/anonymousnfts/stake-reward-service/internal/clients/xrpl"
	"github.com/anonymousnfts/stake-reward-service/internal/db/model"
	"github.com/anonymousnfts/stake-reward-service/internal/services"
	"github.com/anonymousnfts/stake-reward-service/internal/types"
	"github.com/anonymousnfts/stake-reward-service/tests/mocks"
)

const stakeHash = "0A1B2C3D4E5F60718293A4B5C6D7E8F90A1B2C3D4E5F60718293A4B5C6D7E8F9"

var stakeCloseTime = time.Date(2024, time.January, 15, 9, 30, 0, 0, time.UTC)

func stakeTransaction() *xrpl.Transaction {
	delivered := xrpl.Amount{Currency: tokenCurrency, Issuer: tokenIssuer, Value: "1000"}
	return &xrpl.Transaction{
		Hash:            stakeHash,
		TransactionType: xrpl.TransactionTypePayment,
		Account:         staker,
		Destination:     treasuryAccount,
		Amount:          xrpl.Amount{Currency: tokenCurrency, Issuer: tokenIssuer, Value: "1000"},
		DeliveredAmount: &delivered,
		Validated:       true,
		Result:          xrpl.ResultSuccess,
		LedgerIndex:     1234,
		CloseTime:       stakeCloseTime,
	}
}

func TestValidateStakeTransaction(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(tx *xrpl.Transaction)
		epoch         types.AssetEpoch
		expectedField string
	}{
		{name: "valid payment", mutate: func(*xrpl.Transaction) {}},
		{name: "not validated", mutate: func(tx *xrpl.Transaction) { tx.Validated = false }, expectedField: "validated"},
		{name: "not a payment", mutate: func(tx *xrpl.Transaction) { tx.TransactionType = "OfferCreate" }, expectedField: "type"},
		{name: "other sender", mutate: func(tx *xrpl.Transaction) { tx.Account = holderA }, expectedField: "account"},
		{name: "other destination", mutate: func(tx *xrpl.Transaction) { tx.Destination = holderB }, expectedField: "destination"},
		{name: "other currency", mutate: func(tx *xrpl.Transaction) { tx.Amount.Currency = "USD" }, expectedField: "currency"},
		{name: "other issuer", mutate: func(tx *xrpl.Transaction) { tx.Amount.Issuer = legacyIssuer }, expectedField: "issuer"},
		{name: "amount is compared exactly", mutate: func(tx *xrpl.Transaction) { tx.Amount.Value = "1000.0" }, expectedField: "amount"},
		{name: "failed transaction", mutate: func(tx *xrpl.Transaction) { tx.Result = "tecUNFUNDED_PAYMENT" }, expectedField: "result"},
		{
			name: "partial payment delivering less than claimed",
			mutate: func(tx *xrpl.Transaction) {
				tx.Flags = xrpl.FlagPartialPayment
				tx.DeliveredAmount.Value = "0.000001"
			},
			expectedField: "delivered_amount",
		},
		{
			name: "partial payment delivering the full amount",
			mutate: func(tx *xrpl.Transaction) {
				tx.Flags = xrpl.FlagPartialPayment
			},
		},
		{name: "delivered amount unavailable", mutate: func(tx *xrpl.Transaction) { tx.DeliveredAmount = nil }, expectedField: "delivered_amount"},
		{
			name:          "delivered in another token",
			mutate:        func(tx *xrpl.Transaction) { tx.DeliveredAmount = &xrpl.Amount{Currency: "XRP", Value: "1000"} },
			expectedField: "delivered_amount",
		},
		{
			name:   "legacy epoch accepts legacy issuer",
			mutate: func(tx *xrpl.Transaction) { tx.Amount.Issuer = legacyIssuer },
			epoch:  types.LegacyAsset,
		},
		{
			name:          "legacy epoch rejects current issuer",
			mutate:        func(*xrpl.Transaction) {},
			epoch:         types.LegacyAsset,
			expectedField: "issuer",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, payoutNow)
			tx := stakeTransaction()
			tt.mutate(tx)
			env.ledger.On("GetTransaction", mock.Anything, stakeHash).Return(tx, nil).Once()

			epoch := tt.epoch
			if epoch == "" {
				epoch = types.CurrentAsset
			}
			got, err := env.services.ValidateStakeTransaction(context.Background(), stakeHash, staker, "1000", epoch)
			if tt.expectedField == "" {
				require.Nil(t, err)
				assert.Equal(t, stakeHash, got.Hash)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, types.TransactionInvalid, err.ErrorCode)
			assert.Equal(t, http.StatusUnprocessableEntity, err.StatusCode)
			var mismatch *types.TransactionMismatchError
			require.True(t, errors.As(err, &mismatch))
			assert.Equal(t, tt.expectedField, mismatch.Field)
		})
	}
}

func TestValidateStakeTransaction_PartialPaymentFromLedger(t *testing.T) {
	// rippled reply for a partial payment that claims 1000 but delivered a dust amount
	rippled := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"result": map[string]any{
			"status":          "success",
			"hash":            stakeHash,
			"TransactionType": "Payment",
			"Flags":           131072,
			"Account":         staker,
			"Destination":     treasuryAccount,
			"Amount":          map[string]string{"currency": tokenCurrency, "issuer": tokenIssuer, "value": "1000"},
			"ledger_index":    1234,
			"validated":       true,
			"meta": map[string]any{
				"TransactionResult": "tesSUCCESS",
				"delivered_amount":  map[string]string{"currency": tokenCurrency, "issuer": tokenIssuer, "value": "0.000001"},
			},
		}})
	}))
	t.Cleanup(rippled.Close)

	cfg := testConfig()
	cfg.Ledger.RpcUrl = rippled.URL
	ledger := xrpl.NewXrplClient(&cfg.Ledger, cfg.Treasury.Account, cfg.Treasury.Secret)
	svc := services.NewWithDependencies(cfg, testParams(), mocks.NewDBClient(t), ledger,
		mocks.NewOwnershipClientInterface(t), nil, clock.NewMock())

	tx, err := svc.ValidateStakeTransaction(context.Background(), stakeHash, staker, "1000", types.CurrentAsset)
	assert.Nil(t, tx)
	require.NotNil(t, err)
	assert.Equal(t, types.TransactionInvalid, err.ErrorCode)
	var mismatch *types.TransactionMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "delivered_amount", mismatch.Field)
	assert.Equal(t, "0.000001", mismatch.Actual)
}

func TestValidateStakeTransaction_LedgerErrors(t *testing.T) {
	t.Run("unknown transaction", func(t *testing.T) {
		env := newTestEnv(t, payoutNow)
		env.ledger.On("GetTransaction", mock.Anything, stakeHash).
			Return(nil, types.NewErrorWithMsg(http.StatusNotFound, types.NotFound, "txnNotFound")).Once()

		_, err := env.services.ValidateStakeTransaction(context.Background(), stakeHash, staker, "1000", types.CurrentAsset)
		require.NotNil(t, err)
		var mismatch *types.TransactionMismatchError
		require.True(t, errors.As(err, &mismatch))
		assert.Equal(t, "hash", mismatch.Field)
	})

	t.Run("ledger unavailable", func(t *testing.T) {
		env := newTestEnv(t, payoutNow)
		env.ledger.On("GetTransaction", mock.Anything, stakeHash).
			Return(nil, types.NewLedgerUnavailableError(errors.New("timeout"))).Once()

		_, err := env.services.ValidateStakeTransaction(context.Background(), stakeHash, staker, "1000", types.CurrentAsset)
		require.NotNil(t, err)
		assert.Equal(t, types.LedgerUnavailable, err.ErrorCode)
	})

	t.Run("malformed input never reaches the ledger", func(t *testing.T) {
		env := newTestEnv(t, payoutNow)
		for _, args := range [][3]string{
			{"xyz", staker, "1000"},
			{stakeHash, "not-an-address", "1000"},
			{stakeHash, staker, "-5"},
		} {
			_, err := env.services.ValidateStakeTransaction(context.Background(), args[0], args[1], args[2], types.CurrentAsset)
			require.NotNil(t, err)
			assert.Equal(t, types.ValidationError, err.ErrorCode)
		}
	})
}

func TestRecordStake(t *testing.T) {
	env := newTestEnv(t, payoutNow)
	env.db.On("FindStakeOptionByID", mock.Anything, 2).Return(&model.StakeOptionDocument{
		ID: 2, DurationMonths: 6, RewardPercentage: "12", Visible: false,
	}, nil).Once()
	env.ledger.On("GetTransaction", mock.Anything, stakeHash).Return(stakeTransaction(), nil).Once()
	env.db.On("SaveStake", mock.Anything, mock.MatchedBy(func(s *model.StakeDocument) bool {
		return s.TransactionID == stakeHash && s.Status == "PENDING" && s.DurationMonths == 6 &&
			s.RewardPercentage == "12" && s.CreatedAt.Equal(stakeCloseTime) && s.AssetEpoch == "current" &&
			s.Amount == "1000"
	})).Return(nil).Once()

	stake, err := env.services.RecordStake(context.Background(), stakeHash, staker, "1000", 2, types.CurrentAsset)
	require.Nil(t, err)
	assert.Equal(t, "PENDING", stake.Status)
	assert.True(t, time.Date(2024, time.July, 15, 9, 30, 0, 0, time.UTC).Equal(stake.MaturesAt))
}

func TestRecordStake_Duplicate(t *testing.T) {
	env := newTestEnv(t, payoutNow)
	env.db.On("FindStakeOptionByID", mock.Anything, 1).Return(&model.StakeOptionDocument{
		ID: 1, DurationMonths: 3, RewardPercentage: "5", Visible: true,
	}, nil).Once()
	env.ledger.On("GetTransaction", mock.Anything, stakeHash).Return(stakeTransaction(), nil).Once()
	env.db.On("SaveStake", mock.Anything, mock.Anything).Return(duplicateKey()).Once()

	_, err := env.services.RecordStake(context.Background(), stakeHash, staker, "1000", 1, types.CurrentAsset)
	require.NotNil(t, err)
	assert.Equal(t, types.Forbidden, err.ErrorCode)
	assert.Equal(t, http.StatusForbidden, err.StatusCode)
}

func TestRecordStake_UnknownOption(t *testing.T) {
	env := newTestEnv(t, payoutNow)
	env.db.On("FindStakeOptionByID", mock.Anything, 9).Return(nil, notFound()).Once()

	_, err := env.services.RecordStake(context.Background(), stakeHash, staker, "1000", 9, types.CurrentAsset)
	require.NotNil(t, err)
	assert.Equal(t, types.ValidationError, err.ErrorCode)
	env.ledger.AssertNotCalled(t, "GetTransaction", mock.Anything, mock.Anything)
}
