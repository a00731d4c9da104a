package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/shopspring/decimal"

	"github.com/anonymousnfts/stake-reward-service/internal/config"
	"github.com/anonymousnfts/stake-reward-service/internal/db"
	"github.com/anonymousnfts/stake-reward-service/internal/services"
	"github.com/anonymousnfts/stake-reward-service/internal/types"
	"github.com/anonymousnfts/stake-reward-service/internal/utils"
	"github.com/anonymousnfts/stake-reward-service/tests/mocks"
)

const (
	treasuryAccount = "rTreasuryAccount1111111111111"
	tokenIssuer     = "rTokenIssuer22222222222222222"
	legacyIssuer    = "rLegacyIssuer3333333333333333"
	nftIssuer       = "rNftIssuer444444444444444444"
	tokenCurrency   = "ABC"
	staker          = "rStaker5555555555555555555555"
)

type testEnv struct {
	services *services.Services
	db       *mocks.DBClient
	ledger   *mocks.LedgerClientInterface
	owner    *mocks.OwnershipClientInterface
	clock    *clock.Mock
	cfg      *config.Config
}

func testConfig() *config.Config {
	return &config.Config{
		Ledger: config.LedgerConfig{
			RpcUrl:               "http://localhost:5005",
			SigningRpcUrl:        "http://localhost:5005",
			Timeout:              1000,
			FinalityPollInterval: time.Second,
			FinalityMaxPolls:     3,
			LastLedgerOffset:     20,
			AccountTxLimit:       200,
		},
		Treasury: config.TreasuryConfig{
			Account:      treasuryAccount,
			Secret:       "sSecret",
			Currency:     tokenCurrency,
			Issuer:       tokenIssuer,
			LegacyIssuer: legacyIssuer,
			NftIssuer:    nftIssuer,
			RewardMemo:   "reward",
		},
		Settlement: config.SettlementConfig{
			Timezone:         "UTC",
			MaturityInterval: 5 * time.Minute,
			DistributionCron: "0 0 1 * *",
			DistributionRate: "0.5",
			Location:         time.UTC,
			Rate:             decimal.RequireFromString("0.5"),
		},
	}
}

func testParams() *types.PointsParams {
	return &types.PointsParams{
		PrimarySetOne: []string{"1", "2"},
		PrimarySetTwo: []string{"3", "4"},
		SecondaryCompletionSets: [][]string{
			{"B1", "B2"},
			{"B2", "B3"},
			{"B1", "B3"},
		},
	}
}

func newTestEnv(t *testing.T, now time.Time) *testEnv {
	setSleep(t, func(time.Duration) {})

	env := &testEnv{
		db:     mocks.NewDBClient(t),
		ledger: mocks.NewLedgerClientInterface(t),
		owner:  mocks.NewOwnershipClientInterface(t),
		clock:  clock.NewMock(),
		cfg:    testConfig(),
	}
	env.clock.Set(now)
	env.services = services.NewWithDependencies(
		env.cfg, testParams(), env.db, env.ledger, env.owner, nil, env.clock,
	)
	return env
}

func notFound() *db.NotFoundError {
	return &db.NotFoundError{Key: "k", Message: "not found"}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func setSleep(t *testing.T, f func(time.Duration)) {
	utils.SetSleepFunc(func(_ context.Context, d time.Duration) error {
		f(d)
		return nil
	})
	t.Cleanup(utils.ResetSleepFunc)
}

func duplicateKey() *db.DuplicateKeyError {
	return &db.DuplicateKeyError{Key: "k", Message: "already exists"}
}
