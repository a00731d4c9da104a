package services_test

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/anonymousnfts/stake-reward-service/internal/clients/evm"
	"github.com/anonymousnfts/stake-reward-service/internal/clients/xrpl"
	"github.com/anonymousnfts/stake-reward-service/internal/db/model"
	"github.com/anonymousnfts/stake-reward-service/internal/types"
)

const secondaryHolder = "0x00000000000000000000000000000000000000b0"

var verifyNow = time.Date(2024, time.April, 20, 0, 0, 0, 0, time.UTC)

func expectPrimaryHoldings(env *testEnv) {
	env.ledger.On("GetAccountNFTs", mock.Anything, staker).Return([]xrpl.NFToken{
		{ID: "N1", Issuer: nftIssuer, Taxon: 1},
		{ID: "N2", Issuer: nftIssuer, Taxon: 2},
		{ID: "N3", Issuer: holderA, Taxon: 3},
	}, nil).Once()
	env.db.On("FindPrimaryCollectibles", mock.Anything).Return([]model.PrimaryCollectibleDocument{
		{Taxon: 1, Points: "10"},
		{Taxon: 2, Points: "20"},
		{Taxon: 3, Points: "5"},
	}, nil).Once()
}

func TestGetAccountScore_Primary(t *testing.T) {
	env := newTestEnv(t, verifyNow)
	expectPrimaryHoldings(env)

	score, err := env.services.GetAccountScore(context.Background(), staker, types.PrimaryFamily)
	require.Nil(t, err)
	// Taxa 1 and 2 are exactly set one: 30 + 2 + 0.05 * 30.
	assert.Equal(t, "30", score.Score.BasePoints.String())
	assert.Equal(t, "3.5", score.Score.Bonus.SetOne.String())
	assert.Equal(t, "33.5", score.Score.TotalPoints.String())
}

func TestGetAccountScore_Secondary(t *testing.T) {
	env := newTestEnv(t, verifyNow)
	collectibles := []model.SecondaryCollectibleDocument{
		{ID: "a1", ContractAddress: "0xa", TokenID: "1", Abbreviation: "A1", Points: "10", Group: 1},
		{ID: "b1", ContractAddress: "0xb", TokenID: "1", Abbreviation: "B1", Points: "5", Group: 2},
		{ID: "b2", ContractAddress: "0xb", TokenID: "2", Abbreviation: "B2", Points: "5", Group: 2},
		{ID: "b3", ContractAddress: "0xb", TokenID: "3", Abbreviation: "B3", Points: "5", Group: 2},
		{ID: "c1", ContractAddress: "0xc", TokenID: "1", Abbreviation: "C1", Points: "10", Group: 3},
		{ID: "bad", ContractAddress: "0xd", TokenID: "1", Abbreviation: "D1", Points: "10", Group: 7},
	}
	env.db.On("FindSecondaryCollectibles", mock.Anything).Return(collectibles, nil).Once()
	env.owner.On("HeldTokens", mock.Anything, secondaryHolder, mock.MatchedBy(func(c []evm.TokenRef) bool {
		return len(c) == 5
	})).Return([]evm.TokenRef{
		{Contract: "0xa", TokenID: "1"},
		{Contract: "0xb", TokenID: "1"},
		{Contract: "0xb", TokenID: "2"},
		{Contract: "0xc", TokenID: "1"},
	}, nil).Once()

	score, err := env.services.GetAccountScore(context.Background(), secondaryHolder, types.SecondaryFamily)
	require.Nil(t, err)
	assert.Equal(t, "1.5", score.Score.Bonus.GroupOne.String())
	assert.Equal(t, "0.5", score.Score.Bonus.GroupTwoCompletion.String())
	assert.Equal(t, "35.2", score.Score.TotalPoints.String())
}

func TestGetAccountScore_SecondaryInconsistentPoints(t *testing.T) {
	env := newTestEnv(t, verifyNow)
	env.db.On("FindSecondaryCollectibles", mock.Anything).Return([]model.SecondaryCollectibleDocument{
		{ID: "a1", ContractAddress: "0xa", TokenID: "1", Abbreviation: "A1", Points: "10", Group: 1},
		{ID: "a1-dup", ContractAddress: "0xa", TokenID: "2", Abbreviation: "A1", Points: "40", Group: 1},
	}, nil).Once()
	env.owner.On("HeldTokens", mock.Anything, secondaryHolder, mock.Anything).
		Return([]evm.TokenRef{{Contract: "0xa", TokenID: "2"}}, nil).Once()

	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(context.Background())

	score, err := env.services.GetAccountScore(ctx, secondaryHolder, types.SecondaryFamily)
	require.Nil(t, err)
	assert.Equal(t, "10", score.Score.BasePoints.String())
	assert.Contains(t, buf.String(), "inconsistent points for abbreviation")
	assert.Contains(t, buf.String(), `"collectible":"a1-dup"`)
}

func TestGetAccountScore_InvalidInput(t *testing.T) {
	env := newTestEnv(t, verifyNow)

	_, err := env.services.GetAccountScore(context.Background(), "nope", types.PrimaryFamily)
	require.NotNil(t, err)
	assert.Equal(t, types.ValidationError, err.ErrorCode)

	_, err = env.services.GetAccountScore(context.Background(), staker, types.SecondaryFamily)
	require.NotNil(t, err)
	assert.Equal(t, types.ValidationError, err.ErrorCode)

	_, err = env.services.GetAccountScore(context.Background(), staker, types.CollectibleFamily("tertiary"))
	require.NotNil(t, err)
	assert.Equal(t, types.ValidationError, err.ErrorCode)
}

func TestVerifyPrimaryAccount(t *testing.T) {
	env := newTestEnv(t, verifyNow)
	expectPrimaryHoldings(env)
	env.db.On("SavePrimaryVerification", mock.Anything, staker, "33.5", "2024-04").Return(nil).Once()

	result, err := env.services.VerifyPrimaryAccount(context.Background(), staker)
	require.Nil(t, err)
	assert.Equal(t, "2024-04", result.Period)
	assert.Equal(t, "primary", result.Family)
}

func TestVerifyPrimaryAccount_OncePerPeriod(t *testing.T) {
	env := newTestEnv(t, verifyNow)
	expectPrimaryHoldings(env)
	env.db.On("SavePrimaryVerification", mock.Anything, staker, "33.5", "2024-04").Return(duplicateKey()).Once()

	_, err := env.services.VerifyPrimaryAccount(context.Background(), staker)
	require.NotNil(t, err)
	assert.Equal(t, types.Forbidden, err.ErrorCode)
	assert.Equal(t, http.StatusForbidden, err.StatusCode)
}

func TestVerifyPrimaryAccount_NothingHeld(t *testing.T) {
	env := newTestEnv(t, verifyNow)
	env.ledger.On("GetAccountNFTs", mock.Anything, staker).Return([]xrpl.NFToken{}, nil).Once()
	env.db.On("FindPrimaryCollectibles", mock.Anything).Return([]model.PrimaryCollectibleDocument{}, nil).Once()

	_, err := env.services.VerifyPrimaryAccount(context.Background(), staker)
	require.NotNil(t, err)
	assert.Equal(t, types.Forbidden, err.ErrorCode)
	env.db.AssertNotCalled(t, "SavePrimaryVerification", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func expectSecondaryHoldings(env *testEnv) {
	env.db.On("FindSecondaryCollectibles", mock.Anything).Return([]model.SecondaryCollectibleDocument{
		{ID: "a1", ContractAddress: "0xa", TokenID: "1", Abbreviation: "A1", Points: "10", Group: 1},
	}, nil).Once()
	env.owner.On("HeldTokens", mock.Anything, secondaryHolder, mock.Anything).
		Return([]evm.TokenRef{{Contract: "0xa", TokenID: "1"}}, nil).Once()
}

func TestVerifySecondaryAccount(t *testing.T) {
	env := newTestEnv(t, verifyNow)
	expectSecondaryHoldings(env)
	// 10 + 1 + 0.05 * 10
	env.db.On("SaveSecondaryVerification", mock.Anything, secondaryHolder, staker, "11.5", "2024-04").Return(nil).Once()

	result, err := env.services.VerifySecondaryAccount(context.Background(), secondaryHolder, staker)
	require.Nil(t, err)
	assert.Equal(t, "secondary", result.Family)
}

func TestVerifySecondaryAccount_PrimaryRequired(t *testing.T) {
	env := newTestEnv(t, verifyNow)
	expectSecondaryHoldings(env)
	env.db.On("SaveSecondaryVerification", mock.Anything, secondaryHolder, "", "11.5", "2024-04").
		Return(notFound()).Once()

	_, err := env.services.VerifySecondaryAccount(context.Background(), secondaryHolder, "")
	require.NotNil(t, err)
	assert.Equal(t, types.NotFound, err.ErrorCode)
}

func TestGetAccountBalance(t *testing.T) {
	env := newTestEnv(t, verifyNow)
	env.ledger.On("GetAccountInfo", mock.Anything, staker).
		Return(&xrpl.AccountInfo{Address: staker, Balance: dec("25.5"), Sequence: 3}, nil).Once()
	env.ledger.On("GetTrustLines", mock.Anything, staker).Return([]xrpl.TrustLine{rewardLine("42")}, nil).Once()

	balance, err := env.services.GetAccountBalance(context.Background(), staker)
	require.Nil(t, err)
	assert.True(t, balance.HasTrustLine)
	assert.Equal(t, "25.5", balance.Xrp.String())
	assert.Equal(t, "42", balance.Token.String())
}

func TestGetAccountBalance_UnknownAccount(t *testing.T) {
	env := newTestEnv(t, verifyNow)
	env.ledger.On("GetAccountInfo", mock.Anything, staker).
		Return(nil, types.NewErrorWithMsg(http.StatusNotFound, types.NotFound, "actNotFound")).Once()

	_, err := env.services.GetAccountBalance(context.Background(), staker)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
}

func TestGetTokenPrice(t *testing.T) {
	env := newTestEnv(t, verifyNow)
	env.ledger.On("GetBookOffers", mock.Anything,
		xrpl.Issue{Currency: tokenCurrency, Issuer: tokenIssuer}, xrpl.Issue{Currency: "XRP"}, 1,
	).Return([]xrpl.BookOffer{{
		TakerGets: xrpl.Amount{Currency: tokenCurrency, Issuer: tokenIssuer, Value: "200"},
		TakerPays: xrpl.Amount{Currency: "XRP", Value: "100000000"},
	}}, nil).Once()

	price, err := env.services.GetTokenPrice(context.Background())
	require.Nil(t, err)
	assert.Equal(t, "0.5", price.PriceXrp.String())
}

func TestGetTokenPrice_EmptyBook(t *testing.T) {
	env := newTestEnv(t, verifyNow)
	env.ledger.On("GetBookOffers", mock.Anything, mock.Anything, mock.Anything, 1).Return([]xrpl.BookOffer{}, nil).Once()

	_, err := env.services.GetTokenPrice(context.Background())
	require.NotNil(t, err)
	assert.Equal(t, types.NotFound, err.ErrorCode)
}
