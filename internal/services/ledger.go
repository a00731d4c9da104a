package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/anonymousnfts/stake-reward-service/internal/clients/xrpl"
	"github.com/anonymousnfts/stake-reward-service/internal/types"
	"github.com/anonymousnfts/stake-reward-service/internal/utils"
)

type AccountBalancePublic struct {
	Address      string          `json:"address"`
	Xrp          decimal.Decimal `json:"xrp"`
	Token        decimal.Decimal `json:"token"`
	Currency     string          `json:"currency"`
	HasTrustLine bool            `json:"has_trust_line"`
}

type TokenPricePublic struct {
	Currency string `json:"currency"`
	Issuer   string `json:"issuer"`
	// PriceXrp is the XRP asked for one token by the best offer of the book.
	PriceXrp decimal.Decimal `json:"price_xrp"`
}

func (s *Services) GetAccountBalance(ctx context.Context, address string) (*AccountBalancePublic, *types.Error) {
	if !utils.IsValidXrplAddress(address) {
		return nil, types.NewValidationError(fmt.Sprintf("invalid address %q", address))
	}
	info, err := s.Ledger.GetAccountInfo(ctx, address)
	if err != nil {
		if err.ErrorCode == types.NotFound {
			return nil, types.NewErrorWithMsg(http.StatusNotFound, types.NotFound, "account not found on the ledger")
		}
		return nil, err
	}
	lines, err := s.Ledger.GetTrustLines(ctx, address)
	if err != nil {
		return nil, err
	}

	balance := &AccountBalancePublic{
		Address:  address,
		Xrp:      info.Balance,
		Token:    decimal.Zero,
		Currency: s.cfg.Treasury.Currency,
	}
	if line := findTrustLine(lines, s.rewardIssue()); line != nil {
		balance.HasTrustLine = true
		balance.Token = line.Balance
	}
	return balance, nil
}

// GetTokenPrice quotes the reward token in XRP from the best offer selling
// the token.
func (s *Services) GetTokenPrice(ctx context.Context) (*TokenPricePublic, *types.Error) {
	issue := s.rewardIssue()
	offers, err := s.Ledger.GetBookOffers(ctx, issue, xrpl.Issue{Currency: xrpl.NativeCurrency}, 1)
	if err != nil {
		return nil, err
	}
	if len(offers) == 0 {
		return nil, types.NewErrorWithMsg(http.StatusNotFound, types.NotFound, "no offers for the token")
	}

	gets, gErr := offers[0].TakerGets.Decimal()
	pays, pErr := offers[0].TakerPays.Decimal()
	if gErr != nil || pErr != nil {
		return nil, types.NewInternalServiceError(errors.Join(gErr, pErr))
	}
	if !gets.IsPositive() {
		return nil, types.NewInternalServiceError(fmt.Errorf("best offer gets %s of the token", gets))
	}

	return &TokenPricePublic{
		Currency: issue.Currency,
		Issuer:   issue.Issuer,
		PriceXrp: pays.DivRound(gets, ledgerDecimals),
	}, nil
}
