package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/anonymousnfts/stake-reward-service/internal/clients/xrpl"
	"github.com/anonymousnfts/stake-reward-service/internal/types"
	"github.com/anonymousnfts/stake-reward-service/internal/utils"
)

// stakedIssue is the token a stake of the given epoch must be paid in.
func (s *Services) stakedIssue(epoch types.AssetEpoch) xrpl.Issue {
	issuer := s.cfg.Treasury.Issuer
	if epoch == types.LegacyAsset {
		issuer = s.cfg.Treasury.LegacyIssuer
	}
	return xrpl.Issue{Currency: s.cfg.Treasury.Currency, Issuer: issuer}
}

// ValidateStakeTransaction checks that txHash is a validated, successful
// payment of exactly amount of the staked token from fromAddress to the
// treasury. The amount must also be what the treasury received: a partial
// payment may deliver far less than its Amount. The first field that
// disagrees is reported in a TransactionInvalid error.
func (s *Services) ValidateStakeTransaction(
	ctx context.Context, txHash, fromAddress, amount string, epoch types.AssetEpoch,
) (*xrpl.Transaction, *types.Error) {
	if !utils.IsValidTxHash(txHash) {
		return nil, types.NewValidationError(fmt.Sprintf("invalid transaction hash %q", txHash))
	}
	if !utils.IsValidXrplAddress(fromAddress) {
		return nil, types.NewValidationError(fmt.Sprintf("invalid address %q", fromAddress))
	}
	if _, ok := utils.ParsePositiveAmount(amount); !ok {
		return nil, types.NewValidationError(fmt.Sprintf("invalid amount %q", amount))
	}

	tx, err := s.Ledger.GetTransaction(ctx, txHash)
	if err != nil {
		if err.ErrorCode == types.NotFound {
			log.Ctx(ctx).Warn().Str("txHash", txHash).Msg("stake transaction not found on the ledger")
			return nil, types.NewTransactionInvalidError("hash", txHash, "")
		}
		return nil, err
	}

	issue := s.stakedIssue(epoch)
	delivered, deliveredOK := deliveredValue(tx, issue, amount)
	checks := []struct {
		field    string
		expected string
		actual   string
		ok       bool
	}{
		{"validated", "true", fmt.Sprint(tx.Validated), tx.Validated},
		{"type", xrpl.TransactionTypePayment, tx.TransactionType, tx.TransactionType == xrpl.TransactionTypePayment},
		{"hash", txHash, tx.Hash, strings.EqualFold(tx.Hash, txHash)},
		{"account", fromAddress, tx.Account, tx.Account == fromAddress},
		{"destination", s.cfg.Treasury.Account, tx.Destination, tx.Destination == s.cfg.Treasury.Account},
		{"currency", issue.Currency, tx.Amount.Currency, tx.Amount.Currency == issue.Currency},
		{"issuer", issue.Issuer, tx.Amount.Issuer, tx.Amount.Issuer == issue.Issuer},
		{"amount", amount, tx.Amount.Value, tx.Amount.Value == amount},
		{"result", xrpl.ResultSuccess, tx.Result, tx.Result == xrpl.ResultSuccess},
		{"delivered_amount", amount, delivered, deliveredOK},
	}
	for _, c := range checks {
		if !c.ok {
			log.Ctx(ctx).Warn().Str("txHash", txHash).Str("field", c.field).
				Str("expected", c.expected).Str("actual", c.actual).
				Bool("partialPayment", tx.IsPartialPayment()).Msg("stake transaction rejected")
			return nil, types.NewTransactionInvalidError(c.field, c.expected, c.actual)
		}
	}
	return tx, nil
}

// deliveredValue renders the delivered amount for error reporting and reports
// whether it is exactly amount of issue. A missing delivered amount never
// matches.
func deliveredValue(tx *xrpl.Transaction, issue xrpl.Issue, amount string) (string, bool) {
	d := tx.DeliveredAmount
	if d == nil {
		return "", false
	}
	if d.Currency != issue.Currency || d.Issuer != issue.Issuer {
		return fmt.Sprintf("%s %s/%s", d.Value, d.Currency, d.Issuer), false
	}
	return d.Value, d.Value == amount
}
