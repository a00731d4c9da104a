package xrpl

import (
	"context"

	"github.com/anonymousnfts/stake-reward-service/internal/types"
)

// LedgerClientInterface is the gateway to the XRP Ledger. Errors carry one of
// three codes: types.LedgerUnavailable for transport failures and timeouts,
// types.NotFound when the ledger has no such object, and
// types.InternalServiceError for malformed responses. A non-success engine
// result is not an error; it is reported in SubmitResult.OutcomeCode or
// Transaction.Result.
type LedgerClientInterface interface {
	GetTransaction(ctx context.Context, hash string) (*Transaction, *types.Error)
	GetTrustLines(ctx context.Context, address string) ([]TrustLine, *types.Error)
	GetAccountInfo(ctx context.Context, address string) (*AccountInfo, *types.Error)
	GetAccountNFTs(ctx context.Context, address string) ([]NFToken, *types.Error)
	GetBookOffers(ctx context.Context, takerGets, takerPays Issue, limit int) ([]BookOffer, *types.Error)
	GetValidatedLedgerIndex(ctx context.Context) (uint32, *types.Error)
	// FindPayment scans the sending account's validated history for a
	// payment matching the query. It returns nil when none is found.
	FindPayment(ctx context.Context, query PaymentQuery) (*Transaction, *types.Error)
	// SubmitPayment signs and submits a payment from the configured signer and
	// waits a bounded time for it to be validated.
	SubmitPayment(ctx context.Context, req PaymentRequest) (*SubmitResult, *types.Error)
	GetServerState(ctx context.Context) (string, *types.Error)
}
