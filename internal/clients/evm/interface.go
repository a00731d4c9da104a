package evm

import (
	"context"

	"github.com/anonymousnfts/stake-reward-service/internal/types"
)

// TokenRef identifies one ERC-721 token on the secondary chain.
type TokenRef struct {
	Contract string
	TokenID  string
}

type OwnershipClientInterface interface {
	// OwnerOf returns the lower-cased owner address of the token.
	OwnerOf(ctx context.Context, token TokenRef) (string, *types.Error)
	// HeldTokens returns the subset of candidates owned by owner. Tokens that
	// no longer exist are treated as not held.
	HeldTokens(ctx context.Context, owner string, candidates []TokenRef) ([]TokenRef, *types.Error)
}
