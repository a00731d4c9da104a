package clients

import (
	"context"

	"github.com/anonymousnfts/stake-reward-service/internal/clients/evm"
	"github.com/anonymousnfts/stake-reward-service/internal/clients/xrpl"
	"github.com/anonymousnfts/stake-reward-service/internal/config"
)

type Clients struct {
	Ledger    xrpl.LedgerClientInterface
	Ownership evm.OwnershipClientInterface
}

func New(ctx context.Context, cfg *config.Config) (*Clients, error) {
	ledgerClient := xrpl.NewXrplClient(&cfg.Ledger, cfg.Treasury.Account, cfg.Treasury.Secret)
	ownershipClient, err := evm.NewEvmClient(ctx, &cfg.SecondaryChain)
	if err != nil {
		return nil, err
	}

	return &Clients{
		Ledger:    ledgerClient,
		Ownership: ownershipClient,
	}, nil
}
