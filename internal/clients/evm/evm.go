package evm

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/anonymousnfts/stake-reward-service/internal/config"
	"github.com/anonymousnfts/stake-reward-service/internal/observability/metrics"
	"github.com/anonymousnfts/stake-reward-service/internal/types"
)

const erc721OwnerOfABI = `[{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"ownerOf",` +
	`"outputs":[{"name":"owner","type":"address"}],"stateMutability":"view","type":"function"}]`

var erc721ABI = mustParseABI(erc721OwnerOfABI)

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(err)
	}
	return parsed
}

type EvmClient struct {
	config *config.SecondaryChainConfig
	caller ethereum.ContractCaller
}

// NewEvmClient dials the secondary chain. For http endpoints no connection is
// made until the first call.
func NewEvmClient(ctx context.Context, cfg *config.SecondaryChainConfig) (*EvmClient, error) {
	client, err := ethclient.DialContext(ctx, cfg.RpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to dial secondary chain: %w", err)
	}
	return NewEvmClientWithCaller(cfg, client), nil
}

func NewEvmClientWithCaller(cfg *config.SecondaryChainConfig, caller ethereum.ContractCaller) *EvmClient {
	return &EvmClient{config: cfg, caller: caller}
}

func (c *EvmClient) OwnerOf(ctx context.Context, token TokenRef) (string, *types.Error) {
	if !common.IsHexAddress(token.Contract) {
		return "", types.NewValidationError(fmt.Sprintf("invalid contract address %q", token.Contract))
	}
	id, ok := new(big.Int).SetString(token.TokenID, 10)
	if !ok || id.Sign() < 0 {
		return "", types.NewValidationError(fmt.Sprintf("invalid token id %q", token.TokenID))
	}

	data, err := erc721ABI.Pack("ownerOf", id)
	if err != nil {
		return "", types.NewInternalServiceError(err)
	}
	contract := common.HexToAddress(token.Contract)

	callCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()
	observe := metrics.StartClientRequestDurationTimer("evm", "ownerOf")
	out, err := c.caller.CallContract(callCtx, ethereum.CallMsg{To: &contract, Data: data}, nil)
	if err != nil {
		observe(metrics.Error)
		if isReverted(err) {
			return "", types.NewErrorWithMsg(http.StatusNotFound, types.NotFound,
				fmt.Sprintf("token %s/%s does not exist", token.Contract, token.TokenID))
		}
		return "", types.NewLedgerUnavailableError(fmt.Errorf("ownerOf %s/%s: %w", token.Contract, token.TokenID, err))
	}

	observe(metrics.Success)

	values, err := erc721ABI.Unpack("ownerOf", out)
	if err != nil || len(values) != 1 {
		return "", types.NewInternalServiceError(fmt.Errorf("malformed ownerOf response for %s/%s", token.Contract, token.TokenID))
	}
	owner, ok := values[0].(common.Address)
	if !ok {
		return "", types.NewInternalServiceError(fmt.Errorf("unexpected ownerOf output type %T", values[0]))
	}
	return strings.ToLower(owner.Hex()), nil
}

func (c *EvmClient) HeldTokens(ctx context.Context, owner string, candidates []TokenRef) ([]TokenRef, *types.Error) {
	if !common.IsHexAddress(owner) {
		return nil, types.NewValidationError(fmt.Sprintf("invalid address %q", owner))
	}
	want := strings.ToLower(common.HexToAddress(owner).Hex())

	// Each goroutine writes only its own index.
	held := make([]bool, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.config.MaxConcurrency)
	for i, token := range candidates {
		g.Go(func() error {
			got, err := c.OwnerOf(gctx, token)
			if err != nil {
				if err.ErrorCode == types.NotFound {
					return nil
				}
				return err
			}
			if got == want {
				held[i] = true
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var typed *types.Error
		if errors.As(err, &typed) {
			return nil, typed
		}
		return nil, types.NewInternalServiceError(err)
	}

	var result []TokenRef
	for i, token := range candidates {
		if held[i] {
			result = append(result, token)
		}
	}
	log.Ctx(ctx).Debug().
		Str("owner", want).
		Int("candidates", len(candidates)).
		Int("held", len(result)).
		Msg("secondary chain holdings resolved")
	return result, nil
}

// isReverted reports an execution revert, which ERC-721 contracts return
// from ownerOf for burned or never-minted tokens.
func isReverted(err error) bool {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		return true
	}
	return strings.Contains(err.Error(), "execution reverted")
}
