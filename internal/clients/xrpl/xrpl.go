package xrpl

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	baseclient "github.com/anonymousnfts/stake-reward-service/internal/clients/base"
	"github.com/anonymousnfts/stake-reward-service/internal/config"
	"github.com/anonymousnfts/stake-reward-service/internal/types"
	"github.com/anonymousnfts/stake-reward-service/internal/utils"
)

// maxPages bounds marker pagination so one lookup cannot walk an unbounded
// history.
const maxPages = 20

type XrplClient struct {
	config     *config.LedgerConfig
	baseURL    string
	signer     string
	secret     string
	httpClient *http.Client
	// submitter targets the signing node. It is the only client that sends
	// the secret.
	submitter *XrplClient
}

// NewXrplClient creates a ledger client. Reads go to cfg.RpcUrl. SubmitPayment
// signs as signer with secret through the node at cfg.SigningRpcUrl.
func NewXrplClient(cfg *config.LedgerConfig, signer, secret string) *XrplClient {
	httpClient := &http.Client{}
	return &XrplClient{
		config:     cfg,
		baseURL:    cfg.RpcUrl,
		signer:     signer,
		httpClient: httpClient,
		submitter: &XrplClient{
			config:     cfg,
			baseURL:    cfg.SigningRpcUrl,
			signer:     signer,
			secret:     secret,
			httpClient: httpClient,
		},
	}
}

// Necessary for the BaseClient interface
func (c *XrplClient) GetClientName() string {
	return "xrpl"
}

func (c *XrplClient) GetBaseURL() string {
	return strings.TrimRight(c.baseURL, "/")
}

func (c *XrplClient) GetDefaultRequestTimeout() int {
	return c.config.Timeout
}

func (c *XrplClient) GetHttpClient() *http.Client {
	return c.httpClient
}

type statusCarrier interface {
	status() rpcStatus
}

func (s rpcStatus) status() rpcStatus { return s }

// call performs one JSON-RPC request and maps failures onto the gateway's
// error codes.
func call[P any, R statusCarrier](ctx context.Context, c *XrplClient, method string, params P) (*R, *types.Error) {
	opts := &baseclient.BaseClientOptions{Path: "/", Operation: method}
	req := &rpcRequest[P]{Method: method, Params: []P{params}}

	resp, err := baseclient.SendRequest[rpcRequest[P], rpcResponse[R]](ctx, c, http.MethodPost, opts, req)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("method", method).Msg("ledger request failed")
		if baseclient.IsUnavailable(err) {
			return nil, types.NewLedgerUnavailableError(fmt.Errorf("ledger %s request failed: %w", method, err))
		}
		return nil, types.NewInternalServiceError(fmt.Errorf("ledger %s request failed: %w", method, err))
	}

	st := resp.Result.status()
	if st.failed() {
		switch st.Error {
		case errTxnNotFound, errActNotFound:
			return nil, types.NewErrorWithMsg(http.StatusNotFound, types.NotFound, st.Error)
		case "tooBusy", "noNetwork", "noCurrent", "noClosed", "lgrNotFound", "slowDown":
			return nil, types.NewLedgerUnavailableError(fmt.Errorf("ledger %s: %s", method, st.Error))
		default:
			return nil, types.NewInternalServiceError(
				fmt.Errorf("ledger %s failed: %s %s", method, st.Error, st.ErrorMessage),
			)
		}
	}
	return &resp.Result, nil
}

func (c *XrplClient) GetTransaction(ctx context.Context, hash string) (*Transaction, *types.Error) {
	res, err := call[txParams, txResult](ctx, c, "tx", txParams{Transaction: hash})
	if err != nil {
		return nil, err
	}
	return normalizeTransaction(&res.rawTxFields, res.TxJSON, res.Hash, res.Meta, res.Validated, res.LedgerIndex), nil
}

func (c *XrplClient) GetTrustLines(ctx context.Context, address string) ([]TrustLine, *types.Error) {
	var lines []TrustLine
	params := accountParams{Account: address, LedgerIndex: "validated"}
	for page := 0; page < maxPages; page++ {
		res, err := call[accountParams, accountLinesResult](ctx, c, "account_lines", params)
		if err != nil {
			return nil, err
		}
		for _, l := range res.Lines {
			balance, parseErr := decimal.NewFromString(l.Balance)
			if parseErr != nil {
				return nil, types.NewInternalServiceError(fmt.Errorf("invalid trust line balance %q", l.Balance))
			}
			limit, parseErr := decimal.NewFromString(l.Limit)
			if parseErr != nil {
				limit = decimal.Zero
			}
			lines = append(lines, TrustLine{
				Peer:     l.Account,
				Currency: l.Currency,
				Balance:  balance,
				Limit:    limit,
			})
		}
		if len(res.Marker) == 0 {
			return lines, nil
		}
		params.Marker = res.Marker
	}
	log.Ctx(ctx).Warn().Str("address", address).Msg("trust line listing truncated")
	return lines, nil
}

func (c *XrplClient) GetAccountInfo(ctx context.Context, address string) (*AccountInfo, *types.Error) {
	res, err := call[accountParams, accountInfoResult](
		ctx, c, "account_info", accountParams{Account: address, LedgerIndex: "validated"},
	)
	if err != nil {
		return nil, err
	}
	drops, parseErr := decimal.NewFromString(res.AccountData.Balance)
	if parseErr != nil {
		return nil, types.NewInternalServiceError(fmt.Errorf("invalid account balance %q", res.AccountData.Balance))
	}
	return &AccountInfo{
		Address:  res.AccountData.Account,
		Balance:  drops.Div(decimal.NewFromInt(dropsPerXRP)),
		Sequence: res.AccountData.Sequence,
	}, nil
}

func (c *XrplClient) GetAccountNFTs(ctx context.Context, address string) ([]NFToken, *types.Error) {
	var tokens []NFToken
	params := accountParams{Account: address, LedgerIndex: "validated", Limit: 400}
	for page := 0; page < maxPages; page++ {
		res, err := call[accountParams, accountNFTsResult](ctx, c, "account_nfts", params)
		if err != nil {
			return nil, err
		}
		for _, n := range res.AccountNFTs {
			tokens = append(tokens, NFToken{ID: n.NFTokenID, Issuer: n.Issuer, Taxon: n.NFTokenTaxon})
		}
		if len(res.Marker) == 0 {
			return tokens, nil
		}
		params.Marker = res.Marker
	}
	log.Ctx(ctx).Warn().Str("address", address).Msg("nft listing truncated")
	return tokens, nil
}

func (c *XrplClient) GetBookOffers(ctx context.Context, takerGets, takerPays Issue, limit int) ([]BookOffer, *types.Error) {
	res, err := call[bookOffersParams, bookOffersResult](ctx, c, "book_offers", bookOffersParams{
		TakerGets: takerGets,
		TakerPays: takerPays,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}
	offers := make([]BookOffer, 0, len(res.Offers))
	for _, o := range res.Offers {
		offers = append(offers, BookOffer{TakerGets: o.TakerGets, TakerPays: o.TakerPays})
	}
	return offers, nil
}

func (c *XrplClient) GetValidatedLedgerIndex(ctx context.Context) (uint32, *types.Error) {
	res, err := call[ledgerParams, ledgerResult](ctx, c, "ledger", ledgerParams{LedgerIndex: "validated"})
	if err != nil {
		return 0, err
	}
	if res.LedgerIndex == 0 {
		return 0, types.NewLedgerUnavailableError(fmt.Errorf("ledger reported no validated ledger"))
	}
	return uint32(res.LedgerIndex), nil
}

func (c *XrplClient) GetServerState(ctx context.Context) (string, *types.Error) {
	res, err := call[struct{}, serverInfoResult](ctx, c, "server_info", struct{}{})
	if err != nil {
		return "", err
	}
	return res.Info.ServerState, nil
}

func (c *XrplClient) FindPayment(ctx context.Context, query PaymentQuery) (*Transaction, *types.Error) {
	minLedger := int64(-1)
	if query.MinLedger > 0 {
		minLedger = int64(query.MinLedger)
	}
	params := accountTxParams{
		Account:        query.Account,
		LedgerIndexMin: minLedger,
		LedgerIndexMax: -1,
		Limit:          c.config.AccountTxLimit,
	}
	for page := 0; page < maxPages; page++ {
		res, err := call[accountTxParams, accountTxResult](ctx, c, "account_tx", params)
		if err != nil {
			return nil, err
		}
		for _, entry := range res.Transactions {
			tx := normalizeTransaction(entry.Tx, entry.TxJSON, entry.Hash, entry.Meta, entry.Validated, entry.LedgerIndex)
			if matchesPayment(tx, query) {
				return tx, nil
			}
		}
		if len(res.Marker) == 0 {
			return nil, nil
		}
		params.Marker = res.Marker
	}
	return nil, types.NewLedgerUnavailableError(
		fmt.Errorf("account history of %s exceeds scan limit", query.Account),
	)
}

func matchesPayment(tx *Transaction, q PaymentQuery) bool {
	return tx.Validated &&
		tx.TransactionType == TransactionTypePayment &&
		tx.Account == q.Account &&
		tx.Destination == q.Destination &&
		tx.DestinationTag != nil && *tx.DestinationTag == q.DestinationTag &&
		tx.Amount.SameValue(q.Amount)
}

func (c *XrplClient) SubmitPayment(ctx context.Context, req PaymentRequest) (*SubmitResult, *types.Error) {
	txJSON := submitTxJSON{
		TransactionType:    TransactionTypePayment,
		Account:            c.signer,
		Destination:        req.Destination,
		DestinationTag:     req.DestinationTag,
		Amount:             req.Amount,
		LastLedgerSequence: req.LastLedgerSequence,
	}
	if req.Memo != "" {
		var memo rawMemo
		memo.Memo.MemoData = strings.ToUpper(hex.EncodeToString([]byte(req.Memo)))
		txJSON.Memos = []rawMemo{memo}
	}

	s := c.submitter
	res, err := call[submitParams, submitResult](ctx, s, "submit", submitParams{TxJSON: txJSON, Secret: s.secret})
	if err != nil {
		return nil, err
	}

	result := &SubmitResult{
		OutcomeCode: res.EngineResult,
		TxHash:      res.TxJSON.Hash,
	}
	log.Ctx(ctx).Debug().
		Str("txHash", result.TxHash).
		Str("engineResult", res.EngineResult).
		Msg("payment submitted")

	if isMalformed(res.EngineResult) {
		result.Finalized = true
		return result, nil
	}
	if result.TxHash == "" {
		return result, nil
	}

	for attempt := 0; attempt < c.config.FinalityMaxPolls; attempt++ {
		if err := utils.Sleep(ctx, c.config.FinalityPollInterval); err != nil {
			break
		}
		tx, txErr := c.GetTransaction(ctx, result.TxHash)
		if txErr != nil {
			// Not yet known or a transient failure, keep polling.
			continue
		}
		if tx.Validated {
			result.Finalized = true
			result.OutcomeCode = tx.Result
			return result, nil
		}
	}

	log.Ctx(ctx).Warn().
		Str("txHash", result.TxHash).
		Dur("waited", time.Duration(c.config.FinalityMaxPolls)*c.config.FinalityPollInterval).
		Msg("payment not validated before finality timeout")
	return result, nil
}

// isMalformed reports tem results, the only preliminary class that is final:
// the transaction can never be included in a ledger. tef and tel results are
// provisional until LastLedgerSequence passes, so they go through the normal
// finality wait.
func isMalformed(engineResult string) bool {
	return strings.HasPrefix(engineResult, "tem")
}
