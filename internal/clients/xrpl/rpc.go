package xrpl

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/anonymousnfts/stake-reward-service/internal/utils"
)

// JSON-RPC envelope of rippled: {"method": m, "params": [p]} -> {"result": r}.
type rpcRequest[P any] struct {
	Method string `json:"method"`
	Params []P    `json:"params"`
}

type rpcResponse[R any] struct {
	Result R `json:"result"`
}

type rpcStatus struct {
	Status       string `json:"status"`
	Error        string `json:"error"`
	ErrorMessage string `json:"error_message"`
}

func (s rpcStatus) failed() bool {
	return s.Status == "error" || s.Error != ""
}

const (
	errTxnNotFound = "txnNotFound"
	errActNotFound = "actNotFound"
)

type rawMemo struct {
	Memo struct {
		MemoData string `json:"MemoData"`
	} `json:"Memo"`
}

// rawTxFields holds the transaction body. API v1 returns it flat inside the
// result (or under "tx" in account_tx); API v2 nests it under "tx_json" and
// renames Payment.Amount to DeliverMax.
type rawTxFields struct {
	Hash               string    `json:"hash"`
	TransactionType    string    `json:"TransactionType"`
	Flags              uint32    `json:"Flags,omitempty"`
	Account            string    `json:"Account"`
	Destination        string    `json:"Destination"`
	DestinationTag     *uint32   `json:"DestinationTag,omitempty"`
	Amount             *Amount   `json:"Amount,omitempty"`
	DeliverMax         *Amount   `json:"DeliverMax,omitempty"`
	LastLedgerSequence uint32    `json:"LastLedgerSequence,omitempty"`
	Memos              []rawMemo `json:"Memos,omitempty"`
	Date               *int64    `json:"date,omitempty"`
}

type rawMeta struct {
	TransactionResult string          `json:"TransactionResult"`
	DeliveredAmount   json.RawMessage `json:"delivered_amount"`
}

// txOutcome is what the metadata says happened.
type txOutcome struct {
	result    string
	delivered *Amount
}

// parseMeta reads the engine result and delivered amount from metadata.
// Metadata may be an object or a hex blob when binary output was requested;
// the blob is not decoded and yields an empty outcome. delivered_amount is
// "unavailable" for transactions older than the field, which also leaves it
// nil.
func parseMeta(raw json.RawMessage) txOutcome {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return txOutcome{}
	}
	var meta rawMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return txOutcome{}
	}
	out := txOutcome{result: meta.TransactionResult}
	delivered := bytes.TrimSpace(meta.DeliveredAmount)
	if len(delivered) == 0 || string(delivered) == "null" || string(delivered) == `"unavailable"` {
		return out
	}
	var amount Amount
	if err := json.Unmarshal(delivered, &amount); err == nil {
		out.delivered = &amount
	}
	return out
}

// ledgerIndex accepts a ledger index encoded as a number or a string.
type ledgerIndex uint32

func (l *ledgerIndex) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	if len(b) == 0 || string(b) == "null" {
		*l = 0
		return nil
	}
	v, err := strconv.ParseUint(string(b), 10, 32)
	if err != nil {
		return err
	}
	*l = ledgerIndex(v)
	return nil
}

type txParams struct {
	Transaction string `json:"transaction"`
	Binary      bool   `json:"binary"`
	APIVersion  int    `json:"api_version,omitempty"`
}

type txResult struct {
	rpcStatus
	rawTxFields
	TxJSON      *rawTxFields    `json:"tx_json"`
	Meta        json.RawMessage `json:"meta"`
	Validated   bool            `json:"validated"`
	LedgerIndex ledgerIndex     `json:"ledger_index"`
}

type accountTxEntry struct {
	Tx          *rawTxFields    `json:"tx"`
	TxJSON      *rawTxFields    `json:"tx_json"`
	Hash        string          `json:"hash"`
	Meta        json.RawMessage `json:"meta"`
	Validated   bool            `json:"validated"`
	LedgerIndex ledgerIndex     `json:"ledger_index"`
}

// normalizeTransaction folds both payload shapes into a Transaction.
func normalizeTransaction(
	flat *rawTxFields, nested *rawTxFields, hash string, meta json.RawMessage,
	validated bool, ledger ledgerIndex,
) *Transaction {
	fields := flat
	if nested != nil {
		fields = nested
	}
	if fields == nil {
		fields = &rawTxFields{}
	}

	outcome := parseMeta(meta)
	tx := &Transaction{
		Hash:            hash,
		TransactionType: fields.TransactionType,
		Flags:           fields.Flags,
		Account:         fields.Account,
		Destination:     fields.Destination,
		DestinationTag:  fields.DestinationTag,
		DeliveredAmount: outcome.delivered,
		Validated:       validated,
		Result:          outcome.result,
		LedgerIndex:     uint32(ledger),
	}
	if tx.Hash == "" {
		tx.Hash = fields.Hash
	}
	switch {
	case fields.Amount != nil:
		tx.Amount = *fields.Amount
	case fields.DeliverMax != nil:
		tx.Amount = *fields.DeliverMax
	}
	if fields.Date != nil {
		tx.CloseTime = utils.RippleTimeToTime(*fields.Date)
	}
	return tx
}

type accountParams struct {
	Account     string          `json:"account"`
	LedgerIndex string          `json:"ledger_index,omitempty"`
	Limit       int             `json:"limit,omitempty"`
	Marker      json.RawMessage `json:"marker,omitempty"`
}

type accountLinesResult struct {
	rpcStatus
	Lines []struct {
		Account  string `json:"account"`
		Balance  string `json:"balance"`
		Currency string `json:"currency"`
		Limit    string `json:"limit"`
	} `json:"lines"`
	Marker json.RawMessage `json:"marker"`
}

type accountInfoResult struct {
	rpcStatus
	AccountData struct {
		Account  string `json:"Account"`
		Balance  string `json:"Balance"`
		Sequence uint32 `json:"Sequence"`
	} `json:"account_data"`
}

type accountNFTsResult struct {
	rpcStatus
	AccountNFTs []struct {
		NFTokenID    string `json:"NFTokenID"`
		Issuer       string `json:"Issuer"`
		NFTokenTaxon uint32 `json:"NFTokenTaxon"`
	} `json:"account_nfts"`
	Marker json.RawMessage `json:"marker"`
}

type accountTxParams struct {
	Account        string          `json:"account"`
	LedgerIndexMin int64           `json:"ledger_index_min"`
	LedgerIndexMax int64           `json:"ledger_index_max"`
	Limit          int             `json:"limit"`
	Forward        bool            `json:"forward"`
	Marker         json.RawMessage `json:"marker,omitempty"`
}

type accountTxResult struct {
	rpcStatus
	Transactions []accountTxEntry `json:"transactions"`
	Marker       json.RawMessage  `json:"marker"`
}

type bookOffersParams struct {
	TakerGets Issue `json:"taker_gets"`
	TakerPays Issue `json:"taker_pays"`
	Limit     int   `json:"limit"`
}

type bookOffersResult struct {
	rpcStatus
	Offers []struct {
		TakerGets Amount `json:"TakerGets"`
		TakerPays Amount `json:"TakerPays"`
	} `json:"offers"`
}

type ledgerParams struct {
	LedgerIndex string `json:"ledger_index"`
}

type ledgerResult struct {
	rpcStatus
	LedgerIndex ledgerIndex `json:"ledger_index"`
	Validated   bool        `json:"validated"`
}

type serverInfoResult struct {
	rpcStatus
	Info struct {
		ServerState string `json:"server_state"`
	} `json:"info"`
}

type submitTxJSON struct {
	TransactionType    string    `json:"TransactionType"`
	Account            string    `json:"Account"`
	Destination        string    `json:"Destination"`
	DestinationTag     uint32    `json:"DestinationTag"`
	Amount             Amount    `json:"Amount"`
	LastLedgerSequence uint32    `json:"LastLedgerSequence,omitempty"`
	Memos              []rawMemo `json:"Memos,omitempty"`
}

type submitParams struct {
	TxJSON submitTxJSON `json:"tx_json"`
	Secret string       `json:"secret"`
}

type submitResult struct {
	rpcStatus
	EngineResult        string `json:"engine_result"`
	EngineResultMessage string `json:"engine_result_message"`
	TxJSON              struct {
		Hash string `json:"hash"`
	} `json:"tx_json"`
}
