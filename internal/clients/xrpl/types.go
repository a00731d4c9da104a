package xrpl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	NativeCurrency = "XRP"
	dropsPerXRP    = 1_000_000

	TransactionTypePayment = "Payment"
	ResultSuccess          = "tesSUCCESS"

	// FlagPartialPayment lets a Payment deliver less than its Amount.
	FlagPartialPayment uint32 = 0x00020000
)

// Issue identifies an asset on the ledger. Issuer is empty for XRP.
type Issue struct {
	Currency string `json:"currency"`
	Issuer   string `json:"issuer,omitempty"`
}

func (i Issue) IsNative() bool {
	return i.Currency == NativeCurrency
}

// Amount is an XRP amount in drops or an issued-currency amount. On the wire
// XRP is a bare drops string and issued currencies are objects; both decode
// into this one shape.
type Amount struct {
	Currency string
	Issuer   string
	Value    string
}

func NewIssuedAmount(issue Issue, value decimal.Decimal) Amount {
	return Amount{Currency: issue.Currency, Issuer: issue.Issuer, Value: value.String()}
}

func (a Amount) Issue() Issue {
	return Issue{Currency: a.Currency, Issuer: a.Issuer}
}

func (a Amount) IsNative() bool {
	return a.Currency == NativeCurrency
}

// Decimal returns the amount in whole units, converting drops to XRP.
func (a Amount) Decimal() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(a.Value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount value %q: %w", a.Value, err)
	}
	if a.IsNative() {
		return d.Shift(-6), nil
	}
	return d, nil
}

// SameValue compares asset and numeric value, so "1120" equals "1120.0".
func (a Amount) SameValue(other Amount) bool {
	if a.Currency != other.Currency || a.Issuer != other.Issuer {
		return false
	}
	x, errX := decimal.NewFromString(a.Value)
	y, errY := decimal.NewFromString(other.Value)
	if errX != nil || errY != nil {
		return false
	}
	return x.Equal(y)
}

type issuedAmount struct {
	Currency string `json:"currency"`
	Issuer   string `json:"issuer"`
	Value    string `json:"value"`
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var drops string
		if err := json.Unmarshal(b, &drops); err != nil {
			return err
		}
		*a = Amount{Currency: NativeCurrency, Value: drops}
		return nil
	}
	var issued issuedAmount
	if err := json.Unmarshal(b, &issued); err != nil {
		return fmt.Errorf("unsupported amount encoding: %w", err)
	}
	*a = Amount(issued)
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if a.IsNative() {
		return json.Marshal(a.Value)
	}
	return json.Marshal(issuedAmount(a))
}

// Transaction is the normalized view of a ledger transaction. Fields the
// service never looks at are dropped.
type Transaction struct {
	Hash            string
	TransactionType string
	Account         string
	Destination     string
	DestinationTag  *uint32
	Flags           uint32
	// Amount is what the sender asked to send. For a partial payment it is
	// only an upper bound.
	Amount Amount
	// DeliveredAmount is what the destination received, from the metadata.
	// Nil when the ledger did not report it.
	DeliveredAmount *Amount
	// Validated is true once the transaction is in a validated ledger.
	Validated bool
	// Result is the final engine result from the metadata, empty when unknown.
	Result      string
	LedgerIndex uint32
	CloseTime   time.Time
}

func (tx *Transaction) Succeeded() bool {
	return tx.Validated && tx.Result == ResultSuccess
}

func (tx *Transaction) IsPartialPayment() bool {
	return tx.Flags&FlagPartialPayment != 0
}

type TrustLine struct {
	// Peer is the counterparty of the line, i.e. the issuer for a holder.
	Peer     string
	Currency string
	Balance  decimal.Decimal
	Limit    decimal.Decimal
}

type AccountInfo struct {
	Address string
	// Balance is the XRP balance in whole XRP.
	Balance  decimal.Decimal
	Sequence uint32
}

type NFToken struct {
	ID     string
	Issuer string
	Taxon  uint32
}

type BookOffer struct {
	TakerGets Amount
	TakerPays Amount
}

type PaymentRequest struct {
	Destination        string
	DestinationTag     uint32
	Amount             Amount
	LastLedgerSequence uint32
	Memo               string
}

// SubmitResult reports the outcome of a payment submission. Finalized is
// true when OutcomeCode is definitive, either from a validated ledger or
// because the transaction was rejected without being applied.
type SubmitResult struct {
	Finalized   bool
	OutcomeCode string
	TxHash      string
}

func (r *SubmitResult) Succeeded() bool {
	return r.Finalized && r.OutcomeCode == ResultSuccess
}

// PaymentQuery describes a payment to look for in an account's history.
type PaymentQuery struct {
	Account        string
	Destination    string
	DestinationTag uint32
	Amount         Amount
	// Oldest ledger worth scanning.
	MinLedger uint32
}
