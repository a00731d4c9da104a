package model

import "time"

const (
	PayoutAttemptCollection = "payout_attempts"
	CounterCollection       = "counters"
)

const DestinationTagCounterID = "destination_tag"

// PayoutAttemptDocument records a submission whose outcome is not yet known.
// It is written before the payment is submitted and removed once the outcome
// is definitive.
type PayoutAttemptDocument struct {
	Reference          string    `bson:"_id"`
	Destination        string    `bson:"destination"`
	Currency           string    `bson:"currency"`
	Issuer             string    `bson:"issuer"`
	Amount             string    `bson:"amount"`
	DestinationTag     uint32    `bson:"destination_tag"`
	TxHash             string    `bson:"tx_hash,omitempty"`
	SubmittedLedger    uint32    `bson:"submitted_ledger"`
	LastLedgerSequence uint32    `bson:"last_ledger_sequence"`
	SubmittedAt        time.Time `bson:"submitted_at"`
}

type CounterDocument struct {
	ID    string `bson:"_id"`
	Value int64  `bson:"value"`
}
