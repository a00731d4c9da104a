package model

import "time"

const RewardHistoryCollection = "reward_history"

// NotSentTransactionID marks a history entry whose payout never reached the ledger.
const NotSentTransactionID = "NOT_SENT"

// PlannedNote marks the entry written for every recipient before a
// distribution sends anything.
const PlannedNote = "planned"

type RewardHistoryDocument struct {
	ID                  string    `bson:"_id"`
	Period              string    `bson:"period"`
	PayoutTransactionID string    `bson:"payout_transaction_id"`
	RecipientAddress    string    `bson:"recipient_address"`
	VerifiedAccountID   string    `bson:"verified_account_id"`
	Amount              string    `bson:"amount"`
	Success             bool      `bson:"success"`
	Note                string    `bson:"note"`
	Timestamp           time.Time `bson:"timestamp"`
}
