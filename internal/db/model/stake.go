package model

import "time"

const (
	StakeOptionCollection = "stake_options"
	StakeCollection       = "stakes"
)

// StakeOptionDocument is seeded administratively and only read by the service.
type StakeOptionDocument struct {
	ID               int    `bson:"_id"`
	DurationMonths   int    `bson:"duration_months"`
	RewardPercentage string `bson:"reward_percentage"`
	Visible          bool   `bson:"visible"`
}

type StakeDocument struct {
	TransactionID string `bson:"_id"` // Primary key
	FromAddress   string `bson:"from_address"`
	ToAddress     string `bson:"to_address"`
	Amount        string `bson:"amount"`
	AssetEpoch    string `bson:"asset_epoch"`
	OptionID      int    `bson:"option_id"`
	// Terms of the option at the time the stake was recorded.
	DurationMonths   int       `bson:"duration_months"`
	RewardPercentage string    `bson:"reward_percentage"`
	CreatedAt        time.Time `bson:"created_at"`
	Status           string    `bson:"status"`

	RewardTransactionID string     `bson:"reward_transaction_id,omitempty"`
	RewardAmount        string     `bson:"reward_amount,omitempty"`
	RewardedAt          *time.Time `bson:"rewarded_at,omitempty"`
}

type StakeByAddressPagination struct {
	CreatedAt     time.Time `json:"created_at"`
	TransactionID string    `json:"transaction_id"`
}

func BuildStakeByAddressPaginationToken(d StakeDocument) (string, error) {
	page := &StakeByAddressPagination{
		CreatedAt:     d.CreatedAt,
		TransactionID: d.TransactionID,
	}
	token, err := GetPaginationToken(page)
	if err != nil {
		return "", err
	}
	return token, nil
}
