package client

import "time"

type EventType int

const (
	StakePaidEventType         EventType = 1
	RewardDistributedEventType EventType = 2
)

type Event interface {
	GetEventType() EventType
}

type StakePaidEvent struct {
	EventType           EventType `json:"event_type"` // always 1
	StakeTransactionID  string    `json:"stake_transaction_id"`
	Address             string    `json:"address"`
	StakedAmount        string    `json:"staked_amount"`
	RewardAmount        string    `json:"reward_amount"`
	RewardTransactionID string    `json:"reward_transaction_id"`
	RewardedAt          time.Time `json:"rewarded_at"`
}

func NewStakePaidEvent(
	stakeTxID, address, stakedAmount, rewardAmount, rewardTxID string, rewardedAt time.Time,
) StakePaidEvent {
	return StakePaidEvent{
		EventType:           StakePaidEventType,
		StakeTransactionID:  stakeTxID,
		Address:             address,
		StakedAmount:        stakedAmount,
		RewardAmount:        rewardAmount,
		RewardTransactionID: rewardTxID,
		RewardedAt:          rewardedAt,
	}
}

func (e StakePaidEvent) GetEventType() EventType {
	return StakePaidEventType
}

type RewardDistributedEvent struct {
	EventType           EventType `json:"event_type"` // always 2
	Period              string    `json:"period"`
	VerifiedAccountID   string    `json:"verified_account_id"`
	Address             string    `json:"address"`
	Amount              string    `json:"amount"`
	PayoutTransactionID string    `json:"payout_transaction_id"`
	Success             bool      `json:"success"`
}

func NewRewardDistributedEvent(
	period, accountID, address, amount, payoutTxID string, success bool,
) RewardDistributedEvent {
	return RewardDistributedEvent{
		EventType:           RewardDistributedEventType,
		Period:              period,
		VerifiedAccountID:   accountID,
		Address:             address,
		Amount:              amount,
		PayoutTransactionID: payoutTxID,
		Success:             success,
	}
}

func (e RewardDistributedEvent) GetEventType() EventType {
	return RewardDistributedEventType
}
