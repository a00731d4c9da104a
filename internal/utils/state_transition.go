package utils

import (
	"github.com/anonymousnfts/stake-reward-service/internal/types"
)

// QualifiedStatesToPaid returns the qualified existing states to transition to "PAID"
func QualifiedStatesToPaid() []types.StakeStatus {
	return []types.StakeStatus{types.StakePending}
}
