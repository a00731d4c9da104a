package types

import "fmt"

type StakeStatus string

const (
	StakePending StakeStatus = "PENDING"
	StakePaid    StakeStatus = "PAID"
)

func (s StakeStatus) ToString() string {
	return string(s)
}

// AssetEpoch selects which issuer a staked token is expected to come from.
// The token was re-issued once; deposits of the legacy issue are still
// accepted on explicit request.
type AssetEpoch string

const (
	CurrentAsset AssetEpoch = "current"
	LegacyAsset  AssetEpoch = "legacy"
)

func (e AssetEpoch) ToString() string {
	return string(e)
}

func FromStringToAssetEpoch(s string) (AssetEpoch, error) {
	switch s {
	case "", "current":
		return CurrentAsset, nil
	case "legacy":
		return LegacyAsset, nil
	default:
		return "", fmt.Errorf("invalid asset epoch: %s", s)
	}
}

// CollectibleFamily identifies which chain's holdings are scored.
type CollectibleFamily string

const (
	// PrimaryFamily is scored from XRPL NFTokens grouped by taxon.
	PrimaryFamily CollectibleFamily = "primary"
	// SecondaryFamily is scored from ERC-721 tokens grouped by abbreviation.
	SecondaryFamily CollectibleFamily = "secondary"
)

func (f CollectibleFamily) ToString() string {
	return string(f)
}

func FromStringToCollectibleFamily(s string) (CollectibleFamily, error) {
	switch s {
	case "primary":
		return PrimaryFamily, nil
	case "secondary":
		return SecondaryFamily, nil
	default:
		return "", fmt.Errorf("invalid collectible family: %s", s)
	}
}
