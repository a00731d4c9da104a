package model

const (
	PrimaryCollectibleCollection   = "primary_collectibles"
	SecondaryCollectibleCollection = "secondary_collectibles"
)

// PrimaryCollectibleDocument assigns points to an NFToken taxon.
type PrimaryCollectibleDocument struct {
	Taxon  uint32 `bson:"_id"`
	Name   string `bson:"name,omitempty"`
	Points string `bson:"points"`
}

// SecondaryCollectibleDocument is one ERC-721 token with its abbreviation and
// group.
type SecondaryCollectibleDocument struct {
	ID              string `bson:"_id"`
	ContractAddress string `bson:"contract_address"`
	TokenID         string `bson:"token_id"`
	Abbreviation    string `bson:"abbreviation"`
	Points          string `bson:"points"`
	Group           int    `bson:"group"`
}
