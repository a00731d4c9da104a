package model

const VerifiedAccountCollection = "verified_accounts"

// VerifiedAccountDocument holds the latest verified score of a holder on each
// chain. Points are decimal strings; periods are YYYY-MM.
type VerifiedAccountDocument struct {
	ID                      string `bson:"_id"`
	PrimaryAddress          string `bson:"primary_address"`
	SecondaryAddress        string `bson:"secondary_address,omitempty"`
	PrimaryPoints           string `bson:"primary_points"`
	PrimaryVerifiedPeriod   string `bson:"primary_verified_period"`
	SecondaryPoints         string `bson:"secondary_points,omitempty"`
	SecondaryVerifiedPeriod string `bson:"secondary_verified_period,omitempty"`
}
