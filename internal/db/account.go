package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anonymousnfts/stake-reward-service/internal/db/model"
)

func (db *Database) findVerifiedAccount(ctx context.Context, filter bson.M, key string) (*model.VerifiedAccountDocument, error) {
	client := db.collection(model.VerifiedAccountCollection)
	var account model.VerifiedAccountDocument
	err := client.FindOne(ctx, filter).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     key,
				Message: "Verified account not found",
			}
		}
		return nil, err
	}
	return &account, nil
}

func (db *Database) FindVerifiedAccountByPrimary(ctx context.Context, address string) (*model.VerifiedAccountDocument, error) {
	return db.findVerifiedAccount(ctx, bson.M{"primary_address": address}, address)
}

func (db *Database) FindVerifiedAccountBySecondary(ctx context.Context, address string) (*model.VerifiedAccountDocument, error) {
	return db.findVerifiedAccount(ctx, bson.M{"secondary_address": address}, address)
}

// SavePrimaryVerification upserts the primary score. An account already
// verified in period does not match the filter, so the upsert collides with
// the unique primary_address index instead of overwriting it.
func (db *Database) SavePrimaryVerification(ctx context.Context, address, points, period string) error {
	client := db.collection(model.VerifiedAccountCollection)
	filter := bson.M{
		"primary_address":         address,
		"primary_verified_period": bson.M{"$ne": period},
	}
	update := bson.M{
		"$set": bson.M{
			"primary_points":          points,
			"primary_verified_period": period,
		},
		"$setOnInsert": bson.M{"_id": uuid.NewString()},
	}
	_, err := client.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &DuplicateKeyError{
				Key:     address,
				Message: "Primary account already verified for " + period,
			}
		}
		return err
	}
	return nil
}

func (db *Database) SaveSecondaryVerification(
	ctx context.Context, secondaryAddress, primaryAddress, points, period string,
) error {
	transactionWork := func(sessCtx mongo.SessionContext) (interface{}, error) {
		client := db.collection(model.VerifiedAccountCollection)
		scoreUpdate := bson.M{
			"secondary_points":          points,
			"secondary_verified_period": period,
		}

		linked, err := db.FindVerifiedAccountBySecondary(sessCtx, secondaryAddress)
		if err != nil && !IsNotFoundError(err) {
			return nil, err
		}
		if linked != nil {
			if primaryAddress != "" && linked.PrimaryAddress != primaryAddress {
				return nil, &DuplicateKeyError{
					Key:     secondaryAddress,
					Message: "Secondary address is linked to another primary account",
				}
			}
			if linked.SecondaryVerifiedPeriod == period {
				return nil, &DuplicateKeyError{
					Key:     secondaryAddress,
					Message: "Secondary account already verified for " + period,
				}
			}
			_, err = client.UpdateOne(sessCtx, bson.M{"_id": linked.ID}, bson.M{"$set": scoreUpdate})
			return nil, err
		}

		if primaryAddress == "" {
			return nil, &NotFoundError{
				Key:     secondaryAddress,
				Message: "Secondary address is not linked to a primary account",
			}
		}
		primary, err := db.FindVerifiedAccountByPrimary(sessCtx, primaryAddress)
		if err != nil {
			return nil, err
		}
		scoreUpdate["secondary_address"] = secondaryAddress
		_, err = client.UpdateOne(sessCtx, bson.M{"_id": primary.ID}, bson.M{"$set": scoreUpdate})
		if err != nil && mongo.IsDuplicateKeyError(err) {
			return nil, &DuplicateKeyError{
				Key:     secondaryAddress,
				Message: "Secondary address is linked to another primary account",
			}
		}
		return nil, err
	}

	_, err := db.txWithRetries(ctx, transactionWork)
	return err
}

// FindVerifiedAccountsByPeriod returns every account verified on either chain in period.
func (db *Database) FindVerifiedAccountsByPeriod(ctx context.Context, period string) ([]model.VerifiedAccountDocument, error) {
	client := db.collection(model.VerifiedAccountCollection)
	filter := bson.M{"$or": []bson.M{
		{"primary_verified_period": period},
		{"secondary_verified_period": period},
	}}
	opts := options.Find().SetSort(bson.M{"_id": 1})

	cursor, err := client.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var accounts []model.VerifiedAccountDocument
	if err = cursor.All(ctx, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}
