package db

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anonymousnfts/stake-reward-service/internal/db/model"
)

// NextDestinationTag atomically increments the persisted tag counter and
// returns the new value. Tags start at 1 and wrap before overflowing uint32.
func (db *Database) NextDestinationTag(ctx context.Context) (uint32, error) {
	client := db.collection(model.CounterCollection)
	filter := bson.M{"_id": model.DestinationTagCounterID}
	update := bson.M{"$inc": bson.M{"value": int64(1)}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var counter model.CounterDocument
	if err := client.FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter); err != nil {
		return 0, fmt.Errorf("failed to increment destination tag: %w", err)
	}
	return uint32((counter.Value-1)%math.MaxUint32) + 1, nil
}

func (db *Database) SavePayoutAttempt(ctx context.Context, attempt *model.PayoutAttemptDocument) error {
	client := db.collection(model.PayoutAttemptCollection)
	filter := bson.M{"_id": attempt.Reference}
	_, err := client.ReplaceOne(ctx, filter, attempt, options.Replace().SetUpsert(true))
	return err
}

// FindPayoutAttempt returns a NotFoundError if there is no open attempt for reference.
func (db *Database) FindPayoutAttempt(ctx context.Context, reference string) (*model.PayoutAttemptDocument, error) {
	client := db.collection(model.PayoutAttemptCollection)
	var attempt model.PayoutAttemptDocument
	err := client.FindOne(ctx, bson.M{"_id": reference}).Decode(&attempt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     reference,
				Message: "Payout attempt not found",
			}
		}
		return nil, err
	}
	return &attempt, nil
}

func (db *Database) DeletePayoutAttempt(ctx context.Context, reference string) error {
	client := db.collection(model.PayoutAttemptCollection)
	_, err := client.DeleteOne(ctx, bson.M{"_id": reference})
	return err
}
