package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anonymousnfts/stake-reward-service/internal/db/model"
)

// InsertRewardHistory appends one entry. History entries are never updated.
func (db *Database) InsertRewardHistory(ctx context.Context, entry *model.RewardHistoryDocument) error {
	client := db.collection(model.RewardHistoryCollection)
	_, err := client.InsertOne(ctx, entry)
	return err
}

// InsertRewardPlan appends the planned entries of a distribution in one
// transaction: either the whole plan is stored or none of it.
func (db *Database) InsertRewardPlan(ctx context.Context, entries []*model.RewardHistoryDocument) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]interface{}, len(entries))
	for i, e := range entries {
		docs[i] = e
	}
	_, err := db.txWithRetries(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		client := db.collection(model.RewardHistoryCollection)
		return client.InsertMany(sessCtx, docs)
	})
	return err
}

func (db *Database) FindRewardHistoryByPeriod(ctx context.Context, period string) ([]model.RewardHistoryDocument, error) {
	client := db.collection(model.RewardHistoryCollection)
	opts := options.Find().SetSort(bson.M{"timestamp": 1})

	cursor, err := client.Find(ctx, bson.M{"period": period}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []model.RewardHistoryDocument
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (db *Database) CountRewardHistoryByPeriod(ctx context.Context, period string) (int64, error) {
	client := db.collection(model.RewardHistoryCollection)
	return client.CountDocuments(ctx, bson.M{"period": period})
}
