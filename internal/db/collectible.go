package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/anonymousnfts/stake-reward-service/internal/db/model"
)

func findAll[T any](ctx context.Context, db *Database, collection string) ([]T, error) {
	cursor, err := db.collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []T
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (db *Database) FindPrimaryCollectibles(ctx context.Context) ([]model.PrimaryCollectibleDocument, error) {
	return findAll[model.PrimaryCollectibleDocument](ctx, db, model.PrimaryCollectibleCollection)
}

func (db *Database) FindSecondaryCollectibles(ctx context.Context) ([]model.SecondaryCollectibleDocument, error) {
	return findAll[model.SecondaryCollectibleDocument](ctx, db, model.SecondaryCollectibleCollection)
}
