package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anonymousnfts/stake-reward-service/internal/db/model"
)

func (db *Database) SaveUnpublishedEvent(ctx context.Context, queueName, messageBody string) error {
	client := db.collection(model.UnpublishedEventCollection)

	_, err := client.InsertOne(ctx, model.NewUnpublishedEventDocument(queueName, messageBody, db.now()))
	if err != nil {
		return err
	}

	return nil
}

func (db *Database) FindUnpublishedEvents(ctx context.Context) ([]model.UnpublishedEventDocument, error) {
	client := db.collection(model.UnpublishedEventCollection)
	opts := options.Find().SetSort(bson.M{"created_at": 1})

	cursor, err := client.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []model.UnpublishedEventDocument
	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}

	return events, nil
}

func (db *Database) DeleteUnpublishedEvent(ctx context.Context, id primitive.ObjectID) error {
	client := db.collection(model.UnpublishedEventCollection)
	_, err := client.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
