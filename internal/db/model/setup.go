package model

import (
	"context"
	"fmt"

	"github.com/anonymousnfts/stake-reward-service/internal/config"
	"github.com/rs/zerolog/log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type index struct {
	Keys   bson.D
	Unique bool
	// Sparse skips documents without the indexed field, so a unique index
	// tolerates many unset values.
	Sparse bool
}

var collections = map[string][]index{
	StakeOptionCollection: {{Keys: bson.D{{Key: "visible", Value: 1}}}},
	StakeCollection: {
		{Keys: bson.D{{Key: "from_address", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	},
	VerifiedAccountCollection: {
		{Keys: bson.D{{Key: "primary_address", Value: 1}}, Unique: true},
		{Keys: bson.D{{Key: "secondary_address", Value: 1}}, Unique: true, Sparse: true},
		{Keys: bson.D{{Key: "primary_verified_period", Value: 1}}},
		{Keys: bson.D{{Key: "secondary_verified_period", Value: 1}}},
	},
	RewardHistoryCollection: {
		{Keys: bson.D{{Key: "period", Value: 1}, {Key: "verified_account_id", Value: 1}}},
	},
	PayoutAttemptCollection:        {},
	CounterCollection:              {},
	PrimaryCollectibleCollection:   {},
	SecondaryCollectibleCollection: {{Keys: bson.D{{Key: "abbreviation", Value: 1}}}},
	UnpublishedEventCollection:     {{Keys: bson.D{{Key: "created_at", Value: 1}}}},
}

func Setup(ctx context.Context, cfg *config.Config) error {
	client, err := mongo.Connect(ctx, cfg.Db.ClientOptions())
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("failed to disconnect setup client")
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, cfg.Db.GetConnectTimeout())
	defer cancel()

	database := client.Database(cfg.Db.DbName)

	for collection := range collections {
		createCollection(ctx, database, collection)
	}

	for name, idxs := range collections {
		for _, idx := range idxs {
			createIndex(ctx, database, name, idx)
		}
	}

	log.Info().Msg("Collections and Indexes created successfully.")
	return nil
}

func createCollection(ctx context.Context, database *mongo.Database, collectionName string) {
	names, err := database.ListCollectionNames(ctx, bson.M{"name": collectionName})
	if err == nil && len(names) > 0 {
		log.Debug().Msg(fmt.Sprintf("Collection already exists: %s", collectionName))
		return
	}

	if err := database.CreateCollection(ctx, collectionName); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to create collection: " + collectionName)
		return
	}

	log.Debug().Msg("Collection created successfully: " + collectionName)
}

func createIndex(ctx context.Context, database *mongo.Database, collectionName string, idx index) {
	if len(idx.Keys) == 0 {
		return
	}

	index := mongo.IndexModel{
		Keys:    idx.Keys,
		Options: options.Index().SetUnique(idx.Unique).SetSparse(idx.Sparse),
	}

	if _, err := database.Collection(collectionName).Indexes().CreateOne(ctx, index); err != nil {
		log.Debug().Msg(fmt.Sprintf("Failed to create index on collection '%s': %v", collectionName, err))
		return
	}

	log.Debug().Msg("Index created successfully on collection: " + collectionName)
}
