package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anonymousnfts/stake-reward-service/internal/db/model"
	"github.com/anonymousnfts/stake-reward-service/internal/types"
	"github.com/anonymousnfts/stake-reward-service/internal/utils"
)

func (db *Database) FindStakeOptions(ctx context.Context, visibleOnly bool) ([]model.StakeOptionDocument, error) {
	client := db.collection(model.StakeOptionCollection)
	filter := bson.M{}
	if visibleOnly {
		filter["visible"] = true
	}
	opts := options.Find().SetSort(bson.M{"_id": 1})

	cursor, err := client.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stakeOptions []model.StakeOptionDocument
	if err = cursor.All(ctx, &stakeOptions); err != nil {
		return nil, err
	}
	return stakeOptions, nil
}

func (db *Database) FindStakeOptionByID(ctx context.Context, id int) (*model.StakeOptionDocument, error) {
	client := db.collection(model.StakeOptionCollection)
	var option model.StakeOptionDocument
	err := client.FindOne(ctx, bson.M{"_id": id}).Decode(&option)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     "stake option",
				Message: "Stake option not found",
			}
		}
		return nil, err
	}
	return &option, nil
}

func (db *Database) SaveStake(ctx context.Context, stake *model.StakeDocument) error {
	client := db.collection(model.StakeCollection)
	_, err := client.InsertOne(ctx, stake)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Return the custom error type so that we can return 4xx errors to client
			return &DuplicateKeyError{
				Key:     stake.TransactionID,
				Message: "Stake already exists",
			}
		}
		return err
	}
	return nil
}

// FindStakesByAddress lists the stakes sent from address, newest first.
func (db *Database) FindStakesByAddress(
	ctx context.Context, address string, paginationToken string,
) (*DbResultMap[model.StakeDocument], error) {
	client := db.collection(model.StakeCollection)

	filter := bson.M{"from_address": address}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(db.cfg.MaxPaginationLimit)

	if paginationToken != "" {
		decodedToken, err := model.DecodePaginationToken[model.StakeByAddressPagination](paginationToken)
		if err != nil {
			return nil, &InvalidPaginationTokenError{
				Message: "Invalid pagination token",
			}
		}
		filter["$or"] = []bson.M{
			{"created_at": bson.M{"$lt": decodedToken.CreatedAt}},
			{"created_at": decodedToken.CreatedAt, "_id": bson.M{"$gt": decodedToken.TransactionID}},
		}
	}

	cursor, err := client.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stakes []model.StakeDocument
	if err = cursor.All(ctx, &stakes); err != nil {
		return nil, err
	}

	return toResultMapWithPaginationToken(db.cfg, stakes, model.BuildStakeByAddressPaginationToken)
}

func (db *Database) FindPendingStakes(ctx context.Context) ([]model.StakeDocument, error) {
	client := db.collection(model.StakeCollection)
	filter := bson.M{"status": types.StakePending.ToString()}
	opts := options.Find().SetSort(bson.M{"created_at": 1})

	cursor, err := client.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stakes []model.StakeDocument
	if err = cursor.All(ctx, &stakes); err != nil {
		return nil, err
	}
	return stakes, nil
}

// TransitionStakeToPaid only matches a stake in one of the qualified states,
// so a stake is settled at most once.
func (db *Database) TransitionStakeToPaid(
	ctx context.Context, txHash, rewardTxHash, rewardAmount string, rewardedAt time.Time,
) error {
	client := db.collection(model.StakeCollection)

	qualified := utils.QualifiedStatesToPaid()
	eligible := make([]string, 0, len(qualified))
	for _, s := range qualified {
		eligible = append(eligible, s.ToString())
	}

	filter := bson.M{"_id": txHash, "status": bson.M{"$in": eligible}}
	update := bson.M{"$set": bson.M{
		"status":                types.StakePaid.ToString(),
		"reward_transaction_id": rewardTxHash,
		"reward_amount":         rewardAmount,
		"rewarded_at":           rewardedAt,
	}}
	res, err := client.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return &NotFoundError{
			Key:     txHash,
			Message: "Stake not found or not in eligible state to transition",
		}
	}
	return nil
}
