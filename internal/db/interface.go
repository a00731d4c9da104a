package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anonymousnfts/stake-reward-service/internal/db/model"
)

type DBClient interface {
	Ping(ctx context.Context) error

	FindStakeOptions(ctx context.Context, visibleOnly bool) ([]model.StakeOptionDocument, error)
	// FindStakeOptionByID returns a NotFoundError if no option has the id.
	FindStakeOptionByID(ctx context.Context, id int) (*model.StakeOptionDocument, error)

	// SaveStake returns a DuplicateKeyError if the transaction was already recorded.
	SaveStake(ctx context.Context, stake *model.StakeDocument) error
	FindStakesByAddress(
		ctx context.Context, address string, paginationToken string,
	) (*DbResultMap[model.StakeDocument], error)
	FindPendingStakes(ctx context.Context) ([]model.StakeDocument, error)
	// TransitionStakeToPaid settles a pending stake. It returns a NotFoundError
	// if the stake does not exist or is no longer pending.
	TransitionStakeToPaid(
		ctx context.Context, txHash, rewardTxHash, rewardAmount string, rewardedAt time.Time,
	) error

	NextDestinationTag(ctx context.Context) (uint32, error)
	SavePayoutAttempt(ctx context.Context, attempt *model.PayoutAttemptDocument) error
	FindPayoutAttempt(ctx context.Context, reference string) (*model.PayoutAttemptDocument, error)
	DeletePayoutAttempt(ctx context.Context, reference string) error

	FindVerifiedAccountByPrimary(ctx context.Context, address string) (*model.VerifiedAccountDocument, error)
	FindVerifiedAccountBySecondary(ctx context.Context, address string) (*model.VerifiedAccountDocument, error)
	// SavePrimaryVerification records a primary-chain score for period. It
	// returns a DuplicateKeyError if the address was already verified in period.
	SavePrimaryVerification(ctx context.Context, address, points, period string) error
	// SaveSecondaryVerification records a secondary-chain score for period,
	// linking the secondary address to primaryAddress when it is not linked yet.
	SaveSecondaryVerification(
		ctx context.Context, secondaryAddress, primaryAddress, points, period string,
	) error
	FindVerifiedAccountsByPeriod(ctx context.Context, period string) ([]model.VerifiedAccountDocument, error)

	InsertRewardHistory(ctx context.Context, entry *model.RewardHistoryDocument) error
	InsertRewardPlan(ctx context.Context, entries []*model.RewardHistoryDocument) error
	FindRewardHistoryByPeriod(ctx context.Context, period string) ([]model.RewardHistoryDocument, error)
	CountRewardHistoryByPeriod(ctx context.Context, period string) (int64, error)

	FindPrimaryCollectibles(ctx context.Context) ([]model.PrimaryCollectibleDocument, error)
	FindSecondaryCollectibles(ctx context.Context) ([]model.SecondaryCollectibleDocument, error)

	SaveUnpublishedEvent(ctx context.Context, queueName, messageBody string) error
	FindUnpublishedEvents(ctx context.Context) ([]model.UnpublishedEventDocument, error)
	DeleteUnpublishedEvent(ctx context.Context, id primitive.ObjectID) error
}

type DBTransactionClient interface {
	StartSession(opts ...*options.SessionOptions) (DBSession, error)
}

type DBSession interface {
	EndSession(ctx context.Context)
	WithTransaction(
		ctx context.Context,
		fn func(sessCtx mongo.SessionContext) (interface{}, error),
		opts ...*options.TransactionOptions,
	) (interface{}, error)
}
