package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/anonymousnfts/stake-reward-service/internal/config"
)

type Database struct {
	DbName string
	Client *mongo.Client
	cfg    config.DbConfig
	now    func() time.Time
}

type DbResultMap[T any] struct {
	Data            []T    `json:"data"`
	PaginationToken string `json:"paginationToken"`
}

// New connects and pings the primary, so a misconfigured address fails at
// startup instead of on the first request.
func New(ctx context.Context, cfg config.DbConfig) (*Database, error) {
	client, err := mongo.Connect(ctx, cfg.ClientOptions())
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DbName, err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, cfg.GetConnectTimeout())
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping %s: %w", cfg.DbName, err)
	}

	return &Database{
		DbName: cfg.DbName,
		Client: client,
		cfg:    cfg,
		now:    time.Now,
	}, nil
}

func (db *Database) Ping(ctx context.Context) error {
	return db.Client.Ping(ctx, readpref.Primary())
}

func (db *Database) Disconnect(ctx context.Context) error {
	return db.Client.Disconnect(ctx)
}

func (db *Database) collection(name string) *mongo.Collection {
	return db.Client.Database(db.DbName).Collection(name)
}

func (db *Database) txWithRetries(
	ctx context.Context, txnFunc func(sessCtx mongo.SessionContext) (interface{}, error),
) (interface{}, error) {
	return TxWithRetries(ctx, &dbTransactionClient{db.Client}, txnFunc)
}

// toResultMapWithPaginationToken sets a token only when the page came back
// full, i.e. there may be more rows after the last one.
func toResultMapWithPaginationToken[T any](
	cfg config.DbConfig, result []T, paginationKeyBuilder func(T) (string, error),
) (*DbResultMap[T], error) {
	page := &DbResultMap[T]{Data: result}
	if len(result) == 0 || int64(len(result)) < cfg.MaxPaginationLimit {
		return page, nil
	}
	token, err := paginationKeyBuilder(result[len(result)-1])
	if err != nil {
		return nil, err
	}
	page.PaginationToken = token
	return page, nil
}
