package db

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver"

	"github.com/anonymousnfts/stake-reward-service/internal/utils"
)

const (
	// DefaultMaxAttempts counts the first execution.
	DefaultMaxAttempts    = 4
	DefaultInitialBackoff = 100 * time.Millisecond
	DefaultBackoffFactor  = 2
)

type dbTransactionClient struct {
	*mongo.Client
}

type dbSessionWrapper struct {
	mongo.Session
}

func (c *dbTransactionClient) StartSession(opts ...*options.SessionOptions) (DBSession, error) {
	session, err := c.Client.StartSession(opts...)
	if err != nil {
		return nil, err
	}
	return &dbSessionWrapper{session}, nil
}

func (s *dbSessionWrapper) EndSession(ctx context.Context) {
	s.Session.EndSession(ctx)
}

func (s *dbSessionWrapper) WithTransaction(
	ctx context.Context,
	fn func(sessCtx mongo.SessionContext) (interface{}, error),
	opts ...*options.TransactionOptions,
) (interface{}, error) {
	return s.Session.WithTransaction(ctx, fn, opts...)
}

// TxWithRetries runs txnFunc in a transaction, retrying transient failures
// with exponential backoff.
func TxWithRetries(
	ctx context.Context,
	dbTransactionClient DBTransactionClient,
	txnFunc func(sessCtx mongo.SessionContext) (interface{}, error),
) (interface{}, error) {
	var (
		result  interface{}
		err     error
		backoff = DefaultInitialBackoff
	)

	for attempt := 1; attempt <= DefaultMaxAttempts; attempt++ {
		session, sessionErr := dbTransactionClient.StartSession()
		if sessionErr != nil {
			return nil, sessionErr
		}

		result, err = session.WithTransaction(ctx, txnFunc)
		session.EndSession(ctx)

		if err != nil {
			if shouldRetry(err) && attempt < DefaultMaxAttempts {
				log.Ctx(ctx).Warn().Err(err).
					Int("attempt", attempt).
					Dur("backoff", backoff).
					Msg("transaction failed with retryable error")
				if sleepErr := utils.Sleep(ctx, backoff); sleepErr != nil {
					return nil, err
				}
				backoff *= DefaultBackoffFactor
				continue
			}
			log.Ctx(ctx).Debug().Err(err).Int("attempt", attempt).Msg("transaction failed")
			return nil, err
		}
		break
	}
	return result, nil
}

// shouldRetry accepts network and timeout failures, write conflicts, aborted
// transactions and anything the server labelled transient. Duplicate keys and
// other errors are final.
func shouldRetry(err error) bool {
	switch {
	case mongo.IsNetworkError(err), mongo.IsTimeout(err):
		return true
	case IsWriteConflictError(err), IsTransactionAbortedError(err):
		return true
	default:
		return hasErrorLabel(err, driver.TransientTransactionError)
	}
}
