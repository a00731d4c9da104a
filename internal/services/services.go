package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog/log"

	"github.com/anonymousnfts/stake-reward-service/internal/clients"
	"github.com/anonymousnfts/stake-reward-service/internal/clients/evm"
	"github.com/anonymousnfts/stake-reward-service/internal/clients/xrpl"
	"github.com/anonymousnfts/stake-reward-service/internal/config"
	"github.com/anonymousnfts/stake-reward-service/internal/db"
	"github.com/anonymousnfts/stake-reward-service/internal/queue"
	"github.com/anonymousnfts/stake-reward-service/internal/types"
)

// Service layer contains the business logic and is used to interact with
// the database and other external clients (if any).
type Services struct {
	DbClient  db.DBClient
	Ledger    xrpl.LedgerClientInterface
	Ownership evm.OwnershipClientInterface
	Queues    *queue.Queues
	Clock     clock.Clock
	Executor  *PayoutExecutor
	cfg       *config.Config
	params    *types.PointsParams
}

func New(
	ctx context.Context, cfg *config.Config, params *types.PointsParams,
	clients *clients.Clients, queues *queue.Queues,
) (*Services, error) {
	dbClient, err := db.New(ctx, cfg.Db)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("error while creating db client")
		return nil, err
	}
	return NewWithDependencies(
		cfg, params, dbClient, clients.Ledger, clients.Ownership, queues, clock.New(),
	), nil
}

// NewWithDependencies wires the service layer from already constructed
// collaborators.
func NewWithDependencies(
	cfg *config.Config, params *types.PointsParams, dbClient db.DBClient,
	ledger xrpl.LedgerClientInterface, ownership evm.OwnershipClientInterface,
	queues *queue.Queues, clk clock.Clock,
) *Services {
	return &Services{
		DbClient:  dbClient,
		Ledger:    ledger,
		Ownership: ownership,
		Queues:    queues,
		Clock:     clk,
		Executor:  NewPayoutExecutor(dbClient, ledger, clk, &cfg.Ledger, &cfg.Treasury),
		cfg:       cfg,
		params:    params,
	}
}

// DoHealthCheck checks the health of the services by ping the database.
func (s *Services) DoHealthCheck(ctx context.Context) error {
	return s.DbClient.Ping(ctx)
}

// Server states in which a rippled node follows the validated ledger. Other
// states (disconnected, connected, syncing) mean reads are stale and
// submissions cannot be tracked.
var healthyLedgerStates = []string{"full", "proposing", "validating", "tracking"}

// LedgerHealthCheck fails when the ledger node is unreachable or not in sync.
func (s *Services) LedgerHealthCheck(ctx context.Context) error {
	state, err := s.Ledger.GetServerState(ctx)
	if err != nil {
		return err
	}
	if !slices.Contains(healthyLedgerStates, state) {
		return fmt.Errorf("ledger node is %q", state)
	}
	return nil
}

// location is the zone in which calendar months and periods are evaluated.
func (s *Services) location() *time.Location {
	if s.cfg.Settlement.Location != nil {
		return s.cfg.Settlement.Location
	}
	return time.UTC
}

func (s *Services) now() time.Time {
	return s.Clock.Now().In(s.location())
}

// currentPeriod is the calendar month containing now.
func (s *Services) currentPeriod() types.Period {
	return types.PeriodOf(s.now())
}

func (s *Services) rewardIssue() xrpl.Issue {
	return xrpl.Issue{Currency: s.cfg.Treasury.Currency, Issuer: s.cfg.Treasury.Issuer}
}
