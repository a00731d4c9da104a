package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbjohnson/clock"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/anonymousnfts/stake-reward-service/cmd/stake-reward-service/cli"
	"github.com/anonymousnfts/stake-reward-service/cmd/stake-reward-service/scripts"
	"github.com/anonymousnfts/stake-reward-service/internal/api"
	"github.com/anonymousnfts/stake-reward-service/internal/clients"
	"github.com/anonymousnfts/stake-reward-service/internal/config"
	"github.com/anonymousnfts/stake-reward-service/internal/db/model"
	"github.com/anonymousnfts/stake-reward-service/internal/observability/healthcheck"
	"github.com/anonymousnfts/stake-reward-service/internal/observability/metrics"
	"github.com/anonymousnfts/stake-reward-service/internal/queue"
	"github.com/anonymousnfts/stake-reward-service/internal/scheduler"
	"github.com/anonymousnfts/stake-reward-service/internal/services"
	"github.com/anonymousnfts/stake-reward-service/internal/types"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("failed to load .env file")
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// setup cli commands and flags
	if err := cli.Setup(); err != nil {
		log.Fatal().Err(err).Msg("error while setting up cli")
	}

	// load config
	cfgPath := cli.GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	paramsPath := cli.GetPointsParamsPath()
	params, err := types.NewPointsParams(paramsPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading points params file: %s", paramsPath))
	}

	metrics.Init(cfg.Metrics.Address())

	err = model.Setup(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up stake db model")
	}

	clients, err := clients.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up ledger clients")
	}

	queues, err := queue.New(cfg.Queue)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up queues")
	}
	defer queues.Close()

	services, err := services.New(ctx, cfg, params, clients, queues)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up stake services layer")
	}

	// one-shot maintenance commands
	if cli.GetReplayFlag() {
		log.Info().Msg("Replay flag is set. Starting replay of unpublished events.")
		if err := scripts.ReplayUnpublishedEvents(ctx, services); err != nil {
			log.Fatal().Err(err).Msg("error while replaying unpublished events")
		}
		return
	}
	if period := cli.GetRetryFailedRewardsPeriod(); period != "" {
		log.Info().Str("period", period).Msg("Retrying failed rewards.")
		if err := scripts.RetryFailedRewards(ctx, services, period); err != nil {
			log.Fatal().Err(err).Msg("error while retrying failed rewards")
		}
		return
	}
	if cli.GetRunDistributionFlag() {
		log.Info().Msg("Running the distribution once.")
		if err := scripts.RunDistribution(ctx, services); err != nil {
			log.Fatal().Err(err).Msg("error while running the distribution")
		}
		return
	}

	healthcheck.SetLogger(log.With().Str("component", "healthcheck").Logger())
	checkers := []healthcheck.Checker{
		healthcheck.NewChecker("db", services.DoHealthCheck),
		healthcheck.NewChecker("queue", func(context.Context) error { return queues.IsConnectionHealthy() }),
		healthcheck.NewChecker("ledger", services.LedgerHealthCheck),
	}
	if err := healthcheck.StartHealthCheckCron(ctx, checkers, cfg.Server.HealthCheckInterval); err != nil {
		log.Fatal().Err(err).Msg("error while starting health check cron")
	}

	jobs, err := newScheduler(cfg, services)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up scheduler")
	}
	jobs.Start(ctx)
	defer jobs.Stop()

	apiServer, err := api.New(ctx, cfg, services)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up stake api service")
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GetShutdownTimeout())
		defer cancel()
		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("error while shutting down stake api service")
		}
	}()
	if err = apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("error while starting stake api service")
	}
}

func newScheduler(cfg *config.Config, s *services.Services) (*scheduler.Scheduler, error) {
	jobs := scheduler.New(clock.New(), cfg.Settlement.Location)

	err := jobs.Every("maturity-sweep", cfg.Settlement.MaturityInterval, func(ctx context.Context) {
		summary, err := s.RunMaturitySweep(ctx)
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("maturity sweep failed")
			return
		}
		log.Ctx(ctx).Info().Interface("summary", summary).Msg("maturity sweep done")
	})
	if err != nil {
		return nil, err
	}

	err = jobs.Cron("monthly-distribution", cfg.Settlement.DistributionCron, func(ctx context.Context) {
		summary, err := s.RunMonthlyDistribution(ctx)
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("monthly distribution failed")
			return
		}
		log.Ctx(ctx).Info().Interface("summary", summary).Msg("monthly distribution done")
	})
	if err != nil {
		return nil, err
	}
	return jobs, nil
}
