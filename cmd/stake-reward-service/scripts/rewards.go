package scripts

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/anonymousnfts/stake-reward-service/internal/services"
	"github.com/anonymousnfts/stake-reward-service/internal/types"
)

// RetryFailedRewards pays the accounts whose reward for period has only
// failed entries so far.
func RetryFailedRewards(ctx context.Context, s *services.Services, period string) error {
	p, err := types.ParsePeriod(period)
	if err != nil {
		return fmt.Errorf("invalid period %q: %w", period, err)
	}

	summary, retryErr := s.RetryFailedRewards(ctx, p)
	if retryErr != nil {
		return retryErr
	}
	return printSummary("Retry of failed rewards completed.", summary)
}

// RunDistribution runs the distribution for the previous period once.
func RunDistribution(ctx context.Context, s *services.Services) error {
	summary, err := s.RunMonthlyDistribution(ctx)
	if err != nil {
		return err
	}
	return printSummary("Manual distribution completed.", summary)
}

func printSummary(msg string, summary *services.DistributionSummary) error {
	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	if summary.Failed > 0 || summary.Unresolved > 0 {
		log.Warn().Int("failed", summary.Failed).Int("unresolved", summary.Unresolved).Msg(msg)
		return nil
	}
	log.Info().Msg(msg)
	return nil
}
