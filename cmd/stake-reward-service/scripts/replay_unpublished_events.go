package scripts

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/anonymousnfts/stake-reward-service/internal/services"
)

// ReplayUnpublishedEvents republishes the settlement events the broker
// refused earlier.
func ReplayUnpublishedEvents(ctx context.Context, s *services.Services) error {
	replayed, err := s.ReplayUnpublishedEvents(ctx)
	if err != nil {
		return fmt.Errorf("replay stopped after %d events: %w", replayed, err)
	}

	fmt.Printf("Replayed %d unpublished events.\n", replayed)
	log.Info().Msg("Replay of unpublished events completed.")
	return nil
}
