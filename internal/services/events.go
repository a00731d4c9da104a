package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/anonymousnfts/stake-reward-service/internal/queue/client"
)

// publishEvent sends a settlement event. Publishing never fails the
// settlement: an event the broker refuses is stored for a later replay.
func (s *Services) publishEvent(ctx context.Context, event client.Event) {
	if s.Queues == nil {
		return
	}
	queueName, body, err := s.Queues.PublishEvent(ctx, event)
	if err == nil {
		return
	}
	log.Ctx(ctx).Warn().Err(err).Int("eventType", int(event.GetEventType())).Msg("failed to publish event")
	if body == "" {
		return
	}
	if saveErr := s.DbClient.SaveUnpublishedEvent(ctx, queueName, body); saveErr != nil {
		log.Ctx(ctx).Error().Err(saveErr).Str("queueName", queueName).Msg("error while saving unpublished event")
	}
}

// ReplayUnpublishedEvents republishes stored events in creation order and
// removes each one once the broker accepted it. It stops at the first
// failure and returns the number of events replayed.
func (s *Services) ReplayUnpublishedEvents(ctx context.Context) (int, error) {
	if s.Queues == nil {
		return 0, errors.New("queues are not configured")
	}
	events, err := s.DbClient.FindUnpublishedEvents(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to retrieve unpublished events: %w", err)
	}

	replayed := 0
	for _, event := range events {
		if err := s.Queues.SendMessage(ctx, event.QueueName, event.MessageBody); err != nil {
			return replayed, fmt.Errorf("failed to replay event %s: %w", event.ID.Hex(), err)
		}
		if err := s.DbClient.DeleteUnpublishedEvent(ctx, event.ID); err != nil {
			return replayed, fmt.Errorf("failed to delete unpublished event %s: %w", event.ID.Hex(), err)
		}
		replayed++
	}
	log.Ctx(ctx).Info().Int("replayed", replayed).Msg("unpublished events replayed")
	return replayed, nil
}
