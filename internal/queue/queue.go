package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/anonymousnfts/stake-reward-service/internal/config"
	"github.com/anonymousnfts/stake-reward-service/internal/queue/client"
)

type Queues struct {
	StakePaidQueueClient         client.QueueClient
	RewardDistributedQueueClient client.QueueClient
	publishTimeout               time.Duration
}

func New(cfg config.QueueConfig) (*Queues, error) {
	stakePaidQueueClient, err := client.NewQueueClient(
		cfg.Url, cfg.QueueUser, cfg.QueuePassword, cfg.StakePaidQueueName,
	)
	if err != nil {
		return nil, fmt.Errorf("error while creating StakePaidQueueClient: %w", err)
	}
	rewardDistributedQueueClient, err := client.NewQueueClient(
		cfg.Url, cfg.QueueUser, cfg.QueuePassword, cfg.RewardDistributedQueueName,
	)
	if err != nil {
		stakePaidQueueClient.Stop()
		return nil, fmt.Errorf("error while creating RewardDistributedQueueClient: %w", err)
	}
	return NewWithClients(
		stakePaidQueueClient, rewardDistributedQueueClient, time.Duration(cfg.PublishTimeout)*time.Second,
	), nil
}

func NewWithClients(stakePaid, rewardDistributed client.QueueClient, publishTimeout time.Duration) *Queues {
	return &Queues{
		StakePaidQueueClient:         stakePaid,
		RewardDistributedQueueClient: rewardDistributed,
		publishTimeout:               publishTimeout,
	}
}

func (q *Queues) clients() []client.QueueClient {
	return []client.QueueClient{q.StakePaidQueueClient, q.RewardDistributedQueueClient}
}

func (q *Queues) clientFor(eventType client.EventType) (client.QueueClient, error) {
	switch eventType {
	case client.StakePaidEventType:
		return q.StakePaidQueueClient, nil
	case client.RewardDistributedEventType:
		return q.RewardDistributedQueueClient, nil
	default:
		return nil, fmt.Errorf("unknown event type: %v", eventType)
	}
}

// PublishEvent sends event to its queue and returns the serialized body
// together with the queue name, so a caller can keep the message when the
// broker is unreachable.
func (q *Queues) PublishEvent(ctx context.Context, event client.Event) (queueName, body string, err error) {
	queueClient, err := q.clientFor(event.GetEventType())
	if err != nil {
		return "", "", err
	}
	raw, err := json.Marshal(event)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal event: %w", err)
	}
	body = string(raw)
	return queueClient.GetQueueName(), body, q.send(ctx, queueClient, body)
}

// SendMessage sends a raw message to the queue named queueName.
func (q *Queues) SendMessage(ctx context.Context, queueName, body string) error {
	for _, c := range q.clients() {
		if c.GetQueueName() == queueName {
			return q.send(ctx, c, body)
		}
	}
	return fmt.Errorf("unknown queue: %s", queueName)
}

func (q *Queues) send(ctx context.Context, queueClient client.QueueClient, body string) error {
	ctx, cancel := context.WithTimeout(ctx, q.publishTimeout)
	defer cancel()
	if err := queueClient.SendMessage(ctx, body); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("queueName", queueClient.GetQueueName()).Msg("error while publishing message to queue")
		return err
	}
	return nil
}

// IsConnectionHealthy reports an error for every queue whose broker connection is gone.
func (q *Queues) IsConnectionHealthy() error {
	var errs []error
	for _, c := range q.clients() {
		if err := c.Ping(); err != nil {
			errs = append(errs, fmt.Errorf("queue %s: %w", c.GetQueueName(), err))
		}
	}
	return errors.Join(errs...)
}

func (q *Queues) Close() {
	for _, c := range q.clients() {
		if err := c.Stop(); err != nil {
			log.Error().Err(err).Str("queueName", c.GetQueueName()).Msg("error while closing queue client")
		}
	}
}
