package queue_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/anonymousnfts/stake-reward-service/internal/queue"
	"github.com/anonymousnfts/stake-reward-service/internal/queue/client"
	"github.com/anonymousnfts/stake-reward-service/tests/mocks"
)

func newQueues(t *testing.T) (*queue.Queues, *mocks.QueueClient, *mocks.QueueClient) {
	stakePaid := mocks.NewQueueClient(t)
	rewards := mocks.NewQueueClient(t)
	stakePaid.On("GetQueueName").Return("stake_paid_queue").Maybe()
	rewards.On("GetQueueName").Return("reward_distributed_queue").Maybe()
	return queue.NewWithClients(stakePaid, rewards, time.Second), stakePaid, rewards
}

func TestPublishEvent_RoutesByEventType(t *testing.T) {
	queues, stakePaid, _ := newQueues(t)

	event := client.NewStakePaidEvent("TX", "rAddr", "1000", "1120", "REWARDTX", time.Unix(0, 0).UTC())
	stakePaid.On("SendMessage", mock.Anything, mock.MatchedBy(func(body string) bool {
		var decoded client.StakePaidEvent
		return json.Unmarshal([]byte(body), &decoded) == nil &&
			decoded.EventType == client.StakePaidEventType &&
			decoded.RewardAmount == "1120"
	})).Return(nil).Once()

	queueName, body, err := queues.PublishEvent(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, "stake_paid_queue", queueName)
	assert.Contains(t, body, `"reward_transaction_id":"REWARDTX"`)
}

func TestPublishEvent_ReturnsBodyOnFailure(t *testing.T) {
	queues, _, rewards := newQueues(t)

	rewards.On("SendMessage", mock.Anything, mock.Anything).Return(errors.New("connection closed")).Once()

	event := client.NewRewardDistributedEvent("2024-05", "acc-1", "rAddr", "150", "TX", true)
	queueName, body, err := queues.PublishEvent(context.Background(), event)
	require.Error(t, err)
	assert.Equal(t, "reward_distributed_queue", queueName)
	assert.NotEmpty(t, body)
}

func TestSendMessage_UnknownQueue(t *testing.T) {
	queues, _, _ := newQueues(t)

	err := queues.SendMessage(context.Background(), "nope", "{}")
	require.Error(t, err)
}

func TestIsConnectionHealthy(t *testing.T) {
	queues, stakePaid, rewards := newQueues(t)
	stakePaid.On("Ping").Return(nil)
	rewards.On("Ping").Return(errors.New("rabbitmq connection is closed"))

	err := queues.IsConnectionHealthy()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reward_distributed_queue")
}
