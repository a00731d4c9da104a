package client

import "context"

// A common interface for queue clients regardless if it's a SQS, RabbitMQ, etc.
type QueueClient interface {
	SendMessage(ctx context.Context, messageBody string) error
	GetQueueName() string
	// Ping reports an error when the connection to the broker is gone.
	Ping() error
	Stop() error
}

func NewQueueClient(url, user, password, queueName string) (QueueClient, error) {
	return NewRabbitMqClient(url, user, password, queueName)
}
