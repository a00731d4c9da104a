package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

type RabbitMqClient struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	queueName  string
	// amqp channels are not safe for concurrent publishing with confirms.
	mu sync.Mutex
}

func NewRabbitMqClient(url, user, password, queueName string) (*RabbitMqClient, error) {
	amqpURI := fmt.Sprintf("amqp://%s:%s@%s", user, password, url)

	conn, err := amqp.Dial(amqpURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queueName, err)
	}

	if err := ch.Confirm(false); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	return &RabbitMqClient{
		connection: conn,
		channel:    ch,
		queueName:  queueName,
	}, nil
}

// SendMessage publishes a persistent message and waits for the broker to
// confirm it.
func (c *RabbitMqClient) SendMessage(ctx context.Context, messageBody string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	confirmation, err := c.channel.PublishWithDeferredConfirmWithContext(
		ctx,
		"",          // exchange
		c.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         []byte(messageBody),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", c.queueName, err)
	}

	acked, err := confirmation.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("no confirmation from %s: %w", c.queueName, err)
	}
	if !acked {
		return fmt.Errorf("message nacked by %s", c.queueName)
	}
	return nil
}

func (c *RabbitMqClient) GetQueueName() string {
	return c.queueName
}

func (c *RabbitMqClient) Ping() error {
	if c.connection.IsClosed() {
		return errors.New("rabbitmq connection is closed")
	}
	if c.channel.IsClosed() {
		return errors.New("rabbitmq channel is closed")
	}
	return nil
}

func (c *RabbitMqClient) Stop() error {
	if err := c.channel.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		return err
	}
	if err := c.connection.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		return err
	}
	return nil
}
