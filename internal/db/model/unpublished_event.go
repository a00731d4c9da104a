package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const UnpublishedEventCollection = "unpublished_events"

// UnpublishedEventDocument keeps an event the queue refused so it can be
// replayed later.
type UnpublishedEventDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	QueueName   string             `bson:"queue_name"`
	MessageBody string             `bson:"message_body"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func NewUnpublishedEventDocument(queueName, messageBody string, createdAt time.Time) *UnpublishedEventDocument {
	return &UnpublishedEventDocument{
		QueueName:   queueName,
		MessageBody: messageBody,
		CreatedAt:   createdAt,
	}
}
