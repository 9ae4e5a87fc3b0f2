package produce

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	CleanupQueue      = "storage.cleanup"
	CleanupExchange   = "storage.exchange"
	CleanupRoutingKey = "storage.cleanup"
)

// CleanupMessage lists blob keys that no longer have a database record:
// either an upload rolled back after some blobs were written, or an image
// was deleted and its rows cascaded away.
type CleanupMessage struct {
	BlobKeys  []string `json:"blob_keys"`
	Reason    string   `json:"reason"`
	Timestamp int64    `json:"timestamp"`
}

// CleanupService publishes blob-cleanup jobs for the consumer worker.
type CleanupService struct {
	channel *amqp.Channel
}

func InitCleanupService(channel *amqp.Channel) *CleanupService {
	err := channel.ExchangeDeclare(
		CleanupExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to declare cleanup exchange: " + err.Error())
	}

	_, err = channel.QueueDeclare(
		CleanupQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		panic("Failed to declare cleanup queue: " + err.Error())
	}

	err = channel.QueueBind(
		CleanupQueue,
		CleanupRoutingKey,
		CleanupExchange,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to bind cleanup queue: " + err.Error())
	}

	return &CleanupService{channel: channel}
}

func (s *CleanupService) PublishCleanup(ctx context.Context, msg CleanupMessage) error {
	msg.Timestamp = time.Now().Unix()

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return s.channel.PublishWithContext(
		ctx,
		CleanupExchange,
		CleanupRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
}
