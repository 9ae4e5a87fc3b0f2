package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/KacperKuznik/image-hosting-api/infra"
	"github.com/KacperKuznik/image-hosting-api/infra/produce"
	"github.com/KacperKuznik/image-hosting-api/repository"
	amqp "github.com/rabbitmq/amqp091-go"
)

// CleanupConsumer removes orphaned blobs left behind by rolled-back uploads
// and deleted images.
type CleanupConsumer struct {
	channel    *amqp.Channel
	infra      *infra.Infra
	repository *repository.Repository
}

func NewCleanupConsumer(channel *amqp.Channel, infra *infra.Infra, repo *repository.Repository) *CleanupConsumer {
	return &CleanupConsumer{
		channel:    channel,
		infra:      infra,
		repository: repo,
	}
}

// Start begins consuming blob cleanup messages.
func (c *CleanupConsumer) Start(ctx context.Context) error {
	msgs, err := c.channel.Consume(
		produce.CleanupQueue,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register cleanup consumer: %w", err)
	}

	c.infra.Logger.InfoWithContextf(ctx, "[Cleanup Consumer] Started listening for cleanup jobs on queue: %s", produce.CleanupQueue)

	go func() {
		for {
			select {
			case <-ctx.Done():
				c.infra.Logger.InfoWithContextf(ctx, "[Cleanup Consumer] Shutting down...")
				return
			case msg, ok := <-msgs:
				if !ok {
					c.infra.Logger.WarningWithContextf(ctx, "[Cleanup Consumer] Channel closed")
					return
				}
				c.handleCleanup(ctx, msg)
			}
		}
	}()

	return nil
}

func (c *CleanupConsumer) handleCleanup(ctx context.Context, msg amqp.Delivery) {
	c.infra.Logger.InfoWithContextf(ctx, "[Cleanup Consumer] Received message: %s", string(msg.Body))

	var payload produce.CleanupMessage
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Cleanup Consumer] Failed to unmarshal message: %v", err)
		_ = msg.Nack(false, false)
		return
	}

	maxRetries := 3
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		lastErr = c.removeBlobs(ctx, payload.BlobKeys)
		if lastErr == nil {
			c.infra.Logger.InfoWithContextf(ctx, "[Cleanup Consumer] Removed %d blobs (%s)", len(payload.BlobKeys), payload.Reason)
			_ = msg.Ack(false)
			return
		}

		c.infra.Logger.ErrorWithContextf(ctx, lastErr, "[Cleanup Consumer] Attempt %d/%d failed: %v", attempt, maxRetries, lastErr)

		if attempt < maxRetries {
			time.Sleep(time.Duration(attempt) * 2 * time.Second)
		}
	}

	// After max retries, reject and requeue
	c.infra.Logger.ErrorWithContextf(ctx, lastErr, "[Cleanup Consumer] Failed after %d attempts, requeueing message", maxRetries)
	_ = msg.Nack(false, true)
}

// removeBlobs is idempotent: removing an already-gone object succeeds, so a
// requeued message never wedges the queue.
func (c *CleanupConsumer) removeBlobs(ctx context.Context, blobKeys []string) error {
	for _, key := range blobKeys {
		if err := c.infra.Minio.Remove(ctx, key); err != nil {
			return fmt.Errorf("failed to remove blob %s: %w", key, err)
		}
	}
	return nil
}
