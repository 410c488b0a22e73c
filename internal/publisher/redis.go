// Package publisher broadcasts pipeline progress over Redis pub/sub so
// the API layer (and anything else listening) can follow a run live.
package publisher

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/sentinel/vlrstats/internal/pipeline"
)

// Channel is the pub/sub channel progress events are published on.
const Channel = "vlrstats:progress"

// RedisPublisher implements pipeline.Notifier over Redis pub/sub.
// Publishing is best effort: a failed publish is logged and the
// pipeline never learns about it.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a publisher on an existing Redis client.
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// Notify publishes one progress event as JSON.
func (p *RedisPublisher) Notify(ctx context.Context, event pipeline.ProgressEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("⚠️  Failed to encode progress event: %v", err)
		return
	}

	if err := p.client.Publish(ctx, Channel, data).Err(); err != nil {
		log.Printf("⚠️  Failed to publish progress event: %v", err)
	}
}

// Subscribe returns a channel of decoded progress events. The channel
// closes when ctx is cancelled.
func Subscribe(ctx context.Context, client *redis.Client) <-chan pipeline.ProgressEvent {
	out := make(chan pipeline.ProgressEvent)

	sub := client.Subscribe(ctx, Channel)

	go func() {
		defer close(out)
		defer sub.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				var event pipeline.ProgressEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Printf("⚠️  Failed to decode progress event: %v", err)
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
