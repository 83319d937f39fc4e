package messaging

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Notifier fans out "conversation changed" signals between API instances.
type Notifier interface {
	Notify(ctx context.Context, conversationID string) error
	// Watch delivers a signal per change until ctx is done, then closes the channel.
	Watch(ctx context.Context, conversationID string) (<-chan struct{}, error)
}

func channelName(conversationID string) string {
	return "conversation:" + conversationID + ":messages"
}

// RedisNotifier uses Redis Pub/Sub, one channel per conversation.
type RedisNotifier struct {
	Rdb *redis.Client
}

func (n *RedisNotifier) Notify(ctx context.Context, conversationID string) error {
	return n.Rdb.Publish(ctx, channelName(conversationID), "changed").Err()
}

func (n *RedisNotifier) Watch(ctx context.Context, conversationID string) (<-chan struct{}, error) {
	ps := n.Rdb.Subscribe(ctx, channelName(conversationID))
	// Wait for the subscription to be confirmed so no publish after Watch returns is missed.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe %s: %w", conversationID, err)
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer ps.Close()
		ch := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					log.Warn().Str("conversation_id", conversationID).Msg("messaging: pubsub channel closed")
					return
				}
				// Coalesce: a pending signal already means "reload".
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out, nil
}
