package messaging

import (
	"context"
	"sync"

	"github.com/b2ygroup/conecta-pro/internal/domain"

	"github.com/rs/zerolog/log"
)

// Subscription is a live view of a conversation's messages. Every value sent on
// Updates is the full ordered history. Close must be called when the consumer
// goes away; until then it keeps a Redis subscription and a goroutine alive.
type Subscription struct {
	updates chan []domain.Message
	cancel  context.CancelFunc
	done    chan struct{}
	once    sync.Once
}

func newSubscription(cancel context.CancelFunc) *Subscription {
	return &Subscription{
		updates: make(chan []domain.Message, 1),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
}

// Updates is closed after Close or when the parent context ends.
func (s *Subscription) Updates() <-chan []domain.Message {
	return s.updates
}

// Close stops the subscription and waits for its goroutine to exit. Safe to call twice.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.cancel()
		<-s.done
	})
}

// Done is closed once the subscription has been torn down.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

func (s *Subscription) run(ctx context.Context, conversationID string, signals <-chan struct{}, load func(context.Context) ([]domain.Message, error)) {
	defer close(s.done)
	defer close(s.updates)

	push := func() {
		msgs, err := load(ctx)
		if err != nil {
			if ctx.Err() == nil {
				log.Error().Err(err).Str("conversation_id", conversationID).Msg("messaging: snapshot reload failed")
			}
			return
		}
		// Keep only the newest snapshot if the consumer is behind.
		select {
		case s.updates <- msgs:
		default:
			select {
			case <-s.updates:
			default:
			}
			s.updates <- msgs
		}
	}

	push()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-signals:
			if !ok {
				return
			}
			push()
		}
	}
}
