package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"gogive-web/internal/observability"
	"gogive-web/internal/viewmodel"

	"github.com/redis/go-redis/v9"
)

// EventName is the pub/sub event emitted on a giver's channel.
const EventName = "stage-update"

// ChannelForProfile names the per-giver pub/sub channel.
func ChannelForProfile(profileID int64) string {
	return fmt.Sprintf("referrer-%d", profileID)
}

// envelope is the raw pub/sub message: an event name plus its payload.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Subscriber keeps at most one live pub/sub subscription and applies
// stage-update events onto the session's store. Every failure in here is
// deliberately swallowed down to a debug log: the dashboard must stay
// usable on polling alone when real-time delivery is unavailable.
type Subscriber struct {
	client *redis.Client
	store  *viewmodel.Store
	logger *observability.Logger

	mu        sync.Mutex
	profileID int64
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewSubscriber creates a subscriber bound to one session's store. A nil
// redis client is allowed and makes every Rebind a no-op.
func NewSubscriber(client *redis.Client, store *viewmodel.Store, logger *observability.Logger) *Subscriber {
	return &Subscriber{
		client: client,
		store:  store,
		logger: logger,
	}
}

// Rebind points the subscription at a new profile id, tearing down the
// previous channel first. Two live subscriptions never coexist, so a stale
// channel can never deliver events into a new session's store.
func (s *Subscriber) Rebind(ctx context.Context, profileID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profileID == profileID && s.cancel != nil {
		return
	}

	s.teardownLocked()

	if s.client == nil || profileID == 0 {
		return
	}

	subCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.profileID = profileID
	s.cancel = cancel
	s.done = done

	channel := ChannelForProfile(profileID)
	pubsub := s.client.Subscribe(subCtx, channel)

	go s.consume(subCtx, pubsub, channel, done)
}

// Close tears down the current subscription, if any.
func (s *Subscriber) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teardownLocked()
}

func (s *Subscriber) teardownLocked() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
	s.done = nil
	s.profileID = 0
}

func (s *Subscriber) consume(ctx context.Context, pubsub *redis.PubSub, channel string, done chan struct{}) {
	defer close(done)
	defer func() {
		if err := pubsub.Close(); err != nil {
			s.logger.DebugWithError(ctx, "failed to close pub/sub", err)
		}
	}()

	s.logger.Debug(ctx, "subscribed to real-time channel",
		observability.Field{Key: "channel", Value: channel})

	msgs := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			s.handleMessage(ctx, msg.Payload)
		}
	}
}

func (s *Subscriber) handleMessage(ctx context.Context, payload string) {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		s.logger.DebugWithError(ctx, "failed to decode real-time message", err)
		return
	}
	if env.Event != EventName {
		return
	}

	var event StageUpdateEvent
	if err := json.Unmarshal(env.Data, &event); err != nil {
		s.logger.DebugWithError(ctx, "failed to decode stage-update payload", err)
		return
	}

	if Apply(s.store, event) {
		s.logger.Debug(ctx, "applied stage update",
			observability.Field{Key: "to_stage", Value: event.ToStage},
			observability.Field{Key: "order_number", Value: event.OrderNumber})
	}
}
