package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const eventChannel = "taskflow:events"

// envelope is the wire format for events relayed between instances.
type envelope struct {
	UserID  string          `json:"user_id"`
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// EventBridge relays task events between server instances over Redis pub/sub,
// so a mutation handled by one instance reaches connections held by another.
// Each instance publishes every event and delivers only what it receives back
// on the subscription.
type EventBridge struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewEventBridge(client *redis.Client, log zerolog.Logger) *EventBridge {
	return &EventBridge{client: client, log: log}
}

// Publish sends one event to the shared channel.
func (b *EventBridge) Publish(ctx context.Context, userID, kind string, payload []byte) error {
	data, err := json.Marshal(envelope{UserID: userID, Kind: kind, Payload: payload})
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}
	if err := b.client.Publish(ctx, eventChannel, data).Err(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

// Subscribe consumes the shared channel and hands each event to deliver.
// It blocks until ctx is cancelled or the subscription is torn down.
func (b *EventBridge) Subscribe(ctx context.Context, deliver func(userID, kind string, payload []byte)) {
	sub := b.client.Subscribe(ctx, eventChannel)
	defer func() { _ = sub.Close() }()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				b.log.Warn().Err(err).Msg("malformed event envelope, skipping")
				continue
			}
			deliver(env.UserID, env.Kind, env.Payload)
		}
	}
}
