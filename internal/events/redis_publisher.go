package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/rueidis"
)

type RedisPublisher struct {
	client  rueidis.Client
	channel string
}

func NewRedisPublisher(client rueidis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{
		client:  client,
		channel: channel,
	}
}

func (r *RedisPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	cmd := r.client.B().Publish().Channel(r.channel).Message(string(payload)).Build()
	return r.client.Do(ctx, cmd).Error()
}

// Subscribe blocks delivering decoded events to fn until ctx is done or the
// connection fails. Undecodable messages are skipped.
func (r *RedisPublisher) Subscribe(ctx context.Context, fn func(Event)) error {
	cmd := r.client.B().Subscribe().Channel(r.channel).Build()
	return r.client.Receive(ctx, cmd, func(msg rueidis.PubSubMessage) {
		event, err := Decode(msg.Message)
		if err != nil {
			return
		}
		fn(event)
	})
}

func Decode(payload string) (Event, error) {
	var event Event
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	return event, nil
}
