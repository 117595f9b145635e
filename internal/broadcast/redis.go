package broadcast

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
)

// DefaultChannel is the Redis channel every instance relays through.
const DefaultChannel = "stumps:broadcast"

// RedisRelay publishes events to a Redis channel so that every instance's hub
// sees them, and relays the channel back into a local Deliverer.
type RedisRelay struct {
	client  *redis.Client
	channel string
	timeout time.Duration
}

var _ Publisher = (*RedisRelay)(nil)

// NewRedisRelay creates a relay on channel, or DefaultChannel when empty.
func NewRedisRelay(client *redis.Client, channel string) *RedisRelay {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisRelay{client: client, channel: channel, timeout: 2 * time.Second}
}

func (r *RedisRelay) Publish(topic string, event Event) error {
	data, err := encode(topic, event)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	return r.client.Publish(ctx, r.channel, data).Err()
}

// Run subscribes to the relay channel and delivers every message to sink until
// ctx is cancelled.
func (r *RedisRelay) Run(ctx context.Context, sink Deliverer) {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()
	ch := sub.Channel()
	log.Info("Redis relay subscribed", "channel", r.channel)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			relay(sink, []byte(msg.Payload))
		}
	}
}

func encode(topic string, event Event) ([]byte, error) {
	event.Topic = topic
	return json.Marshal(event)
}

// relay reads the topic out of an encoded event and passes the bytes on
// untouched.
func relay(sink Deliverer, data []byte) {
	var head struct {
		Topic string `json:"topic"`
	}
	if err := json.Unmarshal(data, &head); err != nil || head.Topic == "" {
		log.Warn("Dropping malformed relay message", "error", err)
		return
	}
	sink.Deliver(head.Topic, data)
}
