package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/allisson/soulbound/internal/events/domain"
)

// RedisPublisher publishes events as JSON to a Redis pub/sub channel.
type RedisPublisher struct {
	cli     *redis.Client
	channel string
}

// NewRedisPublisher connects to url and verifies the connection with PING.
func NewRedisPublisher(ctx context.Context, url, channel string) (*RedisPublisher, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis parse url: %w", err)
	}

	cli := redis.NewClient(opts)
	if err := cli.Ping(ctx).Err(); err != nil {
		if closeErr := cli.Close(); closeErr != nil {
			return nil, fmt.Errorf("redis ping: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisPublisher{cli: cli, channel: channel}, nil
}

// Publish sends msg to the configured channel.
func (p *RedisPublisher) Publish(ctx context.Context, msg domain.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("redis publish encode: %w", err)
	}
	if err := p.cli.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

// Close closes the Redis client.
func (p *RedisPublisher) Close() error {
	return p.cli.Close()
}
