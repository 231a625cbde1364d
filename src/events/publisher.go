package events

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const DefaultStream = "expertdesk.consultations"

// Consultation describes one finished consultation. It carries no question or
// answer text.
type Consultation struct {
	ID       string
	Channel  string
	Persona  string
	Outcome  string
	Duration time.Duration
	At       time.Time
}

// Publisher receives consultation events from the front-ends.
type Publisher interface {
	Publish(ctx context.Context, ev Consultation) error
}

// Nop discards events; used when no Redis URL is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Consultation) error { return nil }

// RedisPublisher appends events to a Redis stream.
type RedisPublisher struct {
	rdb    *redis.Client
	stream string
}

// NewRedis parses url and returns a publisher writing to stream.
func NewRedis(url, stream string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("events: redis url: %w", err)
	}
	return NewRedisWithClient(redis.NewClient(opt), stream), nil
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(rdb *redis.Client, stream string) *RedisPublisher {
	if stream == "" {
		stream = DefaultStream
	}
	return &RedisPublisher{rdb: rdb, stream: stream}
}

// Ping checks connectivity.
func (p *RedisPublisher) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}

func (p *RedisPublisher) Publish(ctx context.Context, ev Consultation) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	_, err := p.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"id":          ev.ID,
			"channel":     ev.Channel,
			"persona":     ev.Persona,
			"outcome":     ev.Outcome,
			"duration_ms": strconv.FormatInt(ev.Duration.Milliseconds(), 10),
			"at":          ev.At.Format(time.RFC3339),
		},
	}).Result()
	if err != nil {
		return fmt.Errorf("events: xadd %s: %w", p.stream, err)
	}
	return nil
}

// Close releases the underlying client.
func (p *RedisPublisher) Close() error {
	return p.rdb.Close()
}

// PublishAsync sends ev without blocking the caller; failures are only logged.
func PublishAsync(pub Publisher, ev Consultation) {
	if pub == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := pub.Publish(ctx, ev); err != nil {
			log.Printf("events: publish %s: %v", ev.ID, err)
		}
	}()
}
