package redisstore

import (
	"context"
	"time"

	"arbmonitor-service/internal/application"
	"arbmonitor-service/internal/domain"

	"github.com/redis/go-redis/v9"
)

// QuoteCache publishes each cycle's normalized quotes to redis hashes
// keyed quote:<venue>:<symbol>, for consumers outside this process. The
// engine itself never reads them back.
type QuoteCache struct {
	Client *redis.Client
	TTL    time.Duration
}

var _ application.QuoteCache = (*QuoteCache)(nil)

func New(client *redis.Client, ttl time.Duration) *QuoteCache {
	return &QuoteCache{Client: client, TTL: ttl}
}

func (c *QuoteCache) Publish(ctx context.Context, quotes []domain.Quote) error {
	pipe := c.Client.Pipeline()
	for _, q := range quotes {
		key := "quote:" + q.Venue + ":" + q.Symbol
		fields := map[string]any{
			"price":     q.Price,
			"timestamp": q.Timestamp.UnixMilli(),
		}
		if q.Volume24h != nil {
			fields["volume_24h"] = *q.Volume24h
		}
		pipe.HSet(ctx, key, fields)
		if c.TTL > 0 {
			pipe.Expire(ctx, key, c.TTL)
		}
	}
	_, err := pipe.Exec(ctx)
	return err
}
