package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Stream names for downstream consumers
const (
	StreamSlateAnalysis = "analysis.slate.basketball_nba"
	StreamResultUpdates = "analysis.results.basketball_nba"
)

// RedisStreamPublisher publishes analysis events to Redis streams
type RedisStreamPublisher struct {
	client *redis.Client
}

// NewRedisStreamPublisher creates a new Redis stream publisher from existing client
func NewRedisStreamPublisher(client *redis.Client) *RedisStreamPublisher {
	return &RedisStreamPublisher{
		client: client,
	}
}

// PublishSlateAnalysis publishes a freshly analyzed slate to the stream
func (rsp *RedisStreamPublisher) PublishSlateAnalysis(ctx context.Context, slateData interface{}) error {
	return rsp.publish(ctx, StreamSlateAnalysis, slateData)
}

// PublishResultUpdate publishes a reconciled final score to the stream
func (rsp *RedisStreamPublisher) PublishResultUpdate(ctx context.Context, resultData interface{}) error {
	return rsp.publish(ctx, StreamResultUpdates, resultData)
}

func (rsp *RedisStreamPublisher) publish(ctx context.Context, streamName string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return rsp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: streamName,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
