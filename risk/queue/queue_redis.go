package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisQueueKey = "riskengine/tasks"

// RedisQueue is a redis list-backed queue shared between the services that
// create content and the riskd workers that evaluate it.
type RedisQueue struct {
	Client *redis.Client
}

var _ Queue = (*RedisQueue)(nil)

func NewRedisQueue(redisURL string) (*RedisQueue, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)
	// check redis connection
	_, err = rdb.Ping(context.TODO()).Result()
	if err != nil {
		return nil, err
	}
	return &RedisQueue{
		Client: rdb,
	}, nil
}

func (q *RedisQueue) Enqueue(ctx context.Context, task Task) error {
	raw, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return q.Client.LPush(ctx, redisQueueKey, raw).Err()
}

func (q *RedisQueue) Dequeue(ctx context.Context) (*Task, error) {
	for {
		// short poll timeout so context cancellation is honored promptly
		vals, err := q.Client.BRPop(ctx, 5*time.Second, redisQueueKey).Result()
		if err == redis.Nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		if err != nil {
			return nil, err
		}
		// BRPOP returns [key, value]
		var task Task
		if err := json.Unmarshal([]byte(vals[1]), &task); err != nil {
			return nil, err
		}
		return &task, nil
	}
}
