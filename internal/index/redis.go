package index

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// IndexActionQueue is the redis list holding pending index actions.
var IndexActionQueue = "index:action:queue"

var _ Queue = (*RedisQueue)(nil)

// RedisQueue is a redis list backed work queue for index actions.
type RedisQueue struct {
	client *redis.Client
}

func NewRedisQueue(addr string) *RedisQueue {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "", // No password set
		DB:       0,  // Use default DB
		Protocol: 2,  // Connection protocol
	})

	return &RedisQueue{client: client}
}

func (r *RedisQueue) Enqueue(ctx context.Context, action Action) error {
	payload, err := json.Marshal(action)
	if err != nil {
		return err
	}

	return r.client.RPush(ctx, IndexActionQueue, payload).Err()
}

func (r *RedisQueue) Dequeue(ctx context.Context) (*Action, error) {
	res, err := r.client.BLPop(ctx, time.Second, IndexActionQueue).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	// BLPOP returns the key name followed by the popped value
	if len(res) < 2 {
		return nil, nil
	}

	action := &Action{}
	if err := json.Unmarshal([]byte(res[1]), action); err != nil {
		return nil, err
	}

	return action, nil
}

func (r *RedisQueue) Close() error {
	return r.client.Close()
}
