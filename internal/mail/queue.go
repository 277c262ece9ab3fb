package mail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisQueue is a Mailer that appends messages to a Redis list. A
// worker.NotificationWorker drains the list into the real transport.
type RedisQueue struct {
	client *redis.Client
	key    string
}

// NewRedisQueue constructs a queue on key.
func NewRedisQueue(client *redis.Client, key string) *RedisQueue {
	return &RedisQueue{client: client, key: key}
}

// Send enqueues msg.
func (q *RedisQueue) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if err := q.client.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("enqueue mail: %w", err)
	}
	return nil
}

// Dequeue blocks up to timeout for the oldest message. ok is false when the
// wait timed out.
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (msg Message, ok bool, err error) {
	res, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if errors.Is(err, redis.Nil) {
		return Message{}, false, nil
	}
	if err != nil {
		return Message{}, false, err
	}
	// BRPOP replies with [key, value].
	if len(res) != 2 {
		return Message{}, false, fmt.Errorf("unexpected BRPOP reply of length %d", len(res))
	}
	if err := json.Unmarshal([]byte(res[1]), &msg); err != nil {
		return Message{}, false, fmt.Errorf("decode queued mail: %w", err)
	}
	return msg, true, nil
}

// Len reports how many messages are waiting.
func (q *RedisQueue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}
