package mailqueue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Job is one queued broadcast fan-out.
type Job struct {
	ID     string `json:"id"`
	MailID uint   `json:"mail_id"`
}

// Queue is the broker abstraction; RedisQueue backs it in production and
// InMemory in tests.
type Queue interface {
	EnqueueBroadcast(ctx context.Context, mailID uint) error
	Consume(ctx context.Context) (<-chan Job, error)
}

// RedisQueue is a Redis list with LPUSH/BRPOP semantics.
type RedisQueue struct {
	client *redis.Client
	key    string
}

func NewRedisQueue(client *redis.Client, key string) *RedisQueue {
	if key == "" {
		key = "siaksi:mail:broadcast"
	}

	return &RedisQueue{client: client, key: key}
}

func (q *RedisQueue) EnqueueBroadcast(ctx context.Context, mailID uint) error {
	payload, err := json.Marshal(Job{ID: uuid.NewString(), MailID: mailID})
	if err != nil {
		return err
	}

	return q.client.LPush(ctx, q.key, payload).Err()
}

// Consume streams jobs until the context is cancelled. Malformed payloads
// are dropped.
func (q *RedisQueue) Consume(ctx context.Context) (<-chan Job, error) {
	out := make(chan Job)
	go func() {
		defer close(out)
		for {
			res, err := q.client.BRPop(ctx, 5*time.Second, q.key).Result()
			if err != nil {
				if err == redis.Nil {
					continue
				}
				if ctx.Err() != nil {
					return
				}
				continue
			}
			if len(res) != 2 {
				continue
			}

			var job Job
			if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
				continue
			}
			out <- job
		}
	}()

	return out, nil
}

// InMemory is a bounded channel-backed queue for tests and development.
type InMemory struct {
	ch chan Job
}

func NewInMemory(size int) *InMemory {
	return &InMemory{ch: make(chan Job, size)}
}

func (q *InMemory) EnqueueBroadcast(ctx context.Context, mailID uint) error {
	select {
	case q.ch <- Job{ID: uuid.NewString(), MailID: mailID}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *InMemory) Consume(ctx context.Context) (<-chan Job, error) {
	out := make(chan Job)
	go func() {
		defer close(out)
		for {
			select {
			case job := <-q.ch:
				out <- job
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
