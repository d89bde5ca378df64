package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

const (
	redisLockTTL     = 5 * time.Second
	redisLockBackoff = 50 * time.Millisecond
	redisLockRetries = 40
)

// Redis keeps blobs as plain string values. Lock takes a redislock lease on
// the key, which the salary store holds from reload to save so replicas
// sharing one Redis apply their mutations one at a time.
type Redis struct {
	client *redis.Client
	locker *redislock.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client, locker: redislock.New(client)}
}

func (r *Redis) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (r *Redis) Save(ctx context.Context, key string, data []byte) error {
	return r.client.Set(ctx, key, data, 0).Err()
}

func (r *Redis) Lock(ctx context.Context, key string) (func(), error) {
	lock, err := r.locker.Obtain(ctx, "lock:"+key, redisLockTTL, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(redisLockBackoff), redisLockRetries),
	})
	if err != nil {
		return nil, fmt.Errorf("obtain redis lock for %s: %w", key, err)
	}
	return func() {
		_ = lock.Release(context.WithoutCancel(ctx))
	}, nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
