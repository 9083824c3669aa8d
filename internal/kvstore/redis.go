package kvstore

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const redisWatchChannel = "storefront.keyevents"

// RedisStore backs the store with a shared Redis instance so several
// storefront processes can see the same state. Concurrent writers are last
// write wins; the watch channel gives eventual, best-effort visibility, not
// cross-process atomicity.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{client: redis.NewClient(&redis.Options{Addr: addr})}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return err
	}
	// Best effort: a dropped signal only delays observers until the next read.
	_ = s.client.Publish(ctx, redisWatchChannel, key).Err()
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return err
	}
	_ = s.client.Publish(ctx, redisWatchChannel, key).Err()
	return nil
}

// Watch delivers changed keys published by any process sharing the store,
// including this one.
func (s *RedisStore) Watch(fn func(key string)) {
	sub := s.client.Subscribe(context.Background(), redisWatchChannel)
	go func() {
		for msg := range sub.Channel() {
			fn(msg.Payload)
		}
	}()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
