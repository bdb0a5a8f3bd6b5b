package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisSlotRepo implements SlotRepo on Redis string keys, so several
// machines can share one learner's progress. Keys are namespaced by prefix.
type RedisSlotRepo struct {
	client *redis.Client
	prefix string
}

// NewRedisSlotRepo creates a SlotRepo on an existing client. Keys are
// stored as prefix:key; a trailing ':' on prefix is dropped.
func NewRedisSlotRepo(client *redis.Client, prefix string) *RedisSlotRepo {
	return &RedisSlotRepo{client: client, prefix: strings.TrimRight(prefix, ":")}
}

// DialRedis connects to addr and verifies the connection with PING.
func DialRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

func (r *RedisSlotRepo) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get slot %q: %w", key, err)
	}
	return val, nil
}

func (r *RedisSlotRepo) Put(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("put slot %q: %w", key, err)
	}
	return nil
}

func (r *RedisSlotRepo) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("delete slot %q: %w", key, err)
	}
	return nil
}

func (r *RedisSlotRepo) key(k string) string {
	if r.prefix == "" {
		return k
	}
	return r.prefix + ":" + k
}
