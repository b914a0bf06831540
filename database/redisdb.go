package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisStore is a JSON key/value store shared between runs.
type RedisStore struct {
	client *redis.Client
}

// InitRedis connects to url and checks the connection with a ping.
func InitRedis(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}

	log.Debug().Str("addr", opts.Addr).Msg("connected to redis")
	return NewRedisStore(client), nil
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Set stores value as JSON.
func (r *RedisStore) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, raw, expiration).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("redis SET failed")
		return err
	}
	return nil
}

// Get returns "" without error for a missing key.
func (r *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("redis GET failed")
		return "", err
	}
	return val, nil
}

// GetAsStruct decodes the JSON stored at key into dest. It reports
// whether the key was found.
func (r *RedisStore) GetAsStruct(ctx context.Context, key string, dest any) (bool, error) {
	val, err := r.Get(ctx, key)
	if err != nil || val == "" {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
