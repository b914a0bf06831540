package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInitRedisRejectsBadURL(t *testing.T) {
	_, err := InitRedis(context.Background(), "not-a-redis-url")
	assert.ErrorContains(t, err, "invalid redis url")
}

func TestInitRedisUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := InitRedis(ctx, "redis://127.0.0.1:1/0")
	assert.ErrorContains(t, err, "could not connect to redis")
}
