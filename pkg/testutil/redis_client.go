package testutil

import (
	"context"

	"github.com/redis/go-redis/v9"
)

type MockRedisClient struct {
	ExistFunc               func(ctx context.Context, key string) (bool, error)
	SetFunc                 func(ctx context.Context, key, value string) error
	GetFunc                 func(ctx context.Context, key string) (string, error)
	DelFunc                 func(ctx context.Context, key string) error
	ZIncrByFunc             func(ctx context.Context, key string, incr int64, member string) error
	ZRevRangeWithScoresFunc func(ctx context.Context, key string, offset, limit int) ([]redis.Z, error)
}

func (c *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	if c.ExistFunc != nil {
		return c.ExistFunc(ctx, key)
	}

	return false, nil
}

func (c *MockRedisClient) Set(ctx context.Context, key, value string) error {
	if c.SetFunc != nil {
		return c.SetFunc(ctx, key, value)
	}

	return nil
}

func (c *MockRedisClient) Get(ctx context.Context, key string) (string, error) {
	if c.GetFunc != nil {
		return c.GetFunc(ctx, key)
	}

	return "", nil
}

func (c *MockRedisClient) Del(ctx context.Context, key string) error {
	if c.DelFunc != nil {
		return c.DelFunc(ctx, key)
	}

	return nil
}

func (c *MockRedisClient) ZIncrBy(ctx context.Context, key string, incr int64, member string) error {
	if c.ZIncrByFunc != nil {
		return c.ZIncrByFunc(ctx, key, incr, member)
	}

	return nil
}

func (c *MockRedisClient) ZRevRangeWithScores(
	ctx context.Context, key string, offset, limit int,
) ([]redis.Z, error) {
	if c.ZRevRangeWithScoresFunc != nil {
		return c.ZRevRangeWithScoresFunc(ctx, key, offset, limit)
	}

	return nil, nil
}
