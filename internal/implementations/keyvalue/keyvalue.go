package keyvalue

import (
	"context"
	"errors"
	"fmt"

	e "github.com/CarelessWhissper/expense-tracker/internal/core/domain/errors"
	"github.com/CarelessWhissper/expense-tracker/internal/core/domain/keyvalue"
	"github.com/go-redis/redis/v9"
)

type Redis struct {
	redisClient *redis.Client
	keyPrefix   string
}

func NewRedis(redisClient *redis.Client, keyPrefix string) *Redis {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	return &Redis{redisClient: redisClient, keyPrefix: keyPrefix}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.redisClient.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, keyvalue.ErrKeyDoesNotExist
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	return r.redisClient.Set(ctx, r.key(key), value, 0).Err()
}

func (r *Redis) Del(ctx context.Context, key string) error {
	return r.redisClient.Del(ctx, r.key(key)).Err()
}

func (r *Redis) key(key string) string {
	if r.keyPrefix == "" {
		return key
	}
	return fmt.Sprintf("%s::%s", r.keyPrefix, key)
}
