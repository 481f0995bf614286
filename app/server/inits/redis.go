package inits

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

func Redis(conn string) (*redis.Client, error) {
	opts, err := redis.ParseURL(conn)
	if err != nil {
		return nil, fmt.Errorf("parse redis connection string: %w", err)
	}

	rdb := redis.NewClient(opts)

	// 启动时探活，避免跑起来之后才发现缓存不可用
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return rdb, nil
}
