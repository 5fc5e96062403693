package repository

import (
	"context"
	"time"

	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"

	"reelview-admin/internal/config"
)

// NewRedisPool 创建 Redis 连接池，语言包缓存和解析计数共用
func NewRedisPool(cfg config.RedisConfig, logger *zap.Logger) *redis.Pool {
	addr := cfg.Addr
	password := cfg.Password

	return &redis.Pool{
		MaxIdle:     10,
		IdleTimeout: 240 * time.Second,
		DialContext: func(ctx context.Context) (redis.Conn, error) {
			conn, err := redis.DialContext(ctx, "tcp", addr)
			if err != nil {
				logger.Error("Failed to connect Redis",
					zap.String("addr", addr),
					zap.Error(err),
				)
				return nil, err
			}

			if password != "" {
				if _, authErr := conn.Do("AUTH", password); authErr != nil {
					if closeErr := conn.Close(); closeErr != nil {
						logger.Error("Failed to close redis connection after AUTH failure",
							zap.String("addr", addr),
							zap.Error(closeErr),
						)
					}
					logger.Error("Redis AUTH failed",
						zap.String("addr", addr),
						zap.Error(authErr),
					)
					return nil, authErr
				}
			}

			logger.Debug("Redis connection established",
				zap.String("addr", addr),
				zap.Bool("auth", password != ""),
			)

			return conn, nil
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			if err != nil {
				logger.Warn("Redis connection health check failed",
					zap.String("addr", addr),
					zap.Error(err),
				)
			}
			return err
		},
	}
}
