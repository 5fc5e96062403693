package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"

	"reelview-admin/constant"
)

// ConnPool Redis 连接来源，*redis.Pool 满足该接口
type ConnPool interface {
	GetContext(ctx context.Context) (redis.Conn, error)
}

// CachingLoader 将语言包缓存到 Redis。缓存出错只记录日志并跳过，加载失败不缓存
type CachingLoader struct {
	pool   ConnPool
	next   Loader
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachingLoader(pool ConnPool, next Loader, ttl time.Duration, logger *zap.Logger) *CachingLoader {
	return &CachingLoader{pool: pool, next: next, ttl: ttl, logger: logger}
}

func (l *CachingLoader) Load(ctx context.Context, locale string) (MessageBundle, error) {
	if bundle, ok := l.lookup(ctx, locale); ok {
		return bundle, nil
	}

	bundle, err := l.next.Load(ctx, locale)
	if err != nil {
		return MessageBundle{}, err
	}

	l.store(ctx, bundle)
	return bundle, nil
}

// Invalidate 删除某语言的缓存
func (l *CachingLoader) Invalidate(ctx context.Context, locale string) error {
	conn, err := l.pool.GetContext(ctx)
	if err != nil {
		return err
	}
	defer l.closeConn(conn)

	_, err = conn.Do("DEL", constant.GetBundleCacheKey(locale))
	return err
}

func (l *CachingLoader) lookup(ctx context.Context, locale string) (MessageBundle, bool) {
	key := constant.GetBundleCacheKey(locale)

	conn, err := l.pool.GetContext(ctx)
	if err != nil {
		l.logger.Warn("Bundle cache unavailable", zap.String("key", key), zap.Error(err))
		return MessageBundle{}, false
	}
	defer l.closeConn(conn)

	data, err := redis.Bytes(conn.Do("GET", key))
	if err != nil {
		if !errors.Is(err, redis.ErrNil) {
			l.logger.Warn("Failed to read bundle cache", zap.String("key", key), zap.Error(err))
		}
		return MessageBundle{}, false
	}

	var messages map[string]string
	if err := json.Unmarshal(data, &messages); err != nil || len(messages) == 0 {
		l.logger.Warn("Discarding unusable cached bundle", zap.String("key", key), zap.Error(err))
		return MessageBundle{}, false
	}

	return NewMessageBundle(locale, messages), true
}

func (l *CachingLoader) store(ctx context.Context, bundle MessageBundle) {
	key := constant.GetBundleCacheKey(bundle.Locale())

	data, err := json.Marshal(bundle)
	if err != nil {
		l.logger.Warn("Failed to encode bundle for cache", zap.String("key", key), zap.Error(err))
		return
	}

	conn, err := l.pool.GetContext(ctx)
	if err != nil {
		l.logger.Warn("Bundle cache unavailable", zap.String("key", key), zap.Error(err))
		return
	}
	defer l.closeConn(conn)

	args := redis.Args{}.Add(key, data)
	if secs := int64(l.ttl / time.Second); secs > 0 {
		args = args.Add("EX", secs)
	}
	if _, err := conn.Do("SET", args...); err != nil {
		l.logger.Warn("Failed to write bundle cache", zap.String("key", key), zap.Error(err))
	}
}

func (l *CachingLoader) closeConn(conn redis.Conn) {
	if err := conn.Close(); err != nil {
		l.logger.Warn("Redis connection close failed", zap.Error(err))
	}
}
