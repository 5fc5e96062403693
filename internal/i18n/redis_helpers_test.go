package i18n

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"

	"reelview-admin/internal/config"
	"reelview-admin/internal/repository"
)

// newRedis starts an in-memory redis server and a pool dialing it.
func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Pool) {
	t.Helper()
	mr := miniredis.RunT(t)
	pool := repository.NewRedisPool(config.RedisConfig{Enabled: true, Addr: mr.Addr()}, zap.NewNop())
	t.Cleanup(func() { _ = pool.Close() })
	return mr, pool
}
