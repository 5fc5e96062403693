package service

import (
	"context"
	"strings"
	"time"

	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"

	"reelview-admin/constant"
	"reelview-admin/internal/apperrors"
	"reelview-admin/internal/i18n"
	"reelview-admin/internal/model"
)

// StatsStore 每日解析计数的持久化
type StatsStore interface {
	SaveDaily(ctx context.Context, stats []model.LocaleDailyStat) error
	ListByDate(ctx context.Context, date string) ([]model.LocaleDailyStat, error)
}

// StatsService 在 Redis 中统计语言解析结果并定时落库，实现 i18n.StatsRecorder
type StatsService struct {
	pool   i18n.ConnPool
	store  StatsStore
	logger *zap.Logger
	now    func() time.Time
}

func NewStatsService(pool i18n.ConnPool, store StatsStore, logger *zap.Logger) *StatsService {
	return &StatsService{pool: pool, store: store, logger: logger, now: time.Now}
}

// RecordResolution 当天计数加一，出错只记录日志，不影响请求
func (s *StatsService) RecordResolution(ctx context.Context, locale string, outcome i18n.Outcome) {
	key := constant.GetDailyResolutionKey(constant.GetDateKey(s.now()))
	field := constant.GetResolutionField(locale, string(outcome))

	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		s.logger.Warn("Failed to record resolution", zap.String("key", key), zap.Error(err))
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			s.logger.Warn("Redis connection close failed", zap.Error(err))
		}
	}()

	if _, err := conn.Do("HINCRBY", key, field, 1); err != nil {
		s.logger.Error("Failed to record resolution",
			zap.String("key", key),
			zap.String("field", field),
			zap.Error(err))
		return
	}

	if _, err := conn.Do("EXPIRE", key, int64(constant.StatsRetention/time.Second)); err != nil {
		s.logger.Error("Failed to set resolution counter expiry",
			zap.String("key", key),
			zap.Error(err))
	}
}

// Flush 将 t 当天的计数从 Redis 写入数据库
func (s *StatsService) Flush(ctx context.Context, t time.Time) error {
	key := constant.GetDailyResolutionKey(constant.GetDateKey(t))

	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			s.logger.Warn("Redis connection close failed", zap.Error(err))
		}
	}()

	counters, err := redis.Int64Map(conn.Do("HGETALL", key))
	if err != nil {
		s.logger.Error("Failed to read resolution counters", zap.String("key", key), zap.Error(err))
		return err
	}

	date := t.Format("2006-01-02")
	stats := make([]model.LocaleDailyStat, 0, len(counters))
	for field, count := range counters {
		idx := strings.LastIndex(field, constant.Separator)
		if idx < 0 {
			s.logger.Warn("Skipping malformed resolution counter", zap.String("field", field))
			continue
		}
		stats = append(stats, model.LocaleDailyStat{
			Date:    date,
			Locale:  field[:idx],
			Outcome: field[idx+1:],
			Count:   count,
		})
	}

	if err := s.store.SaveDaily(ctx, stats); err != nil {
		s.logger.Error("Failed to save resolution stats", zap.String("date", date), zap.Error(err))
		return err
	}

	s.logger.Info("Resolution stats flushed", zap.String("date", date), zap.Int("rows", len(stats)))
	return nil
}

// FlushToday 定时任务入口
func (s *StatsService) FlushToday() {
	_ = s.Flush(context.Background(), s.now())
}

// Daily 查询某天已落库的计数（格式：YYYY-MM-DD）
func (s *StatsService) Daily(ctx context.Context, date string) ([]model.LocaleDailyStat, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, apperrors.InvalidRequestError("date must be YYYY-MM-DD")
	}
	stats, err := s.store.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("Failed to query resolution stats", zap.String("date", date), zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}
	return stats, nil
}
