package service

import (
	"context"

	"go.uber.org/zap"

	"reelview-admin/internal/dto"
	"reelview-admin/internal/i18n"
)

// BundleHealthService 定时加载所有语言包，提前发现缺失或损坏的资源
type BundleHealthService struct {
	registry *i18n.Registry
	loader   i18n.Loader
	logger   *zap.Logger
}

func NewBundleHealthService(registry *i18n.Registry, loader i18n.Loader, logger *zap.Logger) *BundleHealthService {
	return &BundleHealthService{registry: registry, loader: loader, logger: logger}
}

// Check 按注册顺序返回每个语言包的状态
func (s *BundleHealthService) Check(ctx context.Context) []dto.BundleHealth {
	report := make([]dto.BundleHealth, 0, len(s.registry.Supported()))
	for _, locale := range s.registry.Supported() {
		bundle, err := s.loader.Load(ctx, locale)
		if err == nil && bundle.Len() == 0 {
			err = &i18n.MessageLoadFailure{Locale: locale, Err: i18n.ErrEmptyBundle}
		}
		if err != nil {
			s.logger.Error("Bundle health check failed", zap.String("locale", locale), zap.Error(err))
			report = append(report, dto.BundleHealth{Locale: locale, Error: err.Error()})
			continue
		}
		report = append(report, dto.BundleHealth{Locale: locale, Healthy: true, Messages: bundle.Len()})
	}
	return report
}

// Healthy 判断所有语言包是否都加载成功
func Healthy(report []dto.BundleHealth) bool {
	for _, h := range report {
		if !h.Healthy {
			return false
		}
	}
	return true
}

// RunScheduled 定时任务入口
func (s *BundleHealthService) RunScheduled() {
	report := s.Check(context.Background())
	if Healthy(report) {
		s.logger.Info("Bundle health check passed", zap.Int("locales", len(report)))
	}
}
