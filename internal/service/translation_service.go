package service

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"reelview-admin/internal/apperrors"
	"reelview-admin/internal/dto"
	"reelview-admin/internal/i18n"
	"reelview-admin/internal/model"
	"reelview-admin/response"
)

// TranslationStore 翻译服务依赖的存储
type TranslationStore interface {
	Upsert(ctx context.Context, t *model.Translation) error
	Page(ctx context.Context, locale, key string, page, size int) ([]model.Translation, int64, error)
	Delete(ctx context.Context, id uint) (*model.Translation, error)
}

// CacheInvalidator 翻译变更后清除对应语言包缓存
type CacheInvalidator interface {
	Invalidate(ctx context.Context, locale string) error
}

type TranslationService struct {
	registry *i18n.Registry
	store    TranslationStore
	cache    CacheInvalidator
	logger   *zap.Logger
}

// NewTranslationService 创建翻译服务，未启用缓存时 cache 为 nil
func NewTranslationService(registry *i18n.Registry, store TranslationStore, cache CacheInvalidator, logger *zap.Logger) *TranslationService {
	return &TranslationService{registry: registry, store: store, cache: cache, logger: logger}
}

// Upsert 保存受支持语言的翻译
func (s *TranslationService) Upsert(ctx context.Context, req dto.UpsertTranslationRequest) (*model.Translation, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.InvalidRequestError(err.Error())
	}
	if !s.registry.Contains(req.Locale) {
		return nil, apperrors.BusinessError(http.StatusUnprocessableEntity, "error.locale_unsupported")
	}

	t := &model.Translation{Locale: req.Locale, Key: req.Key, Value: req.Value}
	if err := s.store.Upsert(ctx, t); err != nil {
		s.logger.Error("Failed to save translation",
			zap.String("locale", req.Locale),
			zap.String("key", req.Key),
			zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}

	s.invalidate(ctx, req.Locale)
	return t, nil
}

// List 分页查询翻译
func (s *TranslationService) List(ctx context.Context, q dto.ListTranslationsQuery) (*response.PageResponse[model.Translation], error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size < 1 || q.Size > 100 {
		q.Size = 10
	}

	rows, total, err := s.store.Page(ctx, q.Locale, q.Key, q.Page, q.Size)
	if err != nil {
		s.logger.Error("Failed to list translations", zap.Error(err))
		return nil, apperrors.SystemErrorDefault()
	}

	return &response.PageResponse[model.Translation]{
		Page:      q.Page,
		Size:      q.Size,
		Total:     int(total),
		TotalPage: (int(total) + q.Size - 1) / q.Size,
		List:      rows,
	}, nil
}

// Delete 按 id 删除翻译
func (s *TranslationService) Delete(ctx context.Context, id uint) error {
	t, err := s.store.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFoundError(err)
		}
		s.logger.Error("Failed to delete translation", zap.Uint("id", id), zap.Error(err))
		return apperrors.SystemErrorDefault()
	}

	s.invalidate(ctx, t.Locale)
	return nil
}

func (s *TranslationService) invalidate(ctx context.Context, locale string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, locale); err != nil {
		s.logger.Warn("Failed to invalidate bundle cache", zap.String("locale", locale), zap.Error(err))
	}
}
