package i18n

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Outcome 语言解析结果分类
type Outcome string

const (
	OutcomeLoaded     Outcome = "loaded"
	OutcomeInvalid    Outcome = "invalid"
	OutcomeLoadFailed Outcome = "load_failed"
)

// invalidLocaleLabel 非法候选值统一记为该标签，任意输入不会成为统计维度
const invalidLocaleLabel = "-"

// StatsRecorder 统计解析结果
type StatsRecorder interface {
	RecordResolution(ctx context.Context, locale string, outcome Outcome)
}

// Resolution 解析成功的结果
type Resolution struct {
	Locale   string        `json:"locale"`
	Messages MessageBundle `json:"messages"`
}

// Resolver 按注册表校验请求语言并加载语言包，不保存请求状态，可并发使用
type Resolver struct {
	registry *Registry
	loader   Loader
	logger   *zap.Logger
	stats    StatsRecorder
}

type ResolverOption func(*Resolver)

// WithStatsRecorder 统计每次解析结果
func WithStatsRecorder(stats StatsRecorder) ResolverOption {
	return func(r *Resolver) {
		r.stats = stats
	}
}

func NewResolver(registry *Registry, loader Loader, logger *zap.Logger, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		registry: registry,
		loader:   loader,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve 校验 candidate 并加载语言包。候选值非法或语言包加载失败，
// 都返回同时包装 ErrNotFound 和具体原因的错误
func (r *Resolver) Resolve(ctx context.Context, candidate any) (*Resolution, error) {
	log := r.logger.With(zap.Any("candidate", candidate))
	log.Debug("Locale resolution started")

	locale, err := r.validate(candidate)
	if err != nil {
		log.Warn("Locale candidate rejected",
			zap.String("outcome", string(OutcomeInvalid)),
			zap.Error(err))
		r.record(ctx, invalidLocaleLabel, OutcomeInvalid)
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	log = log.With(zap.String("locale", locale))
	log.Debug("Locale candidate accepted")

	bundle, err := r.loader.Load(ctx, locale)
	if err == nil && bundle.Len() == 0 {
		err = loadFailure(locale, ErrEmptyBundle)
	}
	if err != nil {
		var failure *MessageLoadFailure
		if !errors.As(err, &failure) {
			err = loadFailure(locale, err)
		}
		log.Error("Message bundle load failed",
			zap.String("outcome", string(OutcomeLoadFailed)),
			zap.Error(err))
		r.record(ctx, locale, OutcomeLoadFailed)
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	log.Info("Locale resolved",
		zap.String("outcome", string(OutcomeLoaded)),
		zap.Int("messages", bundle.Len()))
	r.record(ctx, locale, OutcomeLoaded)

	return &Resolution{Locale: locale, Messages: bundle}, nil
}

func (r *Resolver) validate(candidate any) (string, error) {
	locale, ok := candidate.(string)
	if !ok {
		reason := "not a string"
		if candidate == nil {
			reason = "missing"
		}
		return "", &InvalidLocaleError{Candidate: candidate, Reason: reason}
	}
	if !r.registry.Contains(locale) {
		return "", &InvalidLocaleError{Candidate: candidate, Reason: "unsupported locale"}
	}
	return locale, nil
}

func (r *Resolver) record(ctx context.Context, locale string, outcome Outcome) {
	if r.stats != nil {
		r.stats.RecordResolution(ctx, locale, outcome)
	}
}
