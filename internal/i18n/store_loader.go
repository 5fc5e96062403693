package i18n

import (
	"context"
	"fmt"
)

// TranslationStore 以 key/value 形式读取某语言的持久化翻译
type TranslationStore interface {
	ListByLocale(ctx context.Context, locale string) (map[string]string, error)
}

// DBLoader 完全从 TranslationStore 加载语言包
type DBLoader struct {
	store TranslationStore
}

func NewDBLoader(store TranslationStore) *DBLoader {
	return &DBLoader{store: store}
}

func (l *DBLoader) Load(ctx context.Context, locale string) (MessageBundle, error) {
	messages, err := l.store.ListByLocale(ctx, locale)
	if err != nil {
		return MessageBundle{}, loadFailure(locale, err)
	}
	if len(messages) == 0 {
		return MessageBundle{}, loadFailure(locale, fmt.Errorf("translation store: %w", ErrEmptyBundle))
	}
	return NewMessageBundle(locale, messages), nil
}

// OverlayLoader 在基础语言包上叠加存储中的覆盖翻译
type OverlayLoader struct {
	base      Loader
	overrides TranslationStore
}

func NewOverlayLoader(base Loader, overrides TranslationStore) *OverlayLoader {
	return &OverlayLoader{base: base, overrides: overrides}
}

func (l *OverlayLoader) Load(ctx context.Context, locale string) (MessageBundle, error) {
	bundle, err := l.base.Load(ctx, locale)
	if err != nil {
		return MessageBundle{}, err
	}

	overrides, err := l.overrides.ListByLocale(ctx, locale)
	if err != nil {
		return MessageBundle{}, loadFailure(locale, fmt.Errorf("load overrides: %w", err))
	}
	if len(overrides) == 0 {
		return bundle, nil
	}

	merged := bundle.Messages()
	for k, v := range overrides {
		merged[k] = v
	}
	return NewMessageBundle(locale, merged), nil
}
