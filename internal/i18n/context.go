package i18n

import (
	"context"
	"fmt"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

type contextKey int

const (
	localeKey contextKey = iota
	localizerKey
)

// WithLocale 保存路由层选定的语言
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey, locale)
}

// LocaleFrom 取出 WithLocale 保存的语言
func LocaleFrom(ctx context.Context) (string, bool) {
	locale, ok := ctx.Value(localeKey).(string)
	return locale, ok
}

// LocaleValue 返回原始语言候选值（供 Resolver 校验），不存在时为 nil
func LocaleValue(ctx context.Context) any {
	return ctx.Value(localeKey)
}

// Localizer 基于语言包创建 go-i18n Localizer，用于渲染带模板参数的消息。
// go-i18n 没有该语言的复数规则时返回错误
func (res *Resolution) Localizer() (*goi18n.Localizer, error) {
	tag := language.Make(res.Locale)
	bundle := goi18n.NewBundle(tag)

	messages := make([]*goi18n.Message, 0, res.Messages.Len())
	for _, key := range res.Messages.Keys() {
		value, _ := res.Messages.Get(key)
		messages = append(messages, &goi18n.Message{ID: key, Other: value})
	}
	if err := bundle.AddMessages(tag, messages...); err != nil {
		return nil, fmt.Errorf("localizer for %q: %w", res.Locale, err)
	}

	return goi18n.NewLocalizer(bundle, res.Locale), nil
}

// WithLocalizer 保存 T 使用的 Localizer
func WithLocalizer(ctx context.Context, l *goi18n.Localizer) context.Context {
	return context.WithValue(ctx, localizerKey, l)
}

// T 使用 ctx 中的 Localizer 翻译 key，没有 Localizer 或消息不存在时返回 key 本身
func T(ctx context.Context, key string, data map[string]interface{}) string {
	localizer, ok := ctx.Value(localizerKey).(*goi18n.Localizer)
	if !ok {
		return key
	}
	msg, err := localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		return key
	}
	return msg
}
