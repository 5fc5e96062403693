package i18n

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound Resolver 对外暴露的唯一错误，非法语言和语言包加载失败都映射为它
	ErrNotFound = errors.New("i18n: locale not found")

	// ErrMisconfiguredRegistry 语言注册表配置错误，启动时直接退出
	ErrMisconfiguredRegistry = errors.New("i18n: misconfigured locale registry")
)

// InvalidLocaleError 校验未通过的语言候选值
type InvalidLocaleError struct {
	Candidate any
	Reason    string
}

func (e *InvalidLocaleError) Error() string {
	return fmt.Sprintf("invalid locale candidate %v: %s", e.Candidate, e.Reason)
}

// MessageLoadFailure 已校验语言的语言包无法读取或解析
type MessageLoadFailure struct {
	Locale string
	Err    error
}

func (e *MessageLoadFailure) Error() string {
	return fmt.Sprintf("load messages for %q: %v", e.Locale, e.Err)
}

func (e *MessageLoadFailure) Unwrap() error {
	return e.Err
}

// ErrEmptyBundle 语言包中没有任何消息
var ErrEmptyBundle = errors.New("bundle has no messages")

func loadFailure(locale string, err error) error {
	return &MessageLoadFailure{Locale: locale, Err: err}
}
