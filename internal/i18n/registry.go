package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Registry 支持的语言集合及默认语言，启动时创建，之后不再修改
type Registry struct {
	locales       []string
	defaultLocale string
	tags          []language.Tag
	set           map[string]struct{}
}

// NewRegistry 校验配置的语言：必须是合法且不重复的 BCP 47 标签，默认语言必须在其中
func NewRegistry(locales []string, defaultLocale string) (*Registry, error) {
	if len(locales) == 0 {
		return nil, fmt.Errorf("%w: no supported locales", ErrMisconfiguredRegistry)
	}

	r := &Registry{
		locales:       make([]string, 0, len(locales)),
		defaultLocale: defaultLocale,
		tags:          make([]language.Tag, 0, len(locales)),
		set:           make(map[string]struct{}, len(locales)),
	}

	for _, code := range locales {
		if strings.TrimSpace(code) == "" {
			return nil, fmt.Errorf("%w: blank locale code", ErrMisconfiguredRegistry)
		}
		if _, dup := r.set[code]; dup {
			return nil, fmt.Errorf("%w: duplicate locale %q", ErrMisconfiguredRegistry, code)
		}
		tag, err := language.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("%w: locale %q: %v", ErrMisconfiguredRegistry, code, err)
		}

		r.set[code] = struct{}{}
		r.locales = append(r.locales, code)
		r.tags = append(r.tags, tag)
	}

	if _, ok := r.set[defaultLocale]; !ok {
		return nil, fmt.Errorf("%w: default locale %q is not supported", ErrMisconfiguredRegistry, defaultLocale)
	}

	return r, nil
}

// Supported 按配置顺序返回支持语言的副本
func (r *Registry) Supported() []string {
	out := make([]string, len(r.locales))
	copy(out, r.locales)
	return out
}

// Default 返回默认语言
func (r *Registry) Default() string {
	return r.defaultLocale
}

// Contains 判断 code 是否为支持的语言
func (r *Registry) Contains(code string) bool {
	_, ok := r.set[code]
	return ok
}

// Tags 返回解析后的语言标签，顺序与 Supported 一致
func (r *Registry) Tags() []language.Tag {
	out := make([]language.Tag, len(r.tags))
	copy(out, r.tags)
	return out
}
