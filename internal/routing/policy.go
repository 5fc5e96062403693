package routing

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/language"

	"reelview-admin/internal/i18n"
)

// Mode 语言前缀策略
type Mode string

const (
	// ModeAsNeeded 默认语言不带前缀，其他语言带前缀
	ModeAsNeeded Mode = "as-needed"
	// ModeAlways 所有语言都带前缀，包括默认语言
	ModeAlways Mode = "always"
	// ModeNever 从不带前缀，语言取自请求偏好
	ModeNever Mode = "never"
)

// UnknownPrefix 首段形似语言代码但不受支持时（如 "/fr/about"）的处理方式
type UnknownPrefix string

const (
	// UnknownPrefixDefault 按原路径以默认语言处理
	UnknownPrefixDefault UnknownPrefix = "default"
	// UnknownPrefixNotFound 直接返回 404
	UnknownPrefixNotFound UnknownPrefix = "not-found"
)

const (
	DefaultExcludePattern       = `^/(api|_next|_vercel|static|assets)(/|$)|^/favicon\.ico$|\.[a-zA-Z0-9]+$`
	DefaultLocaleSegmentPattern = `^[a-z]{2}(-[A-Za-z]{2})?$`
)

// Action 中间件对请求要执行的动作
type Action int

const (
	PassThrough Action = iota
	Serve
	Redirect
	NotFound
)

func (a Action) String() string {
	switch a {
	case PassThrough:
		return "pass-through"
	case Serve:
		return "serve"
	case Redirect:
		return "redirect"
	case NotFound:
		return "not-found"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Decision 单个请求路径的路由结果
type Decision struct {
	Action Action
	// Locale 要使用的语言；never 模式重定向时为被去掉的前缀所指的语言
	Locale string
	// Path 去掉语言前缀后的内部路径（Serve）
	Path string
	// Location 重定向目标的规范路径（Redirect）
	Location string
}

type Options struct {
	Mode                 Mode
	ExcludePattern       string
	UnknownPrefix        UnknownPrefix
	LocaleSegmentPattern string
}

// Policy 将请求路径映射为路由结果，创建后不可变，可并发使用
type Policy struct {
	registry      *i18n.Registry
	mode          Mode
	exclude       *regexp.Regexp
	localeShape   *regexp.Regexp
	unknownPrefix UnknownPrefix
}

func NewPolicy(registry *i18n.Registry, opts Options) (*Policy, error) {
	if opts.Mode == "" {
		opts.Mode = ModeAsNeeded
	}
	switch opts.Mode {
	case ModeAsNeeded, ModeAlways, ModeNever:
	default:
		return nil, fmt.Errorf("unknown prefix mode %q", opts.Mode)
	}

	if opts.UnknownPrefix == "" {
		opts.UnknownPrefix = UnknownPrefixDefault
	}
	switch opts.UnknownPrefix {
	case UnknownPrefixDefault, UnknownPrefixNotFound:
	default:
		return nil, fmt.Errorf("unknown unknown-prefix policy %q", opts.UnknownPrefix)
	}

	if opts.ExcludePattern == "" {
		opts.ExcludePattern = DefaultExcludePattern
	}
	exclude, err := regexp.Compile(opts.ExcludePattern)
	if err != nil {
		return nil, fmt.Errorf("exclude pattern: %w", err)
	}

	if opts.LocaleSegmentPattern == "" {
		opts.LocaleSegmentPattern = DefaultLocaleSegmentPattern
	}
	shape, err := regexp.Compile(opts.LocaleSegmentPattern)
	if err != nil {
		return nil, fmt.Errorf("locale segment pattern: %w", err)
	}

	return &Policy{
		registry:      registry,
		mode:          opts.Mode,
		exclude:       exclude,
		localeShape:   shape,
		unknownPrefix: opts.UnknownPrefix,
	}, nil
}

func (p *Policy) Mode() Mode {
	return p.mode
}

// Excluded 判断路径是否跳过本地化
func (p *Policy) Excluded(path string) bool {
	return p.exclude.MatchString(path)
}

// Decide 计算 path 的路由结果。hint 为客户端偏好语言（Cookie 或 Accept-Language，
// 已与注册表匹配），只在路径没有语言前缀时使用。规范路径永远不会得到 Redirect
func (p *Policy) Decide(path, hint string) Decision {
	if path == "" {
		path = "/"
	}
	if p.Excluded(path) {
		return Decision{Action: PassThrough}
	}

	def := p.registry.Default()
	if hint == "" || !p.registry.Contains(hint) {
		hint = def
	}

	segment, rest := splitFirstSegment(path)
	prefixed := p.registry.Contains(segment)

	if !prefixed && p.unknownPrefix == UnknownPrefixNotFound && p.localeShaped(segment) {
		return Decision{Action: NotFound}
	}

	switch p.mode {
	case ModeAlways:
		if prefixed {
			return Decision{Action: Serve, Locale: segment, Path: rest}
		}
		return Decision{Action: Redirect, Locale: hint, Location: joinPath("/"+hint, path)}

	case ModeNever:
		if prefixed {
			return Decision{Action: Redirect, Locale: segment, Location: rest}
		}
		return Decision{Action: Serve, Locale: hint, Path: path}

	default:
		if prefixed {
			if segment == def {
				return Decision{Action: Redirect, Locale: def, Location: rest}
			}
			return Decision{Action: Serve, Locale: segment, Path: rest}
		}
		return Decision{Action: Serve, Locale: def, Path: path}
	}
}

// localeShaped 判断不受支持的路径段是否形似语言代码
func (p *Policy) localeShaped(segment string) bool {
	if segment == "" || !p.localeShape.MatchString(segment) {
		return false
	}
	_, err := language.Parse(segment)
	return err == nil
}

// splitFirstSegment 将 "/hi/about" 拆成 "hi" 和 "/about"。
// rest 只以一个斜杠开头："/en//evil.example" 得到 "/evil.example"，重定向不会跳到其他域名
func splitFirstSegment(path string) (segment, rest string) {
	trimmed := strings.TrimPrefix(path, "/")
	segment, rest, found := strings.Cut(trimmed, "/")
	if !found {
		return segment, "/"
	}
	return segment, "/" + strings.TrimLeft(rest, `/\`)
}

func joinPath(prefix, path string) string {
	if path == "/" {
		return prefix
	}
	return prefix + path
}
