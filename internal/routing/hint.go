package routing

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"reelview-admin/internal/i18n"
)

// HintMatcher 依次从语言 Cookie 和 Accept-Language 头中选出客户端偏好的受支持语言
type HintMatcher struct {
	registry   *i18n.Registry
	cookieName string
	codes      []string
	matcher    language.Matcher
}

func NewHintMatcher(registry *i18n.Registry, cookieName string) *HintMatcher {
	// 默认语言放在第一位，匹配失败时 matcher 回退到它
	codes := []string{registry.Default()}
	tags := []language.Tag{language.Make(registry.Default())}
	supported := registry.Supported()
	for i, tag := range registry.Tags() {
		if supported[i] == registry.Default() {
			continue
		}
		codes = append(codes, supported[i])
		tags = append(tags, tag)
	}

	return &HintMatcher{
		registry:   registry,
		cookieName: cookieName,
		codes:      codes,
		matcher:    language.NewMatcher(tags),
	}
}

// CookieName 保存语言选择的 Cookie 名，为空表示不使用 Cookie
func (h *HintMatcher) CookieName() string {
	return h.cookieName
}

// FromRequest 返回受支持的语言；请求中没有可用偏好时返回 ""
func (h *HintMatcher) FromRequest(r *http.Request) string {
	if h.cookieName != "" {
		if c, err := r.Cookie(h.cookieName); err == nil && h.registry.Contains(c.Value) {
			return c.Value
		}
	}

	accept := strings.TrimSpace(r.Header.Get("Accept-Language"))
	if accept == "" {
		return ""
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return ""
	}

	_, index, confidence := h.matcher.Match(tags...)
	if confidence == language.No {
		return ""
	}
	return h.codes[index]
}
