package middleware

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"reelview-admin/internal/i18n"
	"reelview-admin/internal/routing"
	"reelview-admin/response"
)

const localeCookieMaxAge = 365 * 24 * time.Hour

// LocaleRouting 语言路由中间件，必须是 engine 的第一个中间件。
// 去掉语言前缀的请求通过 engine.HandleContext 重新分发，
// 第二次进入时请求上下文中已有语言，直接放行
func LocaleRouting(engine *gin.Engine, policy *routing.Policy, hints *routing.HintMatcher, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := i18n.LocaleFrom(c.Request.Context()); ok {
			c.Next()
			return
		}

		path := c.Request.URL.Path
		hint := hints.FromRequest(c.Request)
		decision := policy.Decide(path, hint)

		switch decision.Action {
		case routing.PassThrough:
			c.Next()

		case routing.NotFound:
			logger.Debug("Unsupported locale prefix", zap.String("path", path))
			c.AbortWithStatusJSON(http.StatusNotFound, response.Error("Not found"))

		case routing.Redirect:
			target := url.URL{Path: decision.Location, RawQuery: c.Request.URL.RawQuery}
			if policy.Mode() == routing.ModeNever {
				setLocaleCookie(c, hints.CookieName(), decision.Locale)
			}
			logger.Debug("Locale redirect",
				zap.String("path", path),
				zap.String("location", target.String()))
			c.Redirect(http.StatusTemporaryRedirect, target.String())
			c.Abort()

		case routing.Serve:
			c.Request = c.Request.WithContext(i18n.WithLocale(c.Request.Context(), decision.Locale))
			if policy.Mode() != routing.ModeNever {
				setLocaleCookie(c, hints.CookieName(), decision.Locale)
			}
			if decision.Path == path {
				c.Next()
				return
			}
			c.Request.URL.Path = decision.Path
			c.Request.URL.RawPath = ""
			engine.HandleContext(c)
			c.Abort()
		}
	}
}

func setLocaleCookie(c *gin.Context, name, locale string) {
	if name == "" || locale == "" {
		return
	}
	if current, err := c.Cookie(name); err == nil && current == locale {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, locale, int(localeCookieMaxAge.Seconds()), "/", "", false, false)
}
