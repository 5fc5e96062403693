package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"reelview-admin/internal/handler"
	"reelview-admin/internal/i18n"
	"reelview-admin/internal/middleware"
	"reelview-admin/internal/routing"
	"reelview-admin/internal/service"
)

// Deps HTTP 层依赖的组件，未启用数据库时 Translations 和 Stats 为 nil
type Deps struct {
	Logger         *zap.Logger
	AllowedOrigins []string
	Registry       *i18n.Registry
	Policy         *routing.Policy
	Hints          *routing.HintMatcher
	Resolver       *i18n.Resolver
	Health         handler.HealthChecker
	Translations   *service.TranslationService
	Stats          *service.StatsService
}

// New 创建 gin engine。语言路由最先注册，无论路由是否匹配都先经过它
func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.LocaleRouting(r, d.Policy, d.Hints, d.Logger))
	r.Use(gin.Recovery())
	r.Use(middleware.GlobalErrorMiddleware(d.Logger))
	r.Use(middleware.ZapGinLogger(d.Logger))
	r.Use(middleware.CorsMiddleware(d.AllowedOrigins))

	handler.RegisterPages(r, handler.NewPageHandler(d.Resolver, d.Logger))

	locales := handler.NewLocaleHandler(d.Registry, d.Policy, d.Resolver, d.Health)

	api := r.Group("/api")
	{
		api.GET("/locales", locales.ListLocalesHandler)
		api.GET("/locales/health", locales.HealthHandler)
		api.GET("/messages/:locale", locales.MessagesHandler)

		if d.Translations != nil {
			translations := handler.NewTranslationHandler(d.Translations)
			api.GET("/translations", translations.ListTranslationsHandler)
			api.PUT("/translations", translations.UpsertTranslationHandler)
			api.DELETE("/translations/:id", translations.DeleteTranslationHandler)
		}

		if d.Stats != nil {
			api.GET("/stats/locales", handler.NewStatsHandler(d.Stats).DailyStatsHandler)
		}
	}

	r.NoRoute(handler.NotFound)

	return r
}
