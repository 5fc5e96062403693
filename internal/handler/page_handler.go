package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"reelview-admin/internal/apperrors"
	"reelview-admin/internal/dto"
	"reelview-admin/internal/i18n"
	"reelview-admin/response"
)

// Pages 后台页面路由到页面 id 的映射，标题取自语言包中的 "Pages.<id>.title"
var Pages = map[string]string{
	"/":                   "dashboard",
	"/dashboard":          "dashboard",
	"/sellers":            "sellers",
	"/sellers/onboarding": "sellerOnboarding",
	"/kyc":                "kyc",
	"/moderation":         "moderation",
	"/logistics":          "logistics",
	"/ai-usage":           "aiUsage",
	"/notifications":      "notifications",
	"/broadcasts":         "broadcasts",
	"/subscriptions":      "subscriptions",
	"/revenue":            "revenue",
	"/settings":           "settings",
	"/about":              "about",
}

type PageHandler struct {
	resolver *i18n.Resolver
	logger   *zap.Logger
}

func NewPageHandler(resolver *i18n.Resolver, logger *zap.Logger) *PageHandler {
	return &PageHandler{resolver: resolver, logger: logger}
}

// RegisterPages 注册所有后台页面
func RegisterPages(r gin.IRoutes, h *PageHandler) {
	for path, page := range Pages {
		r.GET(path, h.Render(page))
	}
}

// Render 解析请求语言并把语言包交给页面
func (h *PageHandler) Render(page string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		res, err := h.resolver.Resolve(ctx, i18n.LocaleValue(ctx))
		if err != nil {
			_ = c.Error(apperrors.NotFoundError(err))
			return
		}

		titleKey := "Pages." + page + ".title"
		title, _ := res.Messages.Get(titleKey)

		localizer, err := res.Localizer()
		if err != nil {
			h.logger.Error("Localizer unavailable, serving raw messages",
				zap.String("locale", res.Locale),
				zap.Error(err))
		} else {
			ctx = i18n.WithLocalizer(ctx, localizer)
			c.Request = c.Request.WithContext(ctx)
			title = i18n.T(ctx, titleKey, nil)
		}

		c.JSON(http.StatusOK, response.OK(dto.PageResponse{
			Page:     page,
			Locale:   res.Locale,
			Title:    title,
			Messages: res.Messages,
		}, "success"))
	}
}

// NotFound 未匹配路由的 404，与语言解析失败的返回一致
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, response.Error("Not found"))
}
