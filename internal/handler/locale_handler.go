package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"reelview-admin/internal/apperrors"
	"reelview-admin/internal/dto"
	"reelview-admin/internal/i18n"
	"reelview-admin/internal/routing"
	"reelview-admin/internal/service"
	"reelview-admin/response"
)

// HealthChecker 返回每个语言包的加载状态
type HealthChecker interface {
	Check(ctx context.Context) []dto.BundleHealth
}

type LocaleHandler struct {
	registry *i18n.Registry
	policy   *routing.Policy
	resolver *i18n.Resolver
	health   HealthChecker
}

func NewLocaleHandler(registry *i18n.Registry, policy *routing.Policy, resolver *i18n.Resolver, health HealthChecker) *LocaleHandler {
	return &LocaleHandler{registry: registry, policy: policy, resolver: resolver, health: health}
}

// ListLocalesHandler 查询支持的语言（GET /api/locales）
func (h *LocaleHandler) ListLocalesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, response.OK(dto.LocalesResponse{
		Supported: h.registry.Supported(),
		Default:   h.registry.Default(),
		Mode:      string(h.policy.Mode()),
	}, "success"))
}

// MessagesHandler 获取某语言的语言包（GET /api/messages/:locale）
func (h *LocaleHandler) MessagesHandler(c *gin.Context) {
	res, err := h.resolver.Resolve(c.Request.Context(), c.Param("locale"))
	if err != nil {
		_ = c.Error(apperrors.NotFoundError(err))
		return
	}
	c.JSON(http.StatusOK, response.OK(gin.H{"messages": res.Messages}, "success"))
}

// HealthHandler 立即加载所有语言包并返回状态（GET /api/locales/health）
func (h *LocaleHandler) HealthHandler(c *gin.Context) {
	report := h.health.Check(c.Request.Context())

	status := http.StatusOK
	if !service.Healthy(report) {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, &response.Response[[]dto.BundleHealth]{
		Success:   status == http.StatusOK,
		Message:   http.StatusText(status),
		Data:      report,
		Timestamp: response.Now(),
	})
}
