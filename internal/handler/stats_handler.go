package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"reelview-admin/internal/service"
	"reelview-admin/response"
)

type StatsHandler struct {
	svc *service.StatsService
}

func NewStatsHandler(svc *service.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// DailyStatsHandler 查询某天的语言解析统计（GET /api/stats/locales?date=2026-10-18，默认今天）
func (h *StatsHandler) DailyStatsHandler(c *gin.Context) {
	date := c.DefaultQuery("date", time.Now().Format("2006-01-02"))

	stats, err := h.svc.Daily(c.Request.Context(), date)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(stats, "success"))
}
