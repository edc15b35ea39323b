package admin

import (
	"time"

	"github.com/schoolbreak-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview 获取仪表盘总览
func (h *Handler) GetDashboardOverview(c *gin.Context) {
	startAt, endAt, ok := parseWindow(c)
	if !ok {
		return
	}

	overview, err := h.DashboardService.Overview(c.Request.Context(), startAt, endAt)
	if err != nil {
		respondError(c, response.CodeInternal, "error.dashboard_fetch_failed", err)
		return
	}
	response.Success(c, overview)
}

// GetDashboardShops 获取各店铺核销排行
func (h *Handler) GetDashboardShops(c *gin.Context) {
	startAt, endAt, ok := parseWindow(c)
	if !ok {
		return
	}

	stats, err := h.DashboardService.ShopRanking(c.Request.Context(), startAt, endAt)
	if err != nil {
		respondError(c, response.CodeInternal, "error.dashboard_fetch_failed", err)
		return
	}
	response.Success(c, stats)
}

// parseWindow 解析统计时间窗（RFC3339，缺省由服务层补全）
func parseWindow(c *gin.Context) (time.Time, time.Time, bool) {
	var startAt, endAt time.Time
	if raw := c.Query("start_at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return time.Time{}, time.Time{}, false
		}
		startAt = parsed
	}
	if raw := c.Query("end_at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return time.Time{}, time.Time{}, false
		}
		endAt = parsed
	}
	return startAt, endAt, true
}
