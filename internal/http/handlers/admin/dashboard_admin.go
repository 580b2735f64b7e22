package admin

import (
	"strconv"
	"strings"
	"time"

	"github.com/laptopstore-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// parseReportRange 解析报表时间区间，默认最近 30 天。
func parseReportRange(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	startAt := now.AddDate(0, 0, -30)
	endAt := now

	if from, err := parseTimeNullable(strings.TrimSpace(c.Query("from"))); err != nil {
		return startAt, endAt, err
	} else if from != nil {
		startAt = *from
	}
	if to, err := parseTimeNullable(strings.TrimSpace(c.Query("to"))); err != nil {
		return startAt, endAt, err
	} else if to != nil {
		endAt = *to
	}
	if endAt.Before(startAt) {
		startAt, endAt = endAt, startAt
	}
	return startAt, endAt, nil
}

// GetDashboardOverview 获取后台仪表盘总览
func (h *Handler) GetDashboardOverview(c *gin.Context) {
	data, err := h.DashboardService.GetOverview(time.Now())
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, data)
}

// GetRevenueTrend 获取收入趋势（按日或按月）
func (h *Handler) GetRevenueTrend(c *gin.Context) {
	startAt, endAt, err := parseReportRange(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	granularity := strings.TrimSpace(c.DefaultQuery("granularity", "day"))

	rows, err := h.DashboardService.RevenueTrend(granularity, startAt, endAt)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, rows)
}

// GetRevenueByPaymentMethod 按支付方式汇总收入
func (h *Handler) GetRevenueByPaymentMethod(c *gin.Context) {
	startAt, endAt, err := parseReportRange(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	rows, err := h.DashboardService.RevenueByPaymentMethod(startAt, endAt)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, rows)
}

// GetTopProducts 获取畅销商品排行
func (h *Handler) GetTopProducts(c *gin.Context) {
	startAt, endAt, err := parseReportRange(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	rows, err := h.DashboardService.TopProducts(startAt, endAt, limit)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, rows)
}

// ExportRevenueReport 导出收入报表 Excel
func (h *Handler) ExportRevenueReport(c *gin.Context) {
	startAt, endAt, err := parseReportRange(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	granularity := strings.TrimSpace(c.DefaultQuery("granularity", "day"))

	data, filename, err := h.ReportService.ExportRevenue(granularity, startAt, endAt)
	if err != nil {
		respondError(c, response.CodeInternal, "error.export_failed", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, excelContentType, data)
}
