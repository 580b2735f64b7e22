package admin

import (
	"strconv"
	"strings"

	"github.com/laptopstore-next/internal/http/response"
	"github.com/laptopstore-next/internal/i18n"
	"github.com/laptopstore-next/internal/repository"

	"github.com/gin-gonic/gin"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func parseOrderListFilter(c *gin.Context) (repository.OrderListFilter, error) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.OrderListFilter{
		Page:          page,
		PageSize:      pageSize,
		Status:        strings.TrimSpace(c.Query("status")),
		PaymentStatus: strings.TrimSpace(c.Query("payment_status")),
		PaymentMethod: strings.TrimSpace(c.Query("payment_method")),
		Keyword:       strings.TrimSpace(c.Query("keyword")),
	}
	if id, err := strconv.ParseUint(c.Query("user_id"), 10, 64); err == nil {
		filter.UserID = uint(id)
	}

	createdFrom, err := parseTimeNullable(strings.TrimSpace(c.Query("created_from")))
	if err != nil {
		return filter, err
	}
	createdTo, err := parseTimeNullable(strings.TrimSpace(c.Query("created_to")))
	if err != nil {
		return filter, err
	}
	filter.CreatedFrom = createdFrom
	filter.CreatedTo = createdTo
	return filter, nil
}

// ListOrders 后台订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	filter, err := parseOrderListFilter(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	orders, total, err := h.OrderService.ListAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	pagination := response.Pagination{
		Page:      filter.Page,
		PageSize:  filter.PageSize,
		Total:     total,
		TotalPage: (total + int64(filter.PageSize) - 1) / int64(filter.PageSize),
	}
	response.SuccessWithPage(c, orders, pagination)
}

// GetOrder 后台订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	view, err := h.OrderService.GetAdmin(uint(id))
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{
		"order":         view.Order,
		"delivery_from": view.DeliveryFrom,
		"delivery_to":   view.DeliveryTo,
	})
}

// GetOrderStatusCounts 订单状态统计（后台筛选标签用）
func (h *Handler) GetOrderStatusCounts(c *gin.Context) {
	counts, err := h.OrderService.StatusCounts()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, counts)
}

// UpdateOrderStatus 推进订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.UpdateStatus(uint(id), req.Status, i18n.ResolveLocale(c))
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	requestLog(c).Infow("admin_order_status_updated", "order_id", order.ID, "status", order.Status)
	response.Success(c, order)
}

// MarkOrderPaid 标记订单已收款（银行转账人工对账用）
func (h *Handler) MarkOrderPaid(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	order, err := h.OrderService.MarkPaid(uint(id))
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	requestLog(c).Infow("admin_order_marked_paid", "order_id", order.ID)
	response.Success(c, order)
}

// ExportOrders 导出订单 Excel
func (h *Handler) ExportOrders(c *gin.Context) {
	filter, err := parseOrderListFilter(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	data, filename, err := h.ReportService.ExportOrders(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.export_failed", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, excelContentType, data)
}
