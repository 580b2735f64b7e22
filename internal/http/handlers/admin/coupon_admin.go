package admin

import (
	"strconv"
	"strings"
	"time"

	"github.com/laptopstore-next/internal/http/response"
	"github.com/laptopstore-next/internal/repository"
	"github.com/laptopstore-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CouponPayload 优惠券创建/更新请求
type CouponPayload struct {
	Code           string          `json:"code" binding:"required"`
	Description    string          `json:"description"`
	Type           string          `json:"type" binding:"required"`
	Value          decimal.Decimal `json:"value" binding:"required"`
	MinOrderAmount decimal.Decimal `json:"min_order_amount"`
	UsageLimit     int             `json:"usage_limit"`
	StartsAt       *time.Time      `json:"starts_at"`
	EndsAt         *time.Time      `json:"ends_at"`
	Status         string          `json:"status"`
}

func (p CouponPayload) toInput() service.CouponInput {
	return service.CouponInput{
		Code:           p.Code,
		Description:    p.Description,
		Type:           p.Type,
		Value:          p.Value,
		MinOrderAmount: p.MinOrderAmount,
		UsageLimit:     p.UsageLimit,
		StartsAt:       p.StartsAt,
		EndsAt:         p.EndsAt,
		Status:         p.Status,
	}
}

// ListCoupons 后台优惠券列表
func (h *Handler) ListCoupons(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	coupons, total, err := h.CouponService.List(repository.CouponListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, coupons, pagination)
}

// GetCoupon 后台优惠券详情
func (h *Handler) GetCoupon(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	coupon, err := h.CouponService.Get(uint(id))
	if err != nil {
		respondWithMappedError(c, err, couponAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, coupon)
}

// CreateCoupon 创建优惠券
func (h *Handler) CreateCoupon(c *gin.Context) {
	var req CouponPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	coupon, err := h.CouponService.Create(req.toInput())
	if err != nil {
		respondWithMappedError(c, err, couponAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	requestLog(c).Infow("admin_coupon_created", "coupon_id", coupon.ID, "code", coupon.Code)
	response.Success(c, coupon)
}

// UpdateCoupon 更新优惠券
func (h *Handler) UpdateCoupon(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req CouponPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	coupon, err := h.CouponService.Update(uint(id), req.toInput())
	if err != nil {
		respondWithMappedError(c, err, couponAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, coupon)
}

// DeleteCoupon 删除优惠券
func (h *Handler) DeleteCoupon(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.CouponService.Delete(uint(id)); err != nil {
		respondWithMappedError(c, err, couponAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
