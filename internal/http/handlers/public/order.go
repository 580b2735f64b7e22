package public

import (
	"strconv"
	"strings"

	"github.com/laptopstore-next/internal/http/response"
	"github.com/laptopstore-next/internal/i18n"
	"github.com/laptopstore-next/internal/repository"
	"github.com/laptopstore-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest 下单请求
type CheckoutRequest struct {
	FullName      string `json:"full_name" binding:"required"`
	Phone         string `json:"phone" binding:"required"`
	Email         string `json:"email"`
	Address       string `json:"address" binding:"required"`
	Province      string `json:"province"`
	District      string `json:"district"`
	Note          string `json:"note"`
	PaymentMethod string `json:"payment_method"`
}

// Checkout 将购物车转为订单
func (h *Handler) Checkout(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	locale := i18n.ResolveLocale(c)
	result, err := h.CheckoutService.Checkout(service.CheckoutInput{
		UserID:        userID,
		FullName:      req.FullName,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Province:      req.Province,
		District:      req.District,
		Note:          req.Note,
		PaymentMethod: req.PaymentMethod,
		Locale:        locale,
	})
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "error.internal")
		return
	}

	response.SuccessWithMsg(c, i18n.T(locale, "message.order_placed"), gin.H{
		"order":         result.Order,
		"delivery_from": result.DeliveryFrom,
		"delivery_to":   result.DeliveryTo,
	})
}

// GetOrders 当前用户订单列表
func (h *Handler) GetOrders(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListByUser(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
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
	response.SuccessWithPage(c, orders, pagination)
}

// GetOrder 当前用户订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	view, err := h.OrderService.GetForUser(uint(orderID), userID)
	if err != nil {
		respondWithMappedError(c, err, userOrderErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{
		"order":         view.Order,
		"delivery_from": view.DeliveryFrom,
		"delivery_to":   view.DeliveryTo,
	})
}

// CancelOrder 用户取消订单（仅限待确认状态）
func (h *Handler) CancelOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	order, err := h.OrderService.CancelByUser(uint(orderID), userID, i18n.ResolveLocale(c))
	if err != nil {
		respondWithMappedError(c, err, userOrderErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, order)
}

// QuoteCoupon 以当前购物车小计试算优惠券
func (h *Handler) QuoteCoupon(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	code := strings.TrimSpace(c.Query("code"))
	if code == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	cart, err := h.CartService.Get(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	quote, err := h.CouponService.Quote(code, cart.Subtotal)
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrCouponNotFound, code: response.CodeNotFound, key: "error.coupon_not_found"},
		}, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, quote)
}
