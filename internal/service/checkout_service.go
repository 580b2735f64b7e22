package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/laptopstore-next/internal/config"
	"github.com/laptopstore-next/internal/constants"
	"github.com/laptopstore-next/internal/logger"
	"github.com/laptopstore-next/internal/models"
	"github.com/laptopstore-next/internal/queue"
	"github.com/laptopstore-next/internal/repository"

	"gorm.io/gorm"
)

// StockShortageError 库存不足错误，携带商品名与剩余数量用于展示
type StockShortageError struct {
	ProductID   uint
	ProductName string
	Available   int
}

// Error 实现 error 接口
func (e *StockShortageError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d (%s): %d left", e.ProductID, e.ProductName, e.Available)
}

// Is 支持 errors.Is(err, ErrInsufficientStock)
func (e *StockShortageError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// CheckoutService 下单服务（整个下单流程在单个事务内完成）
type CheckoutService struct {
	productRepo      repository.ProductRepository
	cartRepo         repository.CartRepository
	orderRepo        repository.OrderRepository
	notificationRepo repository.NotificationRepository
	emailService     *EmailService
	queueClient      *queue.Client
	cfg              *config.Config
}

// NewCheckoutService 创建下单服务
func NewCheckoutService(
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	notificationRepo repository.NotificationRepository,
	emailService *EmailService,
	queueClient *queue.Client,
	cfg *config.Config,
) *CheckoutService {
	return &CheckoutService{
		productRepo:      productRepo,
		cartRepo:         cartRepo,
		orderRepo:        orderRepo,
		notificationRepo: notificationRepo,
		emailService:     emailService,
		queueClient:      queueClient,
		cfg:              cfg,
	}
}

// CheckoutInput 下单输入
type CheckoutInput struct {
	UserID        uint
	FullName      string
	Phone         string
	Email         string
	Address       string
	Province      string
	District      string
	Note          string
	PaymentMethod string
	Locale        string
}

// CheckoutResult 下单结果
type CheckoutResult struct {
	Order        *models.Order
	DeliveryFrom string
	DeliveryTo   string
}

// Checkout 将当前购物车转为订单
// 校验、建单、扣库存、清空购物车在同一事务内，任何一步失败则整体回滚
func (s *CheckoutService) Checkout(input CheckoutInput) (*CheckoutResult, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidParams
	}
	if strings.TrimSpace(input.FullName) == "" ||
		strings.TrimSpace(input.Phone) == "" ||
		strings.TrimSpace(input.Address) == "" {
		return nil, ErrShippingInfoMissing
	}

	method := NormalizePaymentMethod(input.PaymentMethod)
	var created *models.Order

	err := s.productRepo.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		cart, err := cartRepo.GetByUserWithItems(input.UserID)
		if err != nil {
			return err
		}
		if cart == nil || len(cart.Items) == 0 {
			return ErrCartEmpty
		}

		subtotal := models.NewMoneyFromInt(0)
		details := make([]models.OrderDetail, 0, len(cart.Items))
		for _, item := range cart.Items {
			if item.Quantity <= 0 {
				return ErrInvalidQuantity
			}
			product, err := productRepo.GetByID(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return ErrProductNotFound
			}
			if !product.OnSale() {
				return ErrProductUnavailable
			}
			if product.StockQuantity != nil && *product.StockQuantity < item.Quantity {
				return &StockShortageError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Available:   *product.StockQuantity,
				}
			}
			lineTotal := product.Price.MulInt(item.Quantity)
			subtotal = subtotal.AddMoney(lineTotal)
			details = append(details, models.OrderDetail{
				ProductID:   product.ID,
				ProductName: product.Name,
				Price:       product.Price,
				Quantity:    item.Quantity,
				TotalPrice:  lineTotal,
			})
		}

		shippingFee := s.ShippingFee(input.Province)
		total := subtotal.AddMoney(shippingFee)

		address := buildFullAddress(input.Address, input.District, input.Province)
		order := &models.Order{
			OrderNo:       generateOrderNo(),
			UserID:        input.UserID,
			FullName:      strings.TrimSpace(input.FullName),
			Phone:         strings.TrimSpace(input.Phone),
			Email:         strings.ToLower(strings.TrimSpace(input.Email)),
			Address:       address,
			Province:      strings.TrimSpace(input.Province),
			District:      strings.TrimSpace(input.District),
			Note:          strings.TrimSpace(input.Note),
			PaymentMethod: method,
			PaymentStatus: constants.PaymentStatusUnpaid,
			Status:        constants.OrderStatusPending,
			Subtotal:      subtotal,
			ShippingFee:   shippingFee,
			TotalMoney:    total,
		}
		if err := orderRepo.Create(order, details); err != nil {
			return err
		}

		for _, detail := range details {
			affected, err := productRepo.DecrementStock(detail.ProductID, detail.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				// 并发下单导致库存被抢占，重读库存给出剩余量
				available := 0
				if current, err := productRepo.GetByID(detail.ProductID); err == nil && current != nil && current.StockQuantity != nil {
					available = *current.StockQuantity
				}
				return &StockShortageError{
					ProductID:   detail.ProductID,
					ProductName: detail.ProductName,
					Available:   available,
				}
			}
		}

		if err := cartRepo.ClearItems(cart.ID); err != nil {
			return err
		}

		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	from, to := s.DeliveryEstimate(time.Now())
	s.afterCheckout(created, input.Locale, from, to)
	logger.Infow("checkout_order_created",
		"order_id", created.ID,
		"order_no", created.OrderNo,
		"user_id", created.UserID,
		"payment_method", created.PaymentMethod,
		"total", created.TotalMoney.String(),
	)
	return &CheckoutResult{Order: created, DeliveryFrom: from, DeliveryTo: to}, nil
}

// ShippingFee 按省份计算运费，免运费地区返回 0
func (s *CheckoutService) ShippingFee(province string) models.Money {
	normalized := strings.ToLower(strings.TrimSpace(province))
	if normalized != "" {
		for _, marker := range s.cfg.Shipping.FreeProvinces {
			if marker == "" {
				continue
			}
			if strings.Contains(normalized, strings.ToLower(marker)) {
				return models.NewMoneyFromInt(0)
			}
		}
	}
	return models.NewMoneyFromInt(s.cfg.Shipping.FlatFee)
}

// DeliveryEstimate 预计送达区间，返回 yyyy-MM-dd 起止日期
func (s *CheckoutService) DeliveryEstimate(now time.Time) (string, string) {
	minDays := s.cfg.Order.DeliveryMinDays
	if minDays <= 0 {
		minDays = 4
	}
	maxDays := s.cfg.Order.DeliveryMaxDays
	if maxDays < minDays {
		maxDays = minDays + 2
	}
	from := now.AddDate(0, 0, minDays).Format("2006-01-02")
	to := now.AddDate(0, 0, maxDays).Format("2006-01-02")
	return from, to
}

// NormalizePaymentMethod 支付方式归一化，空值与未知值回落为 COD
func NormalizePaymentMethod(method string) string {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case "", "cod", "cash":
		return constants.PaymentMethodCOD
	case "bank", "vietqr", "qr", "transfer":
		return constants.PaymentMethodVietQR
	case "vnpay":
		return constants.PaymentMethodVNPay
	default:
		return strings.ToLower(strings.TrimSpace(method))
	}
}

// afterCheckout 事务提交后的通知动作，失败只记录日志不影响下单结果
func (s *CheckoutService) afterCheckout(order *models.Order, locale, deliveryFrom, deliveryTo string) {
	if s.notificationRepo != nil {
		notification := &models.Notification{
			UserID:  order.UserID,
			Title:   fmt.Sprintf("Đơn hàng %s đã được tiếp nhận", order.OrderNo),
			Content: fmt.Sprintf("Dự kiến giao hàng từ %s đến %s.", deliveryFrom, deliveryTo),
			Kind:    constants.NotificationKindOrderPlaced,
		}
		if err := s.notificationRepo.Create(notification); err != nil {
			logger.Warnw("checkout_notification_failed", "order_id", order.ID, "error", err)
		}
	}

	if order.Email == "" {
		return
	}
	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
			OrderID: order.ID,
			Status:  order.Status,
			Locale:  locale,
		}); err != nil {
			logger.Warnw("checkout_enqueue_email_failed", "order_id", order.ID, "error", err)
		}
		return
	}
	if s.emailService == nil {
		return
	}
	err := s.emailService.SendOrderStatusEmail(order.Email, OrderStatusEmailInput{
		OrderNo:      order.OrderNo,
		Status:       order.Status,
		Total:        order.TotalMoney,
		DeliveryFrom: deliveryFrom,
		DeliveryTo:   deliveryTo,
	}, locale)
	if err != nil && !errors.Is(err, ErrEmailServiceDisabled) && !errors.Is(err, ErrEmailServiceNotConfigured) {
		logger.Warnw("checkout_send_email_failed", "order_id", order.ID, "error", err)
	}
}

func buildFullAddress(address, district, province string) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{address, district, province} {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, ", ")
}
