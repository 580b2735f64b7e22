package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
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

// OrderService 订单查询与状态管理服务
type OrderService struct {
	orderRepo        repository.OrderRepository
	productRepo      repository.ProductRepository
	notificationRepo repository.NotificationRepository
	emailService     *EmailService
	queueClient      *queue.Client
	cfg              *config.Config
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	notificationRepo repository.NotificationRepository,
	emailService *EmailService,
	queueClient *queue.Client,
	cfg *config.Config,
) *OrderService {
	return &OrderService{
		orderRepo:        orderRepo,
		productRepo:      productRepo,
		notificationRepo: notificationRepo,
		emailService:     emailService,
		queueClient:      queueClient,
		cfg:              cfg,
	}
}

// OrderView 订单详情视图（附带预计送达区间）
type OrderView struct {
	Order        *models.Order
	DeliveryFrom string
	DeliveryTo   string
}

// ListByUser 查询用户自己的订单
func (s *OrderService) ListByUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(filter)
}

// GetForUser 查询用户自己的订单详情
func (s *OrderService) GetForUser(orderID, userID uint) (*OrderView, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return s.buildView(order), nil
}

// CancelByUser 用户取消自己的订单（仅限 pending）
func (s *OrderService) CancelByUser(orderID, userID uint, locale string) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPending {
		return nil, ErrOrderTransition
	}
	return s.transition(order, constants.OrderStatusCancelled, locale)
}

// ListAdmin 后台订单列表
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// GetAdmin 后台订单详情
func (s *OrderService) GetAdmin(orderID uint) (*OrderView, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return s.buildView(order), nil
}

// StatusCounts 各状态订单数量
func (s *OrderService) StatusCounts() (map[string]int64, error) {
	return s.orderRepo.CountByStatus()
}

// UpdateStatus 后台流转订单状态
func (s *OrderService) UpdateStatus(orderID uint, newStatus, locale string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	normalized := strings.ToLower(strings.TrimSpace(newStatus))
	if !IsValidOrderStatus(normalized) {
		return nil, ErrOrderTransition
	}
	if !CanTransitionOrderStatus(order.Status, normalized) {
		return nil, ErrOrderTransition
	}
	return s.transition(order, normalized, locale)
}

// MarkPaid 后台确认收款（银行转账 / VNPAY 手动对账）
func (s *OrderService) MarkPaid(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.PaymentStatus == constants.PaymentStatusPaid {
		return order, nil
	}
	if order.Status == constants.OrderStatusCancelled {
		return nil, ErrOrderTransition
	}
	now := time.Now()
	if err := s.orderRepo.UpdatePaymentStatus(order.ID, constants.PaymentStatusPaid, map[string]interface{}{
		"paid_at": now,
	}); err != nil {
		return nil, err
	}
	order.PaymentStatus = constants.PaymentStatusPaid
	order.PaidAt = &now
	logger.Infow("order_marked_paid", "order_id", order.ID, "order_no", order.OrderNo)
	return order, nil
}

// transition 执行一次状态流转，终态附带时间戳与支付联动
func (s *OrderService) transition(order *models.Order, newStatus, locale string) (*models.Order, error) {
	now := time.Now()
	updates := map[string]interface{}{}

	switch newStatus {
	case constants.OrderStatusDelivered:
		updates["delivered_at"] = now
		// 货到付款在签收时视同收款完成
		if order.PaymentMethod == constants.PaymentMethodCOD && order.PaymentStatus == constants.PaymentStatusUnpaid {
			updates["payment_status"] = constants.PaymentStatusPaid
			updates["paid_at"] = now
		}
	case constants.OrderStatusCancelled:
		updates["cancelled_at"] = now
		if order.PaymentStatus == constants.PaymentStatusPaid {
			updates["payment_status"] = constants.PaymentStatusRefunded
		}
	}

	err := s.productRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		if err := orderRepo.UpdateStatus(order.ID, newStatus, updates); err != nil {
			return err
		}
		if newStatus == constants.OrderStatusCancelled {
			productRepo := s.productRepo.WithTx(tx)
			for _, detail := range order.Details {
				if err := productRepo.RestoreStock(detail.ProductID, detail.Quantity); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	previous := order.Status
	order.Status = newStatus
	switch newStatus {
	case constants.OrderStatusDelivered:
		order.DeliveredAt = &now
		if paymentStatus, ok := updates["payment_status"].(string); ok {
			order.PaymentStatus = paymentStatus
			order.PaidAt = &now
		}
	case constants.OrderStatusCancelled:
		order.CancelledAt = &now
		if paymentStatus, ok := updates["payment_status"].(string); ok {
			order.PaymentStatus = paymentStatus
		}
	}

	s.notifyStatusChange(order, locale)
	logger.Infow("order_status_changed",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"from", previous,
		"to", newStatus,
	)
	return order, nil
}

// notifyStatusChange 状态变更后的站内通知与邮件，失败不回滚
func (s *OrderService) notifyStatusChange(order *models.Order, locale string) {
	if s.notificationRepo != nil && order.UserID != 0 {
		notification := &models.Notification{
			UserID:  order.UserID,
			Title:   fmt.Sprintf("Đơn hàng %s: %s", order.OrderNo, vietnameseStatusLabel(order.Status)),
			Content: fmt.Sprintf("Đơn hàng %s của bạn đã chuyển sang trạng thái \"%s\".", order.OrderNo, vietnameseStatusLabel(order.Status)),
			Kind:    constants.NotificationKindOrderStatus,
		}
		if err := s.notificationRepo.Create(notification); err != nil {
			logger.Warnw("order_status_notification_failed", "order_id", order.ID, "error", err)
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
			logger.Warnw("order_status_enqueue_email_failed", "order_id", order.ID, "error", err)
		}
		return
	}
	if s.emailService == nil {
		return
	}
	from, to := s.deliveryWindow(order)
	err := s.emailService.SendOrderStatusEmail(order.Email, OrderStatusEmailInput{
		OrderNo:      order.OrderNo,
		Status:       order.Status,
		Total:        order.TotalMoney,
		DeliveryFrom: from,
		DeliveryTo:   to,
	}, locale)
	if err != nil && !errors.Is(err, ErrEmailServiceDisabled) && !errors.Is(err, ErrEmailServiceNotConfigured) {
		logger.Warnw("order_status_send_email_failed", "order_id", order.ID, "error", err)
	}
}

func (s *OrderService) buildView(order *models.Order) *OrderView {
	from, to := s.deliveryWindow(order)
	return &OrderView{Order: order, DeliveryFrom: from, DeliveryTo: to}
}

// deliveryWindow 基于下单时间计算预计送达区间，终态订单不再给出预估
func (s *OrderService) deliveryWindow(order *models.Order) (string, string) {
	if order.Status == constants.OrderStatusDelivered || order.Status == constants.OrderStatusCancelled {
		return "", ""
	}
	minDays := s.cfg.Order.DeliveryMinDays
	if minDays <= 0 {
		minDays = 4
	}
	maxDays := s.cfg.Order.DeliveryMaxDays
	if maxDays < minDays {
		maxDays = minDays + 2
	}
	from := order.CreatedAt.AddDate(0, 0, minDays).Format("2006-01-02")
	to := order.CreatedAt.AddDate(0, 0, maxDays).Format("2006-01-02")
	return from, to
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("%s%s%s", constants.OrderNoPrefix, now, randNumeric(6))
}

func generateReceiptNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("%s%s%s", constants.ReceiptNoPrefix, now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
