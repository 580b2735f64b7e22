package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/laptopstore-next/internal/config"
	"github.com/laptopstore-next/internal/constants"
	"github.com/laptopstore-next/internal/models"
	"github.com/laptopstore-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupOrderTest(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:order_%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Product{}, &models.ProductImage{},
		&models.Order{}, &models.OrderDetail{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	cfg := &config.Config{}
	cfg.Order.DeliveryMinDays = 4
	cfg.Order.DeliveryMaxDays = 7
	svc := NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewNotificationRepository(db),
		nil,
		nil,
		cfg,
	)
	return svc, db
}

func seedOrder(t *testing.T, db *gorm.DB, userID uint, status, paymentMethod, paymentStatus string, details []models.OrderDetail) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:       fmt.Sprintf("LS%s%d", status, userID),
		UserID:        userID,
		FullName:      "Nguyen Van A",
		Phone:         "0912345678",
		Address:       "12 Lý Thường Kiệt, Hoàn Kiếm, Hà Nội",
		PaymentMethod: paymentMethod,
		PaymentStatus: paymentStatus,
		Status:        status,
		Subtotal:      models.NewMoneyFromInt(1000000),
		TotalMoney:    models.NewMoneyFromInt(1030000),
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	for i := range details {
		details[i].OrderID = order.ID
	}
	if len(details) > 0 {
		if err := db.Create(&details).Error; err != nil {
			t.Fatalf("create details failed: %v", err)
		}
		order.Details = details
	}
	return order
}

func TestCancelByUserRestoresStock(t *testing.T) {
	svc, db := setupOrderTest(t)
	product := &models.Product{
		Name: "Laptop", Slug: "laptop-x", Price: models.NewMoneyFromInt(1000000),
		StockQuantity: intPtr(3), CategoryID: 1, BrandID: 1, Status: constants.ProductStatusOn,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	order := seedOrder(t, db, 7, constants.OrderStatusPending, constants.PaymentMethodCOD, constants.PaymentStatusUnpaid, []models.OrderDetail{
		{ProductID: product.ID, ProductName: product.Name, Price: product.Price, Quantity: 2, TotalPrice: product.Price.MulInt(2)},
	})

	cancelled, err := svc.CancelByUser(order.ID, 7, "vi")
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}
	if cancelled.CancelledAt == nil {
		t.Fatalf("expected cancelled_at set")
	}

	var updated models.Product
	db.First(&updated, product.ID)
	if updated.StockQuantity == nil || *updated.StockQuantity != 5 {
		t.Fatalf("expected stock restored to 5, got %+v", updated.StockQuantity)
	}

	var notifCount int64
	db.Model(&models.Notification{}).Where("user_id = ?", 7).Count(&notifCount)
	if notifCount != 1 {
		t.Fatalf("expected 1 notification, got %d", notifCount)
	}
}

func TestCancelByUserOnlyPending(t *testing.T) {
	svc, db := setupOrderTest(t)
	order := seedOrder(t, db, 2, constants.OrderStatusShipping, constants.PaymentMethodCOD, constants.PaymentStatusUnpaid, nil)

	if _, err := svc.CancelByUser(order.ID, 2, "vi"); !errors.Is(err, ErrOrderTransition) {
		t.Fatalf("expected ErrOrderTransition, got %v", err)
	}
}

func TestCancelByUserWrongOwner(t *testing.T) {
	svc, db := setupOrderTest(t)
	order := seedOrder(t, db, 2, constants.OrderStatusPending, constants.PaymentMethodCOD, constants.PaymentStatusUnpaid, nil)

	if _, err := svc.CancelByUser(order.ID, 99, "vi"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for foreign order, got %v", err)
	}
}

func TestUpdateStatusRejectsInvalidTransition(t *testing.T) {
	svc, db := setupOrderTest(t)
	order := seedOrder(t, db, 4, constants.OrderStatusPending, constants.PaymentMethodCOD, constants.PaymentStatusUnpaid, nil)

	if _, err := svc.UpdateStatus(order.ID, "delivered", "vi"); !errors.Is(err, ErrOrderTransition) {
		t.Fatalf("expected ErrOrderTransition for pending->delivered, got %v", err)
	}
	if _, err := svc.UpdateStatus(order.ID, "nonsense", "vi"); !errors.Is(err, ErrOrderTransition) {
		t.Fatalf("expected ErrOrderTransition for unknown status, got %v", err)
	}
}

func TestDeliveredCODMarksPaid(t *testing.T) {
	svc, db := setupOrderTest(t)
	order := seedOrder(t, db, 5, constants.OrderStatusShipping, constants.PaymentMethodCOD, constants.PaymentStatusUnpaid, nil)

	updated, err := svc.UpdateStatus(order.ID, constants.OrderStatusDelivered, "vi")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("expected COD order paid on delivery, got %s", updated.PaymentStatus)
	}
	if updated.DeliveredAt == nil || updated.PaidAt == nil {
		t.Fatalf("expected delivered_at and paid_at set")
	}

	var stored models.Order
	db.First(&stored, order.ID)
	if stored.PaymentStatus != constants.PaymentStatusPaid || stored.Status != constants.OrderStatusDelivered {
		t.Fatalf("persisted order mismatch: status=%s payment=%s", stored.Status, stored.PaymentStatus)
	}
}

func TestCancelPaidOrderRefunds(t *testing.T) {
	svc, db := setupOrderTest(t)
	order := seedOrder(t, db, 6, constants.OrderStatusProcessing, constants.PaymentMethodVietQR, constants.PaymentStatusPaid, nil)

	updated, err := svc.UpdateStatus(order.ID, constants.OrderStatusCancelled, "vi")
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if updated.PaymentStatus != constants.PaymentStatusRefunded {
		t.Fatalf("expected refunded, got %s", updated.PaymentStatus)
	}
}

func TestMarkPaid(t *testing.T) {
	svc, db := setupOrderTest(t)
	order := seedOrder(t, db, 8, constants.OrderStatusPending, constants.PaymentMethodVietQR, constants.PaymentStatusUnpaid, nil)

	updated, err := svc.MarkPaid(order.ID)
	if err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}
	if updated.PaymentStatus != constants.PaymentStatusPaid || updated.PaidAt == nil {
		t.Fatalf("expected paid with timestamp, got %s", updated.PaymentStatus)
	}

	// 重复确认是幂等的
	if _, err := svc.MarkPaid(order.ID); err != nil {
		t.Fatalf("second mark paid failed: %v", err)
	}

	cancelled := seedOrder(t, db, 9, constants.OrderStatusCancelled, constants.PaymentMethodVietQR, constants.PaymentStatusUnpaid, nil)
	if _, err := svc.MarkPaid(cancelled.ID); !errors.Is(err, ErrOrderTransition) {
		t.Fatalf("expected ErrOrderTransition for cancelled order, got %v", err)
	}
}

func TestDeliveryWindowOmittedForFinalStates(t *testing.T) {
	svc, db := setupOrderTest(t)
	order := seedOrder(t, db, 10, constants.OrderStatusPending, constants.PaymentMethodCOD, constants.PaymentStatusUnpaid, nil)

	view, err := svc.GetForUser(order.ID, 10)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if view.DeliveryFrom == "" || view.DeliveryTo == "" {
		t.Fatalf("expected delivery window for pending order")
	}

	delivered := seedOrder(t, db, 10, constants.OrderStatusDelivered, constants.PaymentMethodCOD, constants.PaymentStatusPaid, nil)
	view, err = svc.GetForUser(delivered.ID, 10)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if view.DeliveryFrom != "" || view.DeliveryTo != "" {
		t.Fatalf("expected no delivery window for delivered order")
	}
}
